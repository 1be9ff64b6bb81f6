package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesFiles(t *testing.T) {
	dir := t.TempDir()

	l, err := NewLogger(dir, "debug")
	require.NoError(t, err)

	l.Component("test").Info("写入测试")
	l.Error("错误测试")
	_ = l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "tradedash.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "写入测试")
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"app":"tradedash"`)

	errData, err := os.ReadFile(filepath.Join(dir, "tradedash_error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errData), "错误测试")
	assert.NotContains(t, string(errData), "写入测试")
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := NewLogger(t.TempDir(), "verbose")
	require.NoError(t, err)
	defer l.Close()
	assert.False(t, l.Core().Enabled(-1))
	assert.True(t, l.Core().Enabled(0))
}

func TestNewLogger_MainFileFollowsLevel(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "error")
	require.NoError(t, err)

	l.Info("不应写入")
	l.Error("写入错误")
	_ = l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "tradedash.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "不应写入")
	assert.Contains(t, string(data), "写入错误")
}
