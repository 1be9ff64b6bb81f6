package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultsFillMissingKeys(t *testing.T) {
	path := writeFile(t, "config.yaml", `
backend:
  base_url: http://backend:9000
session:
  store: memory
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 10, cfg.Dashboard.PollIntervalSeconds)
	assert.Equal(t, "upbit", cfg.Dashboard.DefaultExchange)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 350, cfg.Chart.MainHeight)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
backend:
  base_url: http://backend:9000
`)
	t.Setenv("TRADEDASH_API_URL", "http://override:8000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:8000", cfg.Backend.BaseURL)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dashboard:
  default_exchange: bybit
  poll_interval_seconds: 5
`)

	cfg, err := LoadConfigFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "bybit", cfg.Dashboard.DefaultExchange)
	assert.Equal(t, 5, cfg.Dashboard.PollIntervalSeconds)
	assert.Equal(t, "simulation", cfg.Dashboard.DefaultMode)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "默认配置有效", mutate: func(c *Config) {}},
		{name: "后端地址为空", mutate: func(c *Config) { c.Backend.BaseURL = "" }, wantErr: true},
		{name: "轮询间隔为0", mutate: func(c *Config) { c.Dashboard.PollIntervalSeconds = 0 }, wantErr: true},
		{name: "未知交易所", mutate: func(c *Config) { c.Dashboard.DefaultExchange = "binance" }, wantErr: true},
		{name: "未知模式", mutate: func(c *Config) { c.Dashboard.DefaultMode = "paper" }, wantErr: true},
		{name: "未知会话存储", mutate: func(c *Config) { c.Session.Store = "sqlite" }, wantErr: true},
		{name: "文件存储缺少路径", mutate: func(c *Config) { c.Session.FilePath = "" }, wantErr: true},
		{
			name: "Redis端口无效",
			mutate: func(c *Config) {
				c.Session.Store = SessionStoreRedis
				c.Redis.Port = 70000
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfigToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetDefaultConfig()
	cfg.Dashboard.DefaultExchange = "bybit"

	require.NoError(t, SaveConfigToFile(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bybit", loaded.Dashboard.DefaultExchange)
	assert.Equal(t, cfg.Backend.BaseURL, loaded.Backend.BaseURL)
}
