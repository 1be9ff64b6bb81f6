package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/life2you_mini/tradedash/internal/config"
	"github.com/life2you_mini/tradedash/internal/model"
)

var testUser = model.User{ID: 1, Email: "trader@example.com", IsActive: true, CreatedAt: "2024-01-01T00:00:00"}

// exerciseProvider 对任意实现执行同一组行为检查
func exerciseProvider(t *testing.T, p Provider) {
	t.Helper()
	ctx := context.Background()

	token, err := p.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = p.User(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, p.SetSession(ctx, "tok-1", testUser))
	token, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	user, err := p.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser, *user)

	require.NoError(t, p.SetSelectedExchange(ctx, model.ExchangeBybit))
	require.NoError(t, p.ClearSession(ctx))

	token, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	_, err = p.User(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// 清除会话不影响交易所偏好
	ex, err := p.SelectedExchange(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeBybit, ex)
}

func TestMemoryStore(t *testing.T) {
	exerciseProvider(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store, err := NewFileStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	exerciseProvider(t, store)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	first, err := NewFileStore(path, logger)
	require.NoError(t, err)
	require.NoError(t, first.SetSession(ctx, "persisted", testUser))
	require.NoError(t, first.SetSelectedExchange(ctx, model.ExchangeUpbit))

	second, err := NewFileStore(path, logger)
	require.NoError(t, err)
	token, err := second.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
	ex, err := second.SelectedExchange(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeUpbit, ex)
}

func TestFileStore_CorruptFileIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session: [unclosed"), 0600))

	store, err := NewFileStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestNewProvider(t *testing.T) {
	logger := zaptest.NewLogger(t)

	cfg := config.GetDefaultConfig()
	cfg.Session.Store = config.SessionStoreMemory
	p, err := NewProvider(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, p)

	cfg.Session.Store = config.SessionStoreFile
	cfg.Session.FilePath = filepath.Join(t.TempDir(), "s.yaml")
	p, err = NewProvider(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, p)

	cfg.Session.Store = config.SessionStoreRedis
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1
	_, err = NewProvider(cfg, logger)
	assert.Error(t, err)

	cfg.Session.Store = "cookie"
	_, err = NewProvider(cfg, logger)
	assert.Error(t, err)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	s := NewRedisStore(nil, "tradedash:", zaptest.NewLogger(t))
	assert.Equal(t, "tradedash:session:token", s.key(keyToken))
	assert.Equal(t, "tradedash:pref:selected_exchange", s.key(keyExchange))
}
