package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/config"
	"github.com/life2you_mini/tradedash/internal/model"
)

// ErrNoSession 当前没有登录会话
var ErrNoSession = errors.New("no active session")

// Session 登录会话，token与用户信息总是整体替换
type Session struct {
	Token string     `json:"token" yaml:"token"`
	User  model.User `json:"user" yaml:"user"`
}

// Provider 会话提供者，API客户端通过它读取token，登录登出时整体替换
type Provider interface {
	// Token 返回当前token，没有会话时返回空字符串
	Token(ctx context.Context) (string, error)
	// User 返回当前用户，没有会话时返回ErrNoSession
	User(ctx context.Context) (*model.User, error)
	// SetSession 整体替换会话
	SetSession(ctx context.Context, token string, user model.User) error
	// ClearSession 清除会话
	ClearSession(ctx context.Context) error

	// SelectedExchange 最近选择的交易所，没有记录时返回空字符串
	SelectedExchange(ctx context.Context) (model.Exchange, error)
	SetSelectedExchange(ctx context.Context, exchange model.Exchange) error

	Close() error
}

// NewProvider 按配置创建会话存储
func NewProvider(cfg *config.Config, logger *zap.Logger) (Provider, error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		return NewMemoryStore(), nil
	case config.SessionStoreFile:
		return NewFileStore(cfg.Session.FilePath, logger)
	case config.SessionStoreRedis:
		client, err := NewRedisClient(ClientOptions{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("无法连接到Redis: %w", err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix, logger), nil
	default:
		return nil, fmt.Errorf("未知的会话存储类型: %s", cfg.Session.Store)
	}
}
