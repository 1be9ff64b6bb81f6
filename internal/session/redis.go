package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Redis 键名
const (
	keyToken    = "session:token"
	keyUser     = "session:user"
	keyExchange = "pref:selected_exchange"
)

// ClientOptions Redis客户端配置选项
type ClientOptions struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient 创建新的Redis客户端并测试连接
func NewRedisClient(opts ClientOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Host + ":" + strconv.Itoa(opts.Port),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     4,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// RedisStore 基于Redis的会话存储，多个看板进程可共享同一登录状态
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore 创建Redis会话存储
func NewRedisStore(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (s *RedisStore) key(name string) string {
	return s.keyPrefix + name
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key(keyToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("读取token失败: %w", err)
	}
	return token, nil
}

func (s *RedisStore) User(ctx context.Context) (*model.User, error) {
	raw, err := s.client.Get(ctx, s.key(keyUser)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("读取用户失败: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("解析用户失败: %w", err)
	}
	return &user, nil
}

// SetSession 在一个事务中同时写入token和用户
func (s *RedisStore) SetSession(ctx context.Context, token string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("序列化用户失败: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(keyToken), token, 0)
		pipe.Set(ctx, s.key(keyUser), userJSON, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("保存会话失败: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(keyToken), s.key(keyUser)).Err(); err != nil {
		return fmt.Errorf("清除会话失败: %w", err)
	}
	return nil
}

func (s *RedisStore) SelectedExchange(ctx context.Context) (model.Exchange, error) {
	ex, err := s.client.Get(ctx, s.key(keyExchange)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("读取交易所偏好失败: %w", err)
	}
	return model.Exchange(ex), nil
}

func (s *RedisStore) SetSelectedExchange(ctx context.Context, exchange model.Exchange) error {
	if err := s.client.Set(ctx, s.key(keyExchange), string(exchange), 0).Err(); err != nil {
		return fmt.Errorf("保存交易所偏好失败: %w", err)
	}
	return nil
}

// Close 关闭Redis连接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
