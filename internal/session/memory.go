package session

import (
	"context"
	"sync"

	"github.com/life2you_mini/tradedash/internal/model"
)

// MemoryStore 进程内会话存储，测试与一次性命令使用
type MemoryStore struct {
	mu       sync.RWMutex
	session  *Session
	exchange model.Exchange
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return "", nil
	}
	return m.session.Token, nil
}

func (m *MemoryStore) User(ctx context.Context) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	user := m.session.User
	return &user, nil
}

func (m *MemoryStore) SetSession(ctx context.Context, token string, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &Session{Token: token, User: user}
	return nil
}

func (m *MemoryStore) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *MemoryStore) SelectedExchange(ctx context.Context) (model.Exchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exchange, nil
}

func (m *MemoryStore) SetSelectedExchange(ctx context.Context, exchange model.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchange = exchange
	return nil
}

func (m *MemoryStore) Close() error { return nil }
