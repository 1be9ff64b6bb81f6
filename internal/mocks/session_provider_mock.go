package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/life2you_mini/tradedash/internal/model"
)

// MockSessionProvider 会话存储的模拟实现
type MockSessionProvider struct {
	mock.Mock
}

// Token 读取token的模拟实现
func (m *MockSessionProvider) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// User 读取用户的模拟实现
func (m *MockSessionProvider) User(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// SetSession 保存会话的模拟实现
func (m *MockSessionProvider) SetSession(ctx context.Context, token string, user model.User) error {
	args := m.Called(ctx, token, user)
	return args.Error(0)
}

// ClearSession 清除会话的模拟实现
func (m *MockSessionProvider) ClearSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionProvider) SelectedExchange(ctx context.Context) (model.Exchange, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Exchange), args.Error(1)
}

func (m *MockSessionProvider) SetSelectedExchange(ctx context.Context, exchange model.Exchange) error {
	args := m.Called(ctx, exchange)
	return args.Error(0)
}

// Close 关闭连接的模拟实现
func (m *MockSessionProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}
