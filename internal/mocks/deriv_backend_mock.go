package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/life2you_mini/tradedash/internal/model"
)

// MockDerivBackend 合约后端接口的模拟实现
type MockDerivBackend struct {
	mock.Mock
}

// DerivWhitelist 合约监控列表的模拟实现
func (m *MockDerivBackend) DerivWhitelist(ctx context.Context, mode model.Mode) (*model.DerivWhitelist, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DerivWhitelist), args.Error(1)
}

func (m *MockDerivBackend) DerivPortfolio(ctx context.Context, mode model.Mode) (*model.DerivPortfolio, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DerivPortfolio), args.Error(1)
}

func (m *MockDerivBackend) DerivHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TradeHistory), args.Error(1)
}

// DerivLogs 合约最近日志的模拟实现
func (m *MockDerivBackend) DerivLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error) {
	args := m.Called(ctx, limit, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogPage), args.Error(1)
}

func (m *MockDerivBackend) DerivPeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.DerivPeriodReturns, error) {
	args := m.Called(ctx, mode, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DerivPeriodReturns), args.Error(1)
}

func (m *MockDerivBackend) DerivReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error) {
	args := m.Called(ctx, mode, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReturnsChart), args.Error(1)
}

// DerivSettings 合约设置的模拟实现
func (m *MockDerivBackend) DerivSettings(ctx context.Context) (*model.DerivSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DerivSettings), args.Error(1)
}

func (m *MockDerivBackend) UpdateDerivAPIKeys(ctx context.Context, apiKey string, apiSecret string) (*model.MessageResult, error) {
	args := m.Called(ctx, apiKey, apiSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResult), args.Error(1)
}

func (m *MockDerivBackend) UpdateDerivStrategySettings(ctx context.Context, patch map[string]model.StrategyPatch) (*model.MessageResult, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResult), args.Error(1)
}

// OpenDerivPosition 开仓的模拟实现
func (m *MockDerivBackend) OpenDerivPosition(ctx context.Context, symbol string, mode model.Mode) (*model.OpenPositionResult, error) {
	args := m.Called(ctx, symbol, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OpenPositionResult), args.Error(1)
}

func (m *MockDerivBackend) CloseDerivPosition(ctx context.Context, positionID int64, reason string) (*model.ClosePositionResult, error) {
	args := m.Called(ctx, positionID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClosePositionResult), args.Error(1)
}

func (m *MockDerivBackend) DerivBotStatus(ctx context.Context, mode model.Mode) (*model.DerivBotStatus, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DerivBotStatus), args.Error(1)
}

// StartDerivBot 启动合约机器人的模拟实现
func (m *MockDerivBackend) StartDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommandResult), args.Error(1)
}

func (m *MockDerivBackend) StopDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommandResult), args.Error(1)
}
