package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/life2you_mini/tradedash/internal/model"
)

// MockSpotBackend 现货后端接口的模拟实现
type MockSpotBackend struct {
	mock.Mock
}

// BotStatus 机器人状态的模拟实现
func (m *MockSpotBackend) BotStatus(ctx context.Context, mode model.Mode) (*model.BotStatus, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BotStatus), args.Error(1)
}

func (m *MockSpotBackend) StartBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommandResult), args.Error(1)
}

func (m *MockSpotBackend) StopBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommandResult), args.Error(1)
}

// PanicSell 紧急卖出的模拟实现
func (m *MockSpotBackend) PanicSell(ctx context.Context, mode model.Mode) (*model.PanicSellResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PanicSellResult), args.Error(1)
}

func (m *MockSpotBackend) SellPosition(ctx context.Context, market string, mode model.Mode) (*model.SellPositionResult, error) {
	args := m.Called(ctx, market, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SellPositionResult), args.Error(1)
}

func (m *MockSpotBackend) Whitelist(ctx context.Context, mode model.Mode) (*model.Whitelist, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Whitelist), args.Error(1)
}

// RefreshWhitelist 刷新监控列表的模拟实现
func (m *MockSpotBackend) RefreshWhitelist(ctx context.Context) (*model.RefreshResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshResult), args.Error(1)
}

func (m *MockSpotBackend) TradeHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TradeHistory), args.Error(1)
}

func (m *MockSpotBackend) Portfolio(ctx context.Context, mode model.Mode) (*model.SpotPortfolio, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SpotPortfolio), args.Error(1)
}

// RecentLogs 最近日志的模拟实现
func (m *MockSpotBackend) RecentLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error) {
	args := m.Called(ctx, limit, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogPage), args.Error(1)
}

func (m *MockSpotBackend) PeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.PeriodReturns, error) {
	args := m.Called(ctx, mode, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PeriodReturns), args.Error(1)
}

func (m *MockSpotBackend) ReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error) {
	args := m.Called(ctx, mode, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReturnsChart), args.Error(1)
}

// Settings 读取设置的模拟实现
func (m *MockSpotBackend) Settings(ctx context.Context, exchange model.Exchange) (*model.Settings, error) {
	args := m.Called(ctx, exchange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSpotBackend) UpdateSettings(ctx context.Context, update model.SettingsUpdate, exchange model.Exchange) (*model.SettingsUpdateResult, error) {
	args := m.Called(ctx, update, exchange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SettingsUpdateResult), args.Error(1)
}

func (m *MockSpotBackend) TestTelegram(ctx context.Context) (*model.MessageResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResult), args.Error(1)
}

// ValidateUpbit Upbit密钥校验的模拟实现
func (m *MockSpotBackend) ValidateUpbit(ctx context.Context) (*model.UpbitValidation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpbitValidation), args.Error(1)
}
