package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/life2you_mini/tradedash/internal/model"
)

// MockChartSource 图表数据来源的模拟实现
type MockChartSource struct {
	mock.Mock
}

// TradeChart 成交图表的模拟实现
func (m *MockChartSource) TradeChart(ctx context.Context, tradeID int64) (*model.ChartPayload, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChartPayload), args.Error(1)
}

func (m *MockChartSource) PositionChart(ctx context.Context, positionID int64) (*model.ChartPayload, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChartPayload), args.Error(1)
}
