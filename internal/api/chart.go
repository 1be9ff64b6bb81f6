package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/life2you_mini/tradedash/internal/model"
)

// TradeChart 成交对应的图表数据
func (c *Client) TradeChart(ctx context.Context, tradeID int64) (*model.ChartPayload, error) {
	return call[model.ChartPayload](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/chart/trade/" + strconv.FormatInt(tradeID, 10),
	})
}

// PositionChart 持仓对应的图表数据
func (c *Client) PositionChart(ctx context.Context, positionID int64) (*model.ChartPayload, error) {
	return call[model.ChartPayload](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/chart/position/" + strconv.FormatInt(positionID, 10),
	})
}
