package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/life2you_mini/tradedash/internal/model"
)

// BotStatus 现货机器人状态，mode为空时返回两种模式的合并状态
func (c *Client) BotStatus(ctx context.Context, mode model.Mode) (*model.BotStatus, error) {
	return call[model.BotStatus](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/system/status",
		query:  modeQuery(string(mode)),
	})
}

// StartBot 启动现货机器人
func (c *Client) StartBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	return call[model.CommandResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/system/start",
		query:  modeQuery(string(mode)),
	})
}

// StopBot 停止现货机器人
func (c *Client) StopBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	return call[model.CommandResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/system/stop",
		query:  modeQuery(string(mode)),
	})
}

// PanicSell 紧急卖出全部持仓
func (c *Client) PanicSell(ctx context.Context, mode model.Mode) (*model.PanicSellResult, error) {
	return call[model.PanicSellResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/system/panic-sell",
		query:  modeQuery(string(mode)),
	})
}

// SellPosition 卖出单个币种
func (c *Client) SellPosition(ctx context.Context, market string, mode model.Mode) (*model.SellPositionResult, error) {
	q := url.Values{}
	q.Set("market", market)
	q.Set("mode", string(mode))
	return call[model.SellPositionResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/system/sell-position",
		query:  q,
	})
}
