package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/life2you_mini/tradedash/internal/model"
)

// DefaultCloseReason 手动平仓时发送的默认原因
const DefaultCloseReason = "수동 청산"

// DerivWhitelist 合约监控列表
func (c *Client) DerivWhitelist(ctx context.Context, mode model.Mode) (*model.DerivWhitelist, error) {
	return call[model.DerivWhitelist](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/whitelist",
		query:  modeQuery(string(mode)),
	})
}

// DerivPortfolio 合约账户
func (c *Client) DerivPortfolio(ctx context.Context, mode model.Mode) (*model.DerivPortfolio, error) {
	return call[model.DerivPortfolio](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/portfolio",
		query:  modeQuery(string(mode)),
	})
}

// DerivHistory 合约成交历史，只支持 mode/strategy/side/limit/offset
func (c *Client) DerivHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error) {
	filtered := model.HistoryQuery{
		Mode:     q.Mode,
		Strategy: q.Strategy,
		Side:     q.Side,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	return call[model.TradeHistory](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/history",
		query:  historyQuery(filtered),
	})
}

// DerivLogs 合约最近系统日志
func (c *Client) DerivLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error) {
	return call[model.LogPage](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/logs/recent",
		query:  logsQuery(limit, mode),
	})
}

// DerivPeriodReturns 合约区间收益
func (c *Client) DerivPeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.DerivPeriodReturns, error) {
	return call[model.DerivPeriodReturns](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/returns",
		query:  returnsQuery(mode, days),
	})
}

// DerivReturnsChart 合约累计收益曲线
func (c *Client) DerivReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error) {
	return call[model.ReturnsChart](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/history/returns-chart",
		query:  chartQuery(mode, strategy),
	})
}

// DerivSettings 合约设置
func (c *Client) DerivSettings(ctx context.Context) (*model.DerivSettings, error) {
	return call[model.DerivSettings](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/settings",
	})
}

// UpdateDerivAPIKeys 更新Bybit API密钥
func (c *Client) UpdateDerivAPIKeys(ctx context.Context, apiKey, apiSecret string) (*model.MessageResult, error) {
	return call[model.MessageResult](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/bybit/settings/api",
		body:   map[string]string{"api_key": apiKey, "api_secret": apiSecret},
	})
}

// UpdateDerivStrategySettings 部分更新合约策略设置
func (c *Client) UpdateDerivStrategySettings(ctx context.Context, patch map[string]model.StrategyPatch) (*model.MessageResult, error) {
	return call[model.MessageResult](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/bybit/settings/strategy",
		body:   patch,
	})
}

// OpenDerivPosition 手动开仓
func (c *Client) OpenDerivPosition(ctx context.Context, symbol string, mode model.Mode) (*model.OpenPositionResult, error) {
	q := modeQuery(string(mode))
	q.Set("symbol", symbol)
	return call[model.OpenPositionResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/bybit/order/open",
		query:  q,
	})
}

// CloseDerivPosition 手动平仓，reason为空时使用默认原因
func (c *Client) CloseDerivPosition(ctx context.Context, positionID int64, reason string) (*model.ClosePositionResult, error) {
	if reason == "" {
		reason = DefaultCloseReason
	}
	q := url.Values{}
	q.Set("reason", reason)
	return call[model.ClosePositionResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/bybit/order/close/" + strconv.FormatInt(positionID, 10),
		query:  q,
	})
}

// DerivBotStatus 合约机器人状态
func (c *Client) DerivBotStatus(ctx context.Context, mode model.Mode) (*model.DerivBotStatus, error) {
	return call[model.DerivBotStatus](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/bybit/bot/status",
		query:  modeQuery(string(mode)),
	})
}

// StartDerivBot 启动合约机器人
func (c *Client) StartDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	return call[model.CommandResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/bybit/bot/start",
		query:  modeQuery(string(mode)),
	})
}

// StopDerivBot 停止合约机器人
func (c *Client) StopDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error) {
	return call[model.CommandResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/bybit/bot/stop",
		query:  modeQuery(string(mode)),
	})
}
