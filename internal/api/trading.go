package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Whitelist 现货监控列表
func (c *Client) Whitelist(ctx context.Context, mode model.Mode) (*model.Whitelist, error) {
	return call[model.Whitelist](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/whitelist",
		query:  modeQuery(string(mode)),
	})
}

// RefreshWhitelist 让后端重新计算监控列表
func (c *Client) RefreshWhitelist(ctx context.Context) (*model.RefreshResult, error) {
	return call[model.RefreshResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/trading/whitelist/refresh",
	})
}

// TradeHistory 现货成交历史
func (c *Client) TradeHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error) {
	return call[model.TradeHistory](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/history",
		query:  historyQuery(q),
	})
}

// Portfolio 现货账户
func (c *Client) Portfolio(ctx context.Context, mode model.Mode) (*model.SpotPortfolio, error) {
	return call[model.SpotPortfolio](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/portfolio",
		query:  modeQuery(string(mode)),
	})
}

// RecentLogs 现货最近系统日志
func (c *Client) RecentLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error) {
	return call[model.LogPage](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/logs/recent",
		query:  logsQuery(limit, mode),
	})
}

// PeriodReturns 现货区间收益
func (c *Client) PeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.PeriodReturns, error) {
	return call[model.PeriodReturns](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/returns",
		query:  returnsQuery(mode, days),
	})
}

// ReturnsChart 现货累计收益曲线
func (c *Client) ReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error) {
	return call[model.ReturnsChart](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/trading/history/returns-chart",
		query:  chartQuery(mode, strategy),
	})
}

// historyQuery 只发送非零值参数
func historyQuery(h model.HistoryQuery) url.Values {
	q := url.Values{}
	if h.Mode != "" {
		q.Set("mode", string(h.Mode))
	}
	if h.Strategy != "" {
		q.Set("strategy", h.Strategy)
	}
	if h.Coin != "" {
		q.Set("coin", h.Coin)
	}
	if h.Side != "" {
		q.Set("side", string(h.Side))
	}
	if h.Exchange != "" {
		q.Set("exchange", string(h.Exchange))
	}
	if h.Limit > 0 {
		q.Set("limit", strconv.Itoa(h.Limit))
	}
	if h.Offset > 0 {
		q.Set("offset", strconv.Itoa(h.Offset))
	}
	return q
}

func logsQuery(limit int, mode model.Mode) url.Values {
	q := modeQuery(string(mode))
	if limit <= 0 {
		limit = 100
	}
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func returnsQuery(mode model.Mode, days int) url.Values {
	q := modeQuery(string(mode))
	if days <= 0 {
		days = 1
	}
	q.Set("days", strconv.Itoa(days))
	return q
}

func chartQuery(mode model.Mode, strategy string) url.Values {
	q := modeQuery(string(mode))
	if strategy != "" {
		q.Set("strategy", strategy)
	}
	return q
}
