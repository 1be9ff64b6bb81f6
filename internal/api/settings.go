package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/life2you_mini/tradedash/internal/model"
)

func exchangeQuery(exchange model.Exchange) url.Values {
	if exchange == "" {
		exchange = model.ExchangeUpbit
	}
	q := url.Values{}
	q.Set("exchange", string(exchange))
	return q
}

// Settings 读取设置
func (c *Client) Settings(ctx context.Context, exchange model.Exchange) (*model.Settings, error) {
	return call[model.Settings](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/settings",
		query:  exchangeQuery(exchange),
	})
}

// UpdateSettings 部分更新设置
func (c *Client) UpdateSettings(ctx context.Context, update model.SettingsUpdate, exchange model.Exchange) (*model.SettingsUpdateResult, error) {
	return call[model.SettingsUpdateResult](ctx, c, request{
		method: http.MethodPut,
		path:   "/api/settings",
		query:  exchangeQuery(exchange),
		body:   update,
	})
}

// TestTelegram 发送一条Telegram测试消息
func (c *Client) TestTelegram(ctx context.Context) (*model.MessageResult, error) {
	return call[model.MessageResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/settings/telegram/test",
		body:   struct{}{},
	})
}

// ValidateUpbit 校验Upbit API密钥
func (c *Client) ValidateUpbit(ctx context.Context) (*model.UpbitValidation, error) {
	return call[model.UpbitValidation](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/settings/validate-upbit",
	})
}
