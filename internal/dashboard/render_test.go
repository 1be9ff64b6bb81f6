package dashboard_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/life2you_mini/tradedash/internal/dashboard"
	"github.com/life2you_mini/tradedash/internal/model"
)

func TestRender_Spot(t *testing.T) {
	snap := dashboard.SpotSnapshot{
		Mode:    model.ModeReal,
		Running: true,
		Portfolio: &model.SpotPortfolio{
			KRWBalance:      1500000,
			TotalAssetValue: 2500000,
			Positions: []model.SpotHolding{
				{Coin: "KRW-BTC", AvgBuyPrice: 95000000, UnrealizedPnLPercent: floatPtr(1.5), Source: model.SourceAI},
			},
		},
		Whitelist: []model.WhitelistItem{{Market: "KRW-ETH", KoreanName: "이더리움", Status: model.WhitelistWatching}},
		Logs:      []model.SystemLogEntry{{Level: "INFO", Message: "매수 실행 KRW-BTC"}},
		Errors:    map[string]string{"returns:real": "HTTP 500"},
	}

	var buf bytes.Buffer
	require.NoError(t, dashboard.Render(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "실전투자")
	assert.Contains(t, out, "실행 중")
	assert.Contains(t, out, "₩2,500,000")
	assert.Contains(t, out, "₩95,000,000")
	assert.Contains(t, out, "+1.50%")
	assert.Contains(t, out, "이더리움")
	assert.Contains(t, out, "+ ")
	assert.Contains(t, out, "! returns:real")
}

func TestRender_History(t *testing.T) {
	snap := &dashboard.HistorySnapshot{
		Exchange: model.ExchangeBybit,
		Limit:    50,
		Total:    1,
		Rows: []dashboard.HistoryRow{
			{CreatedAt: "2025-01-01", Mode: model.ModeSimulation, Coin: "BTC", Side: "숏진입", Price: "$0.5000", PnL: "-", PnLPercent: "-"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, dashboard.Render(&buf, snap))
	out := buf.String()
	assert.Contains(t, out, "BYBIT")
	assert.Contains(t, out, "1 - 1 / 1")
	assert.Contains(t, out, "숏진입")
	assert.Contains(t, out, "모의투자")
}

func TestRender_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, dashboard.Render(&buf, 42))
}

func TestRenderLogs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dashboard.RenderLogs(&buf, []model.SystemLogEntry{
		{Level: "INFO", Message: "펀딩비 정산"},
		{Level: "INFO", Message: "heartbeat"},
	}, model.ExchangeBybit))
	assert.Contains(t, buf.String(), "$ ")
	assert.Contains(t, buf.String(), "heartbeat")
}
