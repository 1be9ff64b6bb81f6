package model

// Direction 合约持仓方向
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// PositionSource 持仓来源
type PositionSource string

const (
	SourceAI     PositionSource = "ai"
	SourceManual PositionSource = "manual"
)

// PositionRecord 合约持仓快照
type PositionRecord struct {
	ID                   int64          `json:"id"`
	Symbol               string         `json:"symbol"`
	Side                 Direction      `json:"side"`
	Quantity             float64        `json:"quantity"`
	EntryPrice           float64        `json:"entry_price"`
	CurrentPrice         float64        `json:"current_price"`
	Leverage             float64        `json:"leverage"`
	MarginUsed           float64        `json:"margin_used"`
	PositionValue        float64        `json:"position_value"`
	TotalBuyAmount       float64        `json:"total_buy_amount"`
	UnrealizedPnL        float64        `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64        `json:"unrealized_pnl_percent"`
	LiquidationPrice     *float64       `json:"liquidation_price"`
	Strategy             string         `json:"strategy"`
	Timeframe            string         `json:"timeframe"`
	Source               PositionSource `json:"source,omitempty"`
	CreatedAt            string         `json:"created_at"`
}

// SpotHolding 现货持仓
type SpotHolding struct {
	Coin                 string         `json:"coin"`
	Balance              float64        `json:"balance"`
	AvgBuyPrice          float64        `json:"avg_buy_price"`
	CurrentPrice         *float64       `json:"current_price"`
	UnrealizedPnL        *float64       `json:"unrealized_pnl"`
	UnrealizedPnLPercent *float64       `json:"unrealized_pnl_percent"`
	Source               PositionSource `json:"source"`
	Strategy             *string        `json:"strategy,omitempty"`
	CanSell              bool           `json:"can_sell"` // 市值低于交易所最小下单额时为false
}

// SpotPortfolio 现货账户
type SpotPortfolio struct {
	KRWBalance      float64       `json:"krw_balance"`
	TotalAssetValue float64       `json:"total_asset_value"`
	TodayPnL        float64       `json:"today_pnl"`
	TodayPnLPercent float64       `json:"today_pnl_percent"`
	Positions       []SpotHolding `json:"positions"`
}

// DerivPortfolio 合约账户
type DerivPortfolio struct {
	USDTBalance        float64          `json:"usdt_balance"`
	TotalAssetValue    float64          `json:"total_asset_value"`
	TotalPositionValue float64          `json:"total_position_value"`
	TotalUnrealizedPnL float64          `json:"total_unrealized_pnl"`
	Positions          []PositionRecord `json:"positions"`
}
