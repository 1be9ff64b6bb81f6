package model

// Mode 交易模式
type Mode string

const (
	ModeSimulation Mode = "simulation"
	ModeReal       Mode = "real"
)

// Modes 所有交易模式，按页面展示顺序
var Modes = []Mode{ModeSimulation, ModeReal}

// Exchange 交易所标识
type Exchange string

const (
	ExchangeUpbit Exchange = "upbit" // 现货，KRW计价
	ExchangeBybit Exchange = "bybit" // 合约，USDT计价
)

// Side 成交方向
type Side string

const (
	SideBuy        Side = "buy"
	SideSell       Side = "sell"
	SideLongOpen   Side = "long_open"
	SideLongClose  Side = "long_close"
	SideShortOpen  Side = "short_open"
	SideShortClose Side = "short_close"
)

// IsEntry 做多方向的开仓（现货买入或合约开多）
func (s Side) IsEntry() bool {
	return s == SideBuy || s == SideLongOpen
}

// IsShortEntry 合约开空
func (s Side) IsShortEntry() bool {
	return s == SideShortOpen
}

// IsClosing 平仓方向，只有这些方向带有已实现盈亏
func (s Side) IsClosing() bool {
	return !s.IsEntry() && !s.IsShortEntry()
}

// TradeRecord 历史成交记录，现货与合约共用
type TradeRecord struct {
	ID          int64    `json:"id"`
	Mode        Mode     `json:"mode"`
	Strategy    string   `json:"strategy"`
	Timeframe   string   `json:"timeframe"`
	Coin        string   `json:"coin,omitempty"`   // 现货: KRW-BTC
	Symbol      string   `json:"symbol,omitempty"` // 合约: BTCUSDT
	Side        Side     `json:"side"`
	Price       float64  `json:"price"`
	Quantity    float64  `json:"quantity"`
	TotalAmount float64  `json:"total_amount"`
	PnL         *float64 `json:"pnl"`
	PnLPercent  *float64 `json:"pnl_percent"`
	Confidence  *float64 `json:"confidence"`
	Leverage    *float64 `json:"leverage,omitempty"`
	FundingFee  *float64 `json:"funding_fee,omitempty"`
	Reason      *string  `json:"reason"`
	OrderID     *string  `json:"order_id,omitempty"`
	StopLoss    *float64 `json:"stop_loss"`
	TakeProfit  *float64 `json:"take_profit"`
	TakeProfit2 *float64 `json:"take_profit_2"`
	CreatedAt   string   `json:"created_at"`
}

// Instrument 返回交易标的，现货用coin，合约用symbol
func (t *TradeRecord) Instrument() string {
	if t.Coin != "" {
		return t.Coin
	}
	return t.Symbol
}

// ReasonText 返回成交原因，null时为空字符串
func (t *TradeRecord) ReasonText() string {
	if t.Reason == nil {
		return ""
	}
	return *t.Reason
}

// TradeHistory 成交历史分页结果
type TradeHistory struct {
	Total int           `json:"total"`
	Logs  []TradeRecord `json:"logs"`
}

// HistoryQuery 成交历史查询参数，零值字段不发送
type HistoryQuery struct {
	Mode     Mode
	Strategy string
	Coin     string
	Side     Side
	Exchange Exchange
	Limit    int
	Offset   int
}
