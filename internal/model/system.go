package model

// BotStatus 现货机器人状态；带mode查询时填充前半部分，否则填充按模式拆分的字段
type BotStatus struct {
	IsRunning      *bool    `json:"is_running,omitempty"`
	Mode           string   `json:"mode,omitempty"`
	UptimeSeconds  *float64 `json:"uptime_seconds,omitempty"`
	LastCheck      *string  `json:"last_check,omitempty"`
	WhitelistCount int      `json:"whitelist_count"`
	ActivePosition int      `json:"active_positions"`

	SimulationRunning   *bool    `json:"simulation_running,omitempty"`
	RealRunning         *bool    `json:"real_running,omitempty"`
	SimulationUptime    *float64 `json:"simulation_uptime,omitempty"`
	RealUptime          *float64 `json:"real_uptime,omitempty"`
	SimulationLastCheck *string  `json:"simulation_last_check,omitempty"`
	RealLastCheck       *string  `json:"real_last_check,omitempty"`
}

// Running 返回指定模式是否运行中
func (s *BotStatus) Running(mode Mode) bool {
	if s == nil {
		return false
	}
	if s.IsRunning != nil && (s.Mode == "" || Mode(s.Mode) == mode) {
		return *s.IsRunning
	}
	switch mode {
	case ModeSimulation:
		return s.SimulationRunning != nil && *s.SimulationRunning
	case ModeReal:
		return s.RealRunning != nil && *s.RealRunning
	}
	return false
}

// DerivBotStatus 合约机器人状态
type DerivBotStatus struct {
	SimulationRunning bool `json:"simulation_running"`
	RealRunning       bool `json:"real_running"`
}

// Running 返回指定模式是否运行中
func (s *DerivBotStatus) Running(mode Mode) bool {
	if s == nil {
		return false
	}
	if mode == ModeReal {
		return s.RealRunning
	}
	return s.SimulationRunning
}

// WhitelistStatus 监控币种状态
type WhitelistStatus string

const (
	WhitelistWatching   WhitelistStatus = "watching"
	WhitelistPendingBuy WhitelistStatus = "pending_buy"
	WhitelistHolding    WhitelistStatus = "holding"
)

// WhitelistItem 现货监控币种
type WhitelistItem struct {
	Market         string          `json:"market"`
	KoreanName     string          `json:"korean_name"`
	EnglishName    string          `json:"english_name"`
	TradeVolume24h float64         `json:"trade_volume_24h"`
	CurrentPrice   *float64        `json:"current_price"`
	ChangeRate     *float64        `json:"change_rate"`
	Status         WhitelistStatus `json:"status"`
}

// Whitelist 现货监控列表
type Whitelist struct {
	UpdatedAt string          `json:"updated_at"`
	Coins     []WhitelistItem `json:"coins"`
}

// DerivWhitelistItem 合约监控币种
type DerivWhitelistItem struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Rank         int             `json:"rank"`
	CurrentPrice float64         `json:"current_price"`
	Volume24h    float64         `json:"volume_24h"`
	Change24h    float64         `json:"change_24h"`
	FundingRate  float64         `json:"funding_rate"`
	Status       WhitelistStatus `json:"status"`
}

// DerivWhitelist 合约监控列表
type DerivWhitelist struct {
	UpdatedAt string               `json:"updated_at"`
	Coins     []DerivWhitelistItem `json:"coins"`
}

// SystemLogEntry 后端系统日志
type SystemLogEntry struct {
	ID        int64  `json:"id"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Mode      string `json:"mode,omitempty"`
	CreatedAt string `json:"created_at"`
}

// LogPage 最近日志
type LogPage struct {
	Logs []SystemLogEntry `json:"logs"`
}

// PeriodReturns 现货区间收益
type PeriodReturns struct {
	PeriodDays    int     `json:"period_days"`
	Mode          string  `json:"mode"`
	TotalPnL      float64 `json:"total_pnl"`
	PnLPercent    float64 `json:"pnl_percent"`
	TradeCount    int     `json:"trade_count"`
	TotalInvested float64 `json:"total_invested"`
}

// DerivPeriodReturns 合约区间收益，区分已实现与未实现
type DerivPeriodReturns struct {
	PeriodReturns
	RealizedPnL   float64 `json:"realized_pnl"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
}

// ReturnsPoint 累计收益曲线上的一点
type ReturnsPoint struct {
	Timestamp               string  `json:"timestamp"`
	CumulativeReturnPercent float64 `json:"cumulative_return_percent"`
	CumulativePnL           float64 `json:"cumulative_pnl"`
	TradeCount              int     `json:"trade_count"`
}

// ReturnsChart 累计收益曲线
type ReturnsChart struct {
	DataPoints         []ReturnsPoint `json:"data_points"`
	TotalReturnPercent float64        `json:"total_return_percent"`
	TotalPnL           float64        `json:"total_pnl"`
	TotalTrades        int            `json:"total_trades"`
}

// MessageResult 只有成功标志与提示的返回
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CommandResult 启停等命令的通用返回
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"`
}

// SoldPosition 紧急卖出中的单个结果
type SoldPosition struct {
	Market        string  `json:"market"`
	Quantity      float64 `json:"quantity"`
	ExecutedPrice float64 `json:"executed_price"`
	Success       bool    `json:"success"`
}

// PanicSellResult 紧急全部卖出结果
type PanicSellResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Mode          string         `json:"mode,omitempty"`
	SoldPositions []SoldPosition `json:"sold_positions"`
}

// SellPositionResult 单币种卖出结果
type SellPositionResult struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	Mode          string  `json:"mode"`
	Market        string  `json:"market"`
	Quantity      float64 `json:"quantity"`
	ExecutedPrice float64 `json:"executed_price"`
}

// RefreshResult 监控列表刷新结果
type RefreshResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// OpenPositionResult 合约开仓结果
type OpenPositionResult struct {
	Success    bool    `json:"success"`
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
}

// ClosePositionResult 合约平仓结果
type ClosePositionResult struct {
	Success    bool    `json:"success"`
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
}
