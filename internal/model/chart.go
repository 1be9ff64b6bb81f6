package model

import (
	"encoding/json"
	"math"
)

// Candle K线
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Series 指标序列，数组中的null解码为NaN（图表上留空）
type Series []float64

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	raw := make([]*float64, len(s))
	for i := range s {
		if math.IsNaN(s[i]) {
			continue
		}
		v := s[i]
		raw[i] = &v
	}
	return json.Marshal(raw)
}

// Indicators 与K线按下标对齐的指标序列，缺失的键为nil
type Indicators struct {
	RSI      Series `json:"rsi,omitempty"`
	MA5      Series `json:"ma5,omitempty"`
	MA20     Series `json:"ma20,omitempty"`
	BBUpper  Series `json:"bb_upper,omitempty"`
	BBLower  Series `json:"bb_lower,omitempty"`
	BBMiddle Series `json:"bb_middle,omitempty"`
}

// Levels 价格水平线
type Levels struct {
	Entry       *float64 `json:"entry"`
	StopLoss    *float64 `json:"stop_loss"`
	TakeProfit  *float64 `json:"take_profit"`
	TakeProfit2 *float64 `json:"take_profit_2"`
}

// PatternMarker 形态标记
type PatternMarker struct {
	Type    string `json:"type"`
	Indices []int  `json:"indices,omitempty"`
	Index   *int   `json:"index,omitempty"`
}

// Pattern 后端识别出的形态
type Pattern struct {
	Type    string          `json:"type"`
	Markers []PatternMarker `json:"markers"`
}

// ChartTrade 图表对应的成交信息
type ChartTrade struct {
	ID          int64    `json:"id"`
	Coin        string   `json:"coin"`
	Strategy    string   `json:"strategy"`
	Timeframe   string   `json:"timeframe"`
	Side        Side     `json:"side"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
	PnL         *float64 `json:"pnl"`
	PnLPercent  *float64 `json:"pnl_percent"`
	Reason      string   `json:"reason"`
	Confidence  *float64 `json:"confidence"`
	CreatedAt   *string  `json:"created_at"`
	Exchange    Exchange `json:"exchange"`
	HasSnapshot bool     `json:"has_snapshot,omitempty"`
}

// ChartPosition 图表对应的持仓信息
type ChartPosition struct {
	ID           int64     `json:"id"`
	Coin         string    `json:"coin"`
	Strategy     string    `json:"strategy"`
	Timeframe    string    `json:"timeframe"`
	Direction    Direction `json:"direction"`
	EntryPrice   *float64  `json:"entry_price"`
	Quantity     *float64  `json:"quantity"`
	CurrentPrice float64   `json:"current_price"`
	PnLPercent   float64   `json:"pnl_percent"`
	CreatedAt    *string   `json:"created_at"`
	Exchange     Exchange  `json:"exchange"`
}

// ChartPayload 图表弹窗数据，每次打开都重新获取
type ChartPayload struct {
	Candles    []Candle       `json:"candles"`
	Indicators Indicators     `json:"indicators"`
	Levels     Levels         `json:"levels"`
	Pattern    *Pattern       `json:"pattern,omitempty"`
	Trade      *ChartTrade    `json:"trade,omitempty"`
	Position   *ChartPosition `json:"position,omitempty"`
}

// Exchange 返回数据所属交易所，默认upbit
func (p *ChartPayload) Exchange() Exchange {
	if p.Trade != nil && p.Trade.Exchange != "" {
		return p.Trade.Exchange
	}
	if p.Position != nil && p.Position.Exchange != "" {
		return p.Position.Exchange
	}
	return ExchangeUpbit
}
