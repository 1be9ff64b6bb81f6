package chart

import (
	"fmt"

	"github.com/life2you_mini/tradedash/internal/exchange"
	"github.com/life2you_mini/tradedash/internal/model"
	"github.com/life2you_mini/tradedash/internal/reason"
)

// Kind 图表来源
type Kind string

const (
	KindTrade    Kind = "trade"
	KindPosition Kind = "position"
)

// Summary 图表弹窗标题与底栏
type Summary struct {
	Coin         string
	StrategyName string
	Timeframe    string
	SideLabel    string
	IsLong       bool

	Entry       string
	StopLoss    string
	TakeProfit  string
	TakeProfit2 string // 没有二次止盈时为空
	Unit        string

	PnLLabel   string
	PnLPercent float64
	ExitReason string
}

// PnLText 收益率文本
func (s *Summary) PnLText() string {
	return fmt.Sprintf("%.2f%%", s.PnLPercent)
}

// Summarize 根据payload生成弹窗底栏，payload没有成交和持仓信息时返回nil
func Summarize(kind Kind, payload *model.ChartPayload) *Summary {
	if payload == nil || (payload.Trade == nil && payload.Position == nil) {
		return nil
	}
	profile := exchange.Lookup(payload.Exchange())
	trade, position := payload.Trade, payload.Position

	s := &Summary{Unit: profile.Unit, PnLLabel: "수익률"}
	if trade != nil {
		s.Coin, s.StrategyName, s.Timeframe = trade.Coin, trade.Strategy, trade.Timeframe
	} else {
		s.Coin, s.StrategyName, s.Timeframe = position.Coin, position.Strategy, position.Timeframe
	}
	s.StrategyName = reason.ShortStrategyName(s.StrategyName)
	s.SideLabel, s.IsLong = sideDisplay(kind, trade, position)

	levels := payload.Levels
	s.Entry = profile.FormatPlain(entryPrice(payload))
	s.StopLoss = profile.FormatPlain(levels.StopLoss)
	s.TakeProfit = profile.FormatPlain(levels.TakeProfit)
	if levels.TakeProfit2 != nil && *levels.TakeProfit2 != 0 {
		s.TakeProfit2 = profile.FormatPlain(levels.TakeProfit2)
	}

	switch {
	case trade != nil && trade.PnLPercent != nil:
		s.PnLPercent = *trade.PnLPercent
	case position != nil:
		s.PnLPercent = position.PnLPercent
	}
	if kind == KindPosition {
		s.PnLLabel = "현재 수익률"
	}
	if kind == KindTrade && trade != nil {
		s.ExitReason = trade.Reason
	}
	return s
}

func sideDisplay(kind Kind, trade *model.ChartTrade, position *model.ChartPosition) (string, bool) {
	switch {
	case kind == KindTrade && trade != nil:
		switch trade.Side {
		case model.SideBuy:
			return "매수", true
		case model.SideSell:
			return "매도", false
		}
		return reason.SideLabel(trade.Side)
	case kind == KindPosition && position != nil:
		if position.Direction == model.DirectionShort {
			return "숏", false
		}
		return "롱", true
	}
	return "-", true
}

// entryPrice 依次取价格线、持仓均价、成交价
func entryPrice(payload *model.ChartPayload) *float64 {
	candidates := []*float64{payload.Levels.Entry}
	if payload.Position != nil {
		candidates = append(candidates, payload.Position.EntryPrice)
	}
	if payload.Trade != nil {
		candidates = append(candidates, payload.Trade.Price)
	}
	for _, c := range candidates {
		if c != nil && *c != 0 {
			return c
		}
	}
	return nil
}
