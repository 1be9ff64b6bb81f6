package reason

import "strings"

// Code 已识别的原因代码
type Code string

// 做多开仓（现货买入、合约开多）
const (
	EntrySquirrel        Code = "entry_squirrel"
	EntryMorning         Code = "entry_morning"
	EntryInvertedHammer  Code = "entry_inverted_hammer"
	EntryDivergence      Code = "entry_divergence"
	EntryHarmonic        Code = "entry_harmonic"
	EntryLeadingDiagonal Code = "entry_leading_diagonal"
	LongSquirrel         Code = "squirrel"
	LongMorning          Code = "morning"
	LongInvertedHammer   Code = "inverted_hammer"
	LongDivergence       Code = "divergence"
	LongHarmonic         Code = "harmonic"
	LongLeadingDiagonal  Code = "leading_diagonal"
)

// 合约开空
const (
	ShortBearishDivergence Code = "bearish_divergence"
	ShortEveningStar       Code = "evening_star"
	ShortShootingStar      Code = "shooting_star"
	ShortBearishEngulfing  Code = "bearish_engulfing"
	ShortBreakdown         Code = "breakdown"
)

// 平仓
const (
	TakeProfit  Code = "take_profit"
	StopLoss    Code = "stop_loss"
	PanicSell   Code = "panic_sell"
	ManualClose Code = "manual_close"
)

// None 没有原因；Unrecognized 无法识别的原因，原文保存在Reason.Raw
const (
	None         Code = ""
	Unrecognized Code = "unrecognized"
)

// aliases 后端有时发送本地化的原因，在入口处统一成机器代码
var aliases = map[string]Code{
	"익절":    TakeProfit,
	"손절":    StopLoss,
	"긴급매도":  PanicSell,
	"수동 청산": ManualClose,
	"수동":    ManualClose,
}

// Reason 解析后的原因：已识别代码或 Unrecognized(Raw)
type Reason struct {
	Code Code
	Raw  string
}

// Recognized 是否为已知代码
func (r Reason) Recognized() bool {
	return r.Code != None && r.Code != Unrecognized
}

// Empty 原因为空或null
func (r Reason) Empty() bool {
	return r.Code == None
}

// BaseReason 去掉附加说明，如 "stop_loss (lost -2.5%)" -> "stop_loss"
func BaseReason(raw string) string {
	first := raw
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		first = raw[:i]
	}
	if i := strings.IndexByte(first, '('); i >= 0 {
		first = first[:i]
	}
	return strings.TrimSpace(first)
}

// Parse 把原始原因归一成Reason，只在这里处理本地化别名
func Parse(raw string) Reason {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Reason{Code: None}
	}
	if code, ok := aliases[trimmed]; ok {
		return Reason{Code: code, Raw: raw}
	}

	base := BaseReason(trimmed)
	if code, ok := aliases[base]; ok {
		return Reason{Code: code, Raw: raw}
	}
	if _, ok := known[Code(base)]; ok {
		return Reason{Code: Code(base), Raw: raw}
	}
	return Reason{Code: Unrecognized, Raw: raw}
}
