package reason

import (
	"strings"

	"github.com/life2you_mini/tradedash/internal/model"
)

// 匹配步骤名称，Trace返回
const (
	StepReason    = "reason"
	StepEntryBase = "entry_base"
	StepStrategy  = "strategy"
	StepBase      = "base"
	StepExit      = "exit"
	StepFallback  = "fallback"
	StepNone      = "none"
	StepRaw       = "raw"
)

type input struct {
	raw      string
	base     string
	strategy string
	parsed   Reason
}

// step 一次查表尝试
type step struct {
	name string
	key  func(in input) (Code, bool)
}

func (s step) lookup(in input, table map[Code]Info) (Info, bool) {
	code, ok := s.key(in)
	if !ok || code == "" {
		return Info{}, false
	}
	info, ok := table[code]
	if !ok {
		return Info{}, false
	}
	info.Code = code
	return info, true
}

// entrySteps 开仓方向按顺序尝试：原文、entry_前缀的基础原因、策略名、基础原因
var entrySteps = []step{
	{name: StepReason, key: func(in input) (Code, bool) { return Code(in.raw), true }},
	{name: StepEntryBase, key: func(in input) (Code, bool) {
		return Code(in.base), strings.HasPrefix(in.base, "entry_")
	}},
	{name: StepStrategy, key: func(in input) (Code, bool) { return Code(in.strategy), true }},
	{name: StepBase, key: func(in input) (Code, bool) { return Code(in.base), true }},
}

var exitSteps = []step{
	{name: StepExit, key: func(in input) (Code, bool) { return in.parsed.Code, in.parsed.Recognized() }},
}

// Decode 把后端的原因转换成展示信息，任何输入都有结果。raw为空表示null
func Decode(raw string, side model.Side, strategy string) Info {
	info, _ := Trace(raw, side, strategy)
	return info
}

// DecodeRecord 按成交记录解码
func DecodeRecord(rec *model.TradeRecord, withStrategy bool) Info {
	strategy := ""
	if withStrategy {
		strategy = rec.Strategy
	}
	return Decode(rec.ReasonText(), rec.Side, strategy)
}

// Trace 与Decode相同，并返回命中的步骤名
func Trace(raw string, side model.Side, strategy string) (Info, string) {
	in := input{
		raw:      raw,
		base:     BaseReason(raw),
		strategy: strategy,
		parsed:   Parse(raw),
	}

	switch {
	case side.IsEntry():
		if info, name, ok := run(entrySteps, in, longTable); ok {
			return info, name
		}
		return entryFallback(side == model.SideLongOpen), StepFallback

	case side.IsShortEntry():
		if info, name, ok := run(entrySteps, in, shortTable); ok {
			return info, name
		}
		return shortFallback, StepFallback
	}

	if info, name, ok := run(exitSteps, in, exitTable); ok {
		return info, name
	}
	if in.parsed.Empty() {
		return Info{Code: None}, StepNone
	}
	return rawEcho(raw), StepRaw
}

func run(steps []step, in input, table map[Code]Info) (Info, string, bool) {
	for _, s := range steps {
		if info, ok := s.lookup(in, table); ok {
			return info, s.name, true
		}
	}
	return Info{}, "", false
}
