package dashboard

import (
	"strings"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Tone 日志行的显示风格
type Tone string

const (
	TonePlain     Tone = "plain"
	ToneBuy       Tone = "buy"
	ToneSell      Tone = "sell"
	ToneAnalysis  Tone = "analysis"
	ToneWatchlist Tone = "watchlist"
	ToneFunding   Tone = "funding"
)

// Bold 买卖和分析结果加粗显示
func (t Tone) Bold() bool {
	return t == ToneBuy || t == ToneSell || t == ToneAnalysis
}

type toneRule struct {
	tone     Tone
	keywords []string
}

// 按顺序匹配，先命中的生效
var toneRules = map[model.Exchange][]toneRule{
	model.ExchangeUpbit: {
		{ToneBuy, []string{"매수 실행", "매수실행"}},
		{ToneSell, []string{"청산", "매도"}},
		{ToneAnalysis, []string{"전략 분석 완료", "매수 가능성 TOP"}},
		{ToneWatchlist, []string{"감시종목 변경"}},
	},
	model.ExchangeBybit: {
		{ToneBuy, []string{"롱 진입"}},
		{ToneSell, []string{"롱 청산", "손절"}},
		{ToneFunding, []string{"펀딩비"}},
	},
}

// LogTone 根据日志内容决定显示风格
func LogTone(message string, ex model.Exchange) Tone {
	rules, ok := toneRules[ex]
	if !ok {
		rules = toneRules[model.ExchangeUpbit]
	}
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.tone
			}
		}
	}
	return TonePlain
}
