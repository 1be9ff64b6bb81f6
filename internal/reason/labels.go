package reason

import (
	"strings"

	"github.com/life2you_mini/tradedash/internal/model"
)

// SideLabel 成交方向的显示名，isLong决定颜色
func SideLabel(side model.Side) (label string, isLong bool) {
	switch side {
	case model.SideBuy:
		return "매수", true
	case model.SideSell:
		return "매도", false
	case model.SideLongOpen:
		return "롱진입", true
	case model.SideLongClose:
		return "롱청산", false
	case model.SideShortOpen:
		return "숏진입", false
	case model.SideShortClose:
		return "숏청산", true
	}
	s := string(side)
	return s, strings.Contains(s, "buy") || strings.Contains(s, "long")
}

var strategyLabels = map[string]string{
	"squirrel":         "상승 다람쥐",
	"morning":          "샛별형",
	"inverted_hammer":  "윗꼬리양봉",
	"divergence":       "다이버전스",
	"harmonic":         "하모닉",
	"leading_diagonal": "리딩다이아",
	"manual":           "수동",
}

// StrategyLabel 历史页的策略名，带周期时显示为 "상승 다람쥐(1D)"
func StrategyLabel(strategy, timeframe string) string {
	label, ok := strategyLabels[strategy]
	if !ok {
		label = strategy
	}
	if timeframe == "" {
		return label
	}
	return label + "(" + TimeframeLabel(timeframe) + ")"
}

// TimeframeLabel 统一周期写法
func TimeframeLabel(timeframe string) string {
	switch timeframe {
	case "day", "1D":
		return "1D"
	case "minute240", "4H":
		return "4H"
	}
	return timeframe
}

var shortStrategyNames = map[string]string{
	"squirrel":                   "다람쥐",
	"morning":                    "샛별형",
	"inverted_hammer":            "역망치",
	"divergence":                 "다이버전스",
	"harmonic":                   "하모닉",
	"leading_diagonal":           "리딩다이아",
	"bearish_divergence":         "하락다이버전스",
	"evening_star":               "석별형",
	"shooting_star":              "슈팅스타",
	"bearish_engulfing":          "장대음봉",
	"leading_diagonal_breakdown": "리딩다이아BD",
}

// ShortStrategyName 图表弹窗标题用的简短策略名
func ShortStrategyName(strategy string) string {
	if name, ok := shortStrategyNames[strategy]; ok {
		return name
	}
	return strategy
}
