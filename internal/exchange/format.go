package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatMax 最多保留digits位小数，去掉末尾的0，整数部分千分位分组
func formatMax(value float64, digits int32) string {
	return group(decimal.NewFromFloat(value).Round(digits).String())
}

// formatRange 保留minDigits到maxDigits位小数
func formatRange(value float64, minDigits, maxDigits int32) string {
	d := decimal.NewFromFloat(value).Round(maxDigits)
	s := d.String()
	digits := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		digits = len(s) - i - 1
	}
	if int32(digits) < minDigits {
		return group(d.StringFixed(minDigits))
	}
	return group(s)
}

// formatFixed 固定digits位小数
func formatFixed(value float64, digits int32) string {
	return group(decimal.NewFromFloat(value).StringFixed(digits))
}

// formatKRW 10원 미만 8位小数，100원 미만 2位小数，其余取整
func formatKRW(value float64) string {
	switch {
	case value > 0 && value < 10:
		return formatMax(value, 8)
	case value < 100:
		return formatMax(value, 2)
	}
	return formatMax(value, 0)
}

// formatUSDT 1美元以下4位小数，其余2位
func formatUSDT(value float64) string {
	if value < 1 {
		return formatFixed(value, 4)
	}
	return formatFixed(value, 2)
}

// FormatPercent 带符号的百分比，nil显示为 "-"
func FormatPercent(value *float64) string {
	if value == nil {
		return "-"
	}
	s := decimal.NewFromFloat(*value).StringFixed(2)
	if *value >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// group 给数字字符串的整数部分加千分位逗号
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
