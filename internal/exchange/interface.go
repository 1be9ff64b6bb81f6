package exchange

import (
	"strings"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Family 价格展示方式
type Family int

const (
	// CurrencyUnit 以货币单位计价，取整较粗（KRW）
	CurrencyUnit Family = iota
	// DecimalFraction 以小数计价，低价时保留更多小数（USDT）
	DecimalFraction
)

func (f Family) String() string {
	if f == DecimalFraction {
		return "decimal_fraction"
	}
	return "currency_unit"
}

// Profile 交易所展示配置
type Profile struct {
	Name     model.Exchange
	Title    string
	Family   Family
	Currency string // KRW / USDT
	Symbol   string // 坐标轴与提示框的前缀
	Unit     string // 底栏价格后缀
	Market   string // spot / derivatives
}

// IsDerivatives 是否为合约交易所
func (p *Profile) IsDerivatives() bool {
	return p.Market == "derivatives"
}

// AxisFormatter 返回坐标轴和提示框共用的价格格式化函数。小数计价至少保留2位小数
func (p *Profile) AxisFormatter() func(price float64) string {
	var minDigits int32
	if p.Family == DecimalFraction {
		minDigits = 2
	}
	return func(price float64) string {
		return p.Symbol + formatRange(price, minDigits, p.axisDigits(price))
	}
}

func (p *Profile) axisDigits(price float64) int32 {
	if p.Family == DecimalFraction {
		switch {
		case price >= 1000:
			return 2
		case price >= 1:
			return 4
		}
		return 6
	}
	if price >= 1000 {
		return 0
	}
	return 4
}

// FormatPlain 底栏价格，不带货币符号，nil显示为 "-"
func (p *Profile) FormatPlain(price *float64) string {
	if price == nil {
		return "-"
	}
	v := *price
	if p.Family == DecimalFraction {
		if v >= 1 {
			return formatMax(v, 4)
		}
		return formatMax(v, 6)
	}
	if v >= 1000 {
		return formatMax(v, 0)
	}
	return formatMax(v, 4)
}

// FormatPrice 列表中的成交价
func (p *Profile) FormatPrice(value float64) string {
	if p.Family == DecimalFraction {
		return formatUSDT(value)
	}
	return formatKRW(value)
}

// FormatMoney 带符号的金额，如 ₩1,234 或 $12.50
func (p *Profile) FormatMoney(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	return sign + p.Symbol + p.FormatPrice(value)
}

// FormatSignedMoney 盈亏金额，正数带 "+"
func (p *Profile) FormatSignedMoney(value float64) string {
	if value >= 0 {
		return "+" + p.FormatMoney(value)
	}
	return p.FormatMoney(value)
}

// DisplayCoin KRW-BTC -> BTC, BTCUSDT -> BTC
func (p *Profile) DisplayCoin(symbol string) string {
	if p.Family == DecimalFraction {
		return strings.Replace(symbol, "USDT", "", 1)
	}
	return strings.Replace(symbol, "KRW-", "", 1)
}
