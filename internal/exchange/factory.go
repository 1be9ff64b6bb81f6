package exchange

import (
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Upbit 韩国现货交易所，KRW计价
func Upbit() *Profile {
	return &Profile{
		Name:     model.ExchangeUpbit,
		Title:    "Upbit",
		Family:   CurrencyUnit,
		Currency: "KRW",
		Symbol:   "₩",
		Unit:     "원",
		Market:   "spot",
	}
}

// Bybit 合约交易所，USDT计价
func Bybit() *Profile {
	return &Profile{
		Name:     model.ExchangeBybit,
		Title:    "Bybit",
		Family:   DecimalFraction,
		Currency: "USDT",
		Symbol:   "$",
		Unit:     "$",
		Market:   "derivatives",
	}
}

// NewDefaultRegistry 创建注册表并注册所有支持的交易所
func NewDefaultRegistry(logger *zap.Logger) *Registry {
	registry := NewRegistry()

	registry.Register(Upbit())
	logger.Debug("Upbit交易所已注册")

	registry.Register(Bybit())
	logger.Debug("Bybit交易所已注册")

	return registry
}

var defaultRegistry = NewDefaultRegistry(zap.NewNop())

// Lookup 在默认注册表中查找交易所
func Lookup(name model.Exchange) *Profile {
	return defaultRegistry.Lookup(name)
}
