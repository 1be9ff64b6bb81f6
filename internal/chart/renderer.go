package chart

import (
	"math"

	"github.com/life2you_mini/tradedash/internal/model"
)

// LineStyle 线型
type LineStyle int

const (
	Solid  LineStyle = 0
	Dashed LineStyle = 2
)

// Point 折线上的一点，Value为NaN时留空
type Point struct {
	Time  int64
	Value float64
}

// Gap 是否为空白点
func (p Point) Gap() bool {
	return math.IsNaN(p.Value)
}

// LogicalRange 时间轴上可见的逻辑范围（按K线下标）
type LogicalRange struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// PaneOptions 创建面板的参数
type PaneOptions struct {
	Width          int
	Height         int
	TimeVisible    bool
	PriceFormatter func(price float64) string
}

// CandleOptions K线颜色
type CandleOptions struct {
	UpColor   string
	DownColor string
}

// LineOptions 折线参数
type LineOptions struct {
	Name  string
	Color string
	Width int
	Style LineStyle
}

// PriceLineOptions 水平价格线参数
type PriceLineOptions struct {
	Price     float64
	Color     string
	Width     int
	Style     LineStyle
	Title     string
	AxisLabel bool
}

// Renderer 图表后端，每个挂载点同时只能有一个存活的面板
type Renderer interface {
	NewPane(mount string, opts PaneOptions) (LinePane, error)
}

// LinePane 一个图表面板
type LinePane interface {
	AddCandles(opts CandleOptions) PriceSeries
	AddLine(opts LineOptions) PriceSeries
	TimeScale() TimeScale
	Resize(width int)
	Remove()
}

// PriceSeries 面板上的一个序列
type PriceSeries interface {
	SetCandles(candles []model.Candle)
	SetPoints(points []Point)
	CreatePriceLine(opts PriceLineOptions) PriceLine
	Len() int
}

// PriceLine 水平价格线
type PriceLine interface {
	Price() float64
	Title() string
	Remove()
}

// TimeScale 面板的时间轴
type TimeScale interface {
	VisibleRange() (LogicalRange, bool)
	SetVisibleRange(r LogicalRange)
	// SubscribeVisibleRange 可见范围变化时回调，返回取消订阅函数
	SubscribeVisibleRange(fn func(LogicalRange)) (unsubscribe func())
	FitContent()
}

// Viewport 窗口尺寸变化的来源
type Viewport interface {
	OnResize(fn func(width int)) (cancel func())
}
