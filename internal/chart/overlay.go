package chart

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/exchange"
	"github.com/life2you_mini/tradedash/internal/model"
)

// ErrNoPayload 没有图表数据
var ErrNoPayload = errors.New("没有图表数据")

// 颜色
const (
	ColorUp        = "#26a69a"
	ColorDown      = "#ef5350"
	ColorMA5       = "#2196F3"
	ColorMA20      = "#FF9800"
	ColorBollinger = "rgba(156, 39, 176, 0.5)"
	ColorRSI       = "#ab47bc"
	ColorEntry     = "#2196F3"
	ColorStopLoss  = "#ef5350"
	ColorTP        = "#26a69a"
	ColorTP2       = "#4caf50"
)

// RSI参考线
const (
	RSIOversold   = 30
	RSIOverbought = 70
)

// Mounts 面板挂载点，Oscillator为空时不画RSI面板
type Mounts struct {
	Main       string
	Oscillator string
}

// Options 面板尺寸
type Options struct {
	Width            int
	MainHeight       int
	OscillatorHeight int
}

// DefaultOptions 默认尺寸
func DefaultOptions() Options {
	return Options{Width: 960, MainHeight: 350, OscillatorHeight: 100}
}

// Overlay 把ChartPayload画到主图和RSI副图上
type Overlay struct {
	renderer Renderer
	viewport Viewport
	opts     Options
	logger   *zap.Logger

	mu           sync.Mutex
	main         LinePane
	oscillator   LinePane
	unsubscribe  func()
	cancelResize func()
}

// NewOverlay 创建图表叠加层，viewport可以为nil
func NewOverlay(renderer Renderer, viewport Viewport, opts Options, logger *zap.Logger) *Overlay {
	return &Overlay{
		renderer: renderer,
		viewport: viewport,
		opts:     opts,
		logger:   logger.With(zap.String("component", "chart")),
	}
}

// Build 先销毁上一次的面板，再按payload重新构建。缺失的指标或价格线直接省略
func (o *Overlay) Build(payload *model.ChartPayload, mounts Mounts) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.disposeLocked()

	if payload == nil {
		return ErrNoPayload
	}

	profile := exchange.Lookup(payload.Exchange())

	main, err := o.renderer.NewPane(mounts.Main, PaneOptions{
		Width:          o.opts.Width,
		Height:         o.opts.MainHeight,
		TimeVisible:    true,
		PriceFormatter: profile.AxisFormatter(),
	})
	if err != nil {
		return fmt.Errorf("创建主图失败: %w", err)
	}
	o.main = main

	candles := main.AddCandles(CandleOptions{UpColor: ColorUp, DownColor: ColorDown})
	candles.SetCandles(payload.Candles)

	ind := payload.Indicators
	addLine(main, payload.Candles, ind.MA5, LineOptions{Name: "ma5", Color: ColorMA5, Width: 1})
	addLine(main, payload.Candles, ind.MA20, LineOptions{Name: "ma20", Color: ColorMA20, Width: 1})

	// 布林带上下轨必须成对出现
	if ind.BBUpper != nil && ind.BBLower != nil {
		addLine(main, payload.Candles, ind.BBUpper, LineOptions{Name: "bb_upper", Color: ColorBollinger, Width: 1, Style: Dashed})
		addLine(main, payload.Candles, ind.BBLower, LineOptions{Name: "bb_lower", Color: ColorBollinger, Width: 1, Style: Dashed})
		addLine(main, payload.Candles, ind.BBMiddle, LineOptions{Name: "bb_middle", Color: ColorBollinger, Width: 1})
	}

	for _, level := range levelLines(payload.Levels) {
		candles.CreatePriceLine(level)
	}

	main.TimeScale().FitContent()

	if ind.RSI != nil && mounts.Oscillator != "" {
		if err := o.buildOscillator(payload.Candles, ind.RSI, mounts.Oscillator); err != nil {
			o.disposeLocked()
			return err
		}
	}

	if o.viewport != nil {
		mainPane, oscPane := o.main, o.oscillator
		o.cancelResize = o.viewport.OnResize(func(width int) {
			mainPane.Resize(width)
			if oscPane != nil {
				oscPane.Resize(width)
			}
		})
	}

	o.logger.Debug("图表已构建",
		zap.String("exchange", string(profile.Name)),
		zap.Int("candles", len(payload.Candles)),
		zap.Bool("oscillator", o.oscillator != nil))
	return nil
}

func (o *Overlay) buildOscillator(candles []model.Candle, rsi []float64, mount string) error {
	osc, err := o.renderer.NewPane(mount, PaneOptions{
		Width:  o.opts.Width,
		Height: o.opts.OscillatorHeight,
	})
	if err != nil {
		return fmt.Errorf("创建RSI面板失败: %w", err)
	}
	o.oscillator = osc

	series := addLine(osc, candles, rsi, LineOptions{Name: "rsi", Color: ColorRSI, Width: 2})
	series.CreatePriceLine(PriceLineOptions{Price: RSIOversold, Color: ColorUp, Width: 1, Style: Dashed})
	series.CreatePriceLine(PriceLineOptions{Price: RSIOverbought, Color: ColorDown, Width: 1, Style: Dashed})

	// 只由主图驱动副图
	oscScale := osc.TimeScale()
	o.unsubscribe = o.main.TimeScale().SubscribeVisibleRange(func(r LogicalRange) {
		oscScale.SetVisibleRange(r)
	})
	return nil
}

// addLine values为nil时不添加序列
func addLine(pane LinePane, candles []model.Candle, values []float64, opts LineOptions) PriceSeries {
	if values == nil {
		return nil
	}
	series := pane.AddLine(opts)
	series.SetPoints(Align(candles, values))
	return series
}

// levelLines 入场、止损、止盈、二次止盈，nil或0不画
func levelLines(levels model.Levels) []PriceLineOptions {
	specs := []struct {
		price *float64
		opts  PriceLineOptions
	}{
		{levels.Entry, PriceLineOptions{Color: ColorEntry, Width: 2, Style: Solid, Title: "진입", AxisLabel: true}},
		{levels.StopLoss, PriceLineOptions{Color: ColorStopLoss, Width: 2, Style: Dashed, Title: "손절", AxisLabel: true}},
		{levels.TakeProfit, PriceLineOptions{Color: ColorTP, Width: 2, Style: Dashed, Title: "익절", AxisLabel: true}},
		{levels.TakeProfit2, PriceLineOptions{Color: ColorTP2, Width: 1, Style: Dashed, Title: "2차익절", AxisLabel: true}},
	}

	var lines []PriceLineOptions
	for _, s := range specs {
		if s.price == nil || *s.price == 0 {
			continue
		}
		opts := s.opts
		opts.Price = *s.price
		lines = append(lines, opts)
	}
	return lines
}

// Dispose 释放订阅、resize监听和面板，可重复调用
func (o *Overlay) Dispose() {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.disposeLocked()
}

func (o *Overlay) disposeLocked() {
	if o.cancelResize != nil {
		o.cancelResize()
		o.cancelResize = nil
	}
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
	if o.oscillator != nil {
		o.oscillator.Remove()
		o.oscillator = nil
	}
	if o.main != nil {
		o.main.Remove()
		o.main = nil
	}
}

// Built 当前是否有存活的主图
func (o *Overlay) Built() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.main != nil
}

// HasOscillator 当前是否有RSI面板
func (o *Overlay) HasOscillator() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.oscillator != nil
}
