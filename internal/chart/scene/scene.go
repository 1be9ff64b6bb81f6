// Package scene 内存中的图表后端，记录面板、序列和价格线，可导出为JSON文档
package scene

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/chart"
	"github.com/life2you_mini/tradedash/internal/model"
)

// ErrMountBusy 挂载点上已有存活的面板
var ErrMountBusy = errors.New("挂载点已被占用")

// Renderer 内存渲染器
type Renderer struct {
	mu      sync.Mutex
	panes   map[string]*Pane
	created int
	logger  *zap.Logger
}

// NewRenderer 创建内存渲染器
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{
		panes:  make(map[string]*Pane),
		logger: logger.With(zap.String("component", "scene")),
	}
}

// NewPane 在挂载点上创建面板
func (r *Renderer) NewPane(mount string, opts chart.PaneOptions) (chart.LinePane, error) {
	if mount == "" {
		return nil, fmt.Errorf("挂载点不能为空")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.panes[mount]; busy {
		return nil, fmt.Errorf("%w: %s", ErrMountBusy, mount)
	}

	p := &Pane{
		renderer: r,
		mount:    mount,
		opts:     opts,
		width:    opts.Width,
	}
	p.timeScale = &TimeScale{pane: p, subscribers: make(map[int]func(chart.LogicalRange))}
	r.panes[mount] = p
	r.created++
	r.logger.Debug("面板已创建", zap.String("mount", mount))
	return p, nil
}

func (r *Renderer) release(p *Pane) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panes[p.mount] == p {
		delete(r.panes, p.mount)
	}
}

// Pane 返回挂载点上存活的面板
func (r *Renderer) Pane(mount string) (*Pane, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.panes[mount]
	return p, ok
}

// LiveCount 存活的面板数
func (r *Renderer) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panes)
}

// Created 累计创建过的面板数
func (r *Renderer) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

func (r *Renderer) livePanes() []*Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	panes := make([]*Pane, 0, len(r.panes))
	for _, p := range r.panes {
		panes = append(panes, p)
	}
	sort.Slice(panes, func(i, j int) bool { return panes[i].mount < panes[j].mount })
	return panes
}

// Pane 内存面板
type Pane struct {
	renderer  *Renderer
	mount     string
	opts      chart.PaneOptions
	timeScale *TimeScale

	mu      sync.Mutex
	width   int
	series  []*Series
	removed bool
}

func (p *Pane) AddCandles(opts chart.CandleOptions) chart.PriceSeries {
	s := &Series{kind: "candles", candleOpts: opts}
	p.addSeries(s)
	return s
}

func (p *Pane) AddLine(opts chart.LineOptions) chart.PriceSeries {
	s := &Series{kind: "line", lineOpts: opts}
	p.addSeries(s)
	return s
}

func (p *Pane) addSeries(s *Series) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.series = append(p.series, s)
}

func (p *Pane) TimeScale() chart.TimeScale {
	return p.timeScale
}

// Resize 已移除的面板忽略
func (p *Pane) Resize(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.removed {
		return
	}
	p.width = width
}

// Remove 移除面板并释放挂载点，可重复调用
func (p *Pane) Remove() {
	p.mu.Lock()
	if p.removed {
		p.mu.Unlock()
		return
	}
	p.removed = true
	p.mu.Unlock()

	p.timeScale.clear()
	p.renderer.release(p)
}

// Pan 模拟用户拖动或缩放
func (p *Pane) Pan(r chart.LogicalRange) {
	p.timeScale.SetVisibleRange(r)
}

// Removed 是否已移除
func (p *Pane) Removed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removed
}

// Width 当前宽度
func (p *Pane) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

// Height 面板高度
func (p *Pane) Height() int {
	return p.opts.Height
}

// Series 按添加顺序返回所有序列
func (p *Pane) Series() []*Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Series(nil), p.series...)
}

// Line 按名称查找折线
func (p *Pane) Line(name string) (*Series, bool) {
	for _, s := range p.Series() {
		if s.kind == "line" && s.lineOpts.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Candles 返回K线序列
func (p *Pane) Candles() (*Series, bool) {
	for _, s := range p.Series() {
		if s.kind == "candles" {
			return s, true
		}
	}
	return nil, false
}

func (p *Pane) bars() int {
	n := 0
	for _, s := range p.Series() {
		if l := s.Len(); l > n {
			n = l
		}
	}
	return n
}

// Format 用面板的价格格式化函数格式化
func (p *Pane) Format(price float64) string {
	if p.opts.PriceFormatter == nil {
		return fmt.Sprintf("%g", price)
	}
	return p.opts.PriceFormatter(price)
}

// Series 内存序列
type Series struct {
	kind       string
	lineOpts   chart.LineOptions
	candleOpts chart.CandleOptions

	mu      sync.Mutex
	candles []model.Candle
	points  []chart.Point
	lines   []*PriceLine
}

func (s *Series) SetCandles(candles []model.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candles = append([]model.Candle(nil), candles...)
}

func (s *Series) SetPoints(points []chart.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = append([]chart.Point(nil), points...)
}

func (s *Series) CreatePriceLine(opts chart.PriceLineOptions) chart.PriceLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := &PriceLine{opts: opts}
	s.lines = append(s.lines, line)
	return line
}

func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind == "candles" {
		return len(s.candles)
	}
	return len(s.points)
}

// Points 折线数据
func (s *Series) Points() []chart.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chart.Point(nil), s.points...)
}

// Options 折线参数
func (s *Series) Options() chart.LineOptions {
	return s.lineOpts
}

// PriceLines 未移除的价格线
func (s *Series) PriceLines() []*PriceLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []*PriceLine
	for _, l := range s.lines {
		if !l.Removed() {
			lines = append(lines, l)
		}
	}
	return lines
}

// PriceLine 内存价格线
type PriceLine struct {
	mu      sync.Mutex
	opts    chart.PriceLineOptions
	removed bool
}

func (l *PriceLine) Price() float64 { return l.opts.Price }
func (l *PriceLine) Title() string  { return l.opts.Title }

func (l *PriceLine) Remove() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removed = true
}

// Removed 是否已移除
func (l *PriceLine) Removed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removed
}

// Options 价格线参数
func (l *PriceLine) Options() chart.PriceLineOptions {
	return l.opts
}
