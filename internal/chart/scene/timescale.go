package scene

import (
	"sync"

	"github.com/life2you_mini/tradedash/internal/chart"
)

// TimeScale 内存时间轴，可见范围变化时同步通知订阅者
type TimeScale struct {
	pane *Pane

	mu          sync.Mutex
	visible     *chart.LogicalRange
	fitted      bool
	subscribers map[int]func(chart.LogicalRange)
	nextID      int
}

func (t *TimeScale) VisibleRange() (chart.LogicalRange, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible == nil {
		return chart.LogicalRange{}, false
	}
	return *t.visible, true
}

func (t *TimeScale) SetVisibleRange(r chart.LogicalRange) {
	t.mu.Lock()
	t.visible = &r
	subs := make([]func(chart.LogicalRange), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(r)
	}
}

func (t *TimeScale) SubscribeVisibleRange(fn func(chart.LogicalRange)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subscribers, id)
		})
	}
}

// FitContent 显示全部K线
func (t *TimeScale) FitContent() {
	bars := t.pane.bars()
	t.mu.Lock()
	t.fitted = true
	t.mu.Unlock()
	if bars == 0 {
		return
	}
	t.SetVisibleRange(chart.LogicalRange{From: 0, To: float64(bars - 1)})
}

// Fitted 是否调用过FitContent
func (t *TimeScale) Fitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fitted
}

// Subscribers 当前订阅数
func (t *TimeScale) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subscribers)
}

func (t *TimeScale) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = make(map[int]func(chart.LogicalRange))
}
