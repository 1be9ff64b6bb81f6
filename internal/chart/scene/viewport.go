package scene

import "sync"

// Viewport 模拟窗口，Resize时通知所有监听者
type Viewport struct {
	mu        sync.Mutex
	width     int
	listeners map[int]func(int)
	nextID    int
}

// NewViewport 创建窗口
func NewViewport(width int) *Viewport {
	return &Viewport{width: width, listeners: make(map[int]func(int))}
}

func (v *Viewport) OnResize(fn func(width int)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.listeners, id)
		})
	}
}

// Resize 改变宽度并通知监听者
func (v *Viewport) Resize(width int) {
	v.mu.Lock()
	v.width = width
	listeners := make([]func(int), 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(width)
	}
}

// Width 当前宽度
func (v *Viewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// Listeners 当前监听数
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
