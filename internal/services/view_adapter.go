package services

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/dashboard"
)

// ViewAdapter 把看板视图适配为轮询目标，每次刷新后把快照渲染到输出
type ViewAdapter struct {
	view     dashboard.Refresher
	snapshot func() interface{}
	out      io.Writer
	logger   *zap.Logger

	mu sync.Mutex // 串行化输出
}

// NewViewAdapter 创建视图适配器
func NewViewAdapter(view dashboard.Refresher, snapshot func() interface{}, out io.Writer, logger *zap.Logger) *ViewAdapter {
	return &ViewAdapter{
		view:     view,
		snapshot: snapshot,
		out:      out,
		logger:   logger,
	}
}

// Refresh 刷新视图并输出
func (a *ViewAdapter) Refresh(ctx context.Context) {
	a.view.Refresh(ctx)
	if ctx.Err() != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := dashboard.Render(a.out, a.snapshot()); err != nil {
		a.logger.Error("渲染视图失败", zap.Error(err))
	}
}
