package dashboard

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// DefaultPollInterval 看板默认轮询间隔
const DefaultPollInterval = 10 * time.Second

// Poller 定时刷新视图
type Poller struct {
	target   Refresher
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller 创建轮询器
func NewPoller(target Refresher, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		target:   target,
		interval: interval,
		logger:   logger.With(zap.String("component", "poller")),
	}
}

// Start 立即刷新一次，之后按间隔刷新，直到ctx取消。
// 每次刷新都在新的goroutine中进行，不等待上一次完成
func (p *Poller) Start(ctx context.Context) error {
	p.logger.Info("启动轮询", zap.Duration("间隔", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var inflight conc.WaitGroup
	defer inflight.Wait()

	// 立即执行一次
	p.target.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("轮询已停止")
			return ctx.Err()
		case <-ticker.C:
			inflight.Go(func() {
				p.target.Refresh(ctx)
			})
		}
	}
}
