package dashboard

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// 现货看板的面板名，同时用作错误记录的键
const (
	PanelStatus    = "status"
	PanelWhitelist = "whitelist"
	PanelPortfolio = "portfolio"
	PanelLogs      = "logs"
	PanelReturns   = "returns"
)

func modePanel(panel string, mode model.Mode) string {
	return panel + ":" + string(mode)
}

// Options 看板参数
type Options struct {
	LogLimit   int
	PeriodDays int
	Mode       model.Mode // 初始模式，默认模拟
}

// SpotSnapshot 当前模式下的现货看板状态
type SpotSnapshot struct {
	Mode          model.Mode
	Running       bool
	Status        *model.BotStatus
	Whitelist     []model.WhitelistItem
	UpdatedAt     string
	Portfolio     *model.SpotPortfolio
	UnrealizedPnL float64
	Logs          []model.SystemLogEntry
	Returns       *model.PeriodReturns
	PeriodDays    int
	Errors        map[string]string
	Loaded        bool
}

// SpotView 现货看板，同时持有模拟与实盘两个模式的数据，切换模式时无需等待
type SpotView struct {
	backend SpotBackend
	logger  *zap.Logger

	mu         sync.Mutex
	gens       generations
	errs       panelErrors
	mode       model.Mode
	logLimit   int
	periodDays int
	loaded     bool

	status    map[model.Mode]*model.BotStatus
	whitelist map[model.Mode]*model.Whitelist
	portfolio map[model.Mode]*model.SpotPortfolio
	logs      map[model.Mode][]model.SystemLogEntry
	returns   map[model.Mode]*model.PeriodReturns
}

// NewSpotView 创建现货看板
func NewSpotView(backend SpotBackend, opts Options, logger *zap.Logger) *SpotView {
	if opts.LogLimit <= 0 {
		opts.LogLimit = 50
	}
	if opts.PeriodDays <= 0 {
		opts.PeriodDays = 1
	}
	if opts.Mode != model.ModeReal {
		opts.Mode = model.ModeSimulation
	}
	return &SpotView{
		backend:    backend,
		logger:     logger.With(zap.String("component", "spot_view")),
		errs:       make(panelErrors),
		mode:       opts.Mode,
		logLimit:   opts.LogLimit,
		periodDays: opts.PeriodDays,
		status:     make(map[model.Mode]*model.BotStatus),
		whitelist:  make(map[model.Mode]*model.Whitelist),
		portfolio:  make(map[model.Mode]*model.SpotPortfolio),
		logs:       make(map[model.Mode][]model.SystemLogEntry),
		returns:    make(map[model.Mode]*model.PeriodReturns),
	}
}

// Refresh 两个模式的状态、监控列表、持仓、日志、区间收益并发获取，全部返回后逐个应用
func (v *SpotView) Refresh(ctx context.Context) {
	v.mu.Lock()
	gen := v.gens.begin()
	days, limit := v.periodDays, v.logLimit
	v.mu.Unlock()

	tasks := make([]task, 0, len(model.Modes)*5)
	for _, mode := range model.Modes {
		mode := mode
		tasks = append(tasks,
			fetchInto(modePanel(PanelStatus, mode),
				func(ctx context.Context) (*model.BotStatus, error) { return v.backend.BotStatus(ctx, mode) },
				func(s *model.BotStatus) { v.status[mode] = s }),
			fetchInto(modePanel(PanelWhitelist, mode),
				func(ctx context.Context) (*model.Whitelist, error) { return v.backend.Whitelist(ctx, mode) },
				func(w *model.Whitelist) { v.whitelist[mode] = w }),
			fetchInto(modePanel(PanelPortfolio, mode),
				func(ctx context.Context) (*model.SpotPortfolio, error) { return v.backend.Portfolio(ctx, mode) },
				func(p *model.SpotPortfolio) { v.portfolio[mode] = p }),
			fetchInto(modePanel(PanelLogs, mode),
				func(ctx context.Context) (*model.LogPage, error) { return v.backend.RecentLogs(ctx, limit, mode) },
				func(p *model.LogPage) { v.logs[mode] = p.Logs }),
			fetchInto(modePanel(PanelReturns, mode),
				func(ctx context.Context) (*model.PeriodReturns, error) {
					return v.backend.PeriodReturns(ctx, mode, days)
				},
				func(r *model.PeriodReturns) { v.returns[mode] = r }),
		)
	}

	results := fanOut(ctx, v.logger, tasks)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gens.closed {
		return
	}
	applyOutcomes(&v.gens, v.errs, gen, results, v.logger)
	v.loaded = true
}

// SwitchMode 切换模式：先把该模式监控列表的持仓标记清为观察中，再重新获取监控列表
func (v *SpotView) SwitchMode(ctx context.Context, mode model.Mode) {
	v.mu.Lock()
	if w := v.whitelist[mode]; w != nil {
		reset := &model.Whitelist{UpdatedAt: w.UpdatedAt, Coins: make([]model.WhitelistItem, len(w.Coins))}
		for i, coin := range w.Coins {
			coin.Status = model.WhitelistWatching
			reset.Coins[i] = coin
		}
		v.whitelist[mode] = reset
	}
	v.mode = mode
	gen := v.gens.begin()
	v.mu.Unlock()

	results := fanOut(ctx, v.logger, []task{
		fetchInto(modePanel(PanelWhitelist, mode),
			func(ctx context.Context) (*model.Whitelist, error) { return v.backend.Whitelist(ctx, mode) },
			func(w *model.Whitelist) { v.whitelist[mode] = w }),
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	applyOutcomes(&v.gens, v.errs, gen, results, v.logger)
}

// SetPeriodDays 修改区间收益的天数，下次刷新生效
func (v *SpotView) SetPeriodDays(days int) {
	if days <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.periodDays = days
}

// Mode 当前模式
func (v *SpotView) Mode() model.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Close 视图销毁后，迟到的结果直接丢弃
func (v *SpotView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gens.closed = true
}

// Snapshot 当前模式的数据
func (v *SpotView) Snapshot() SpotSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	mode := v.mode
	snap := SpotSnapshot{
		Mode:       mode,
		Status:     v.status[mode],
		Running:    v.status[mode].Running(mode),
		Portfolio:  v.portfolio[mode],
		Logs:       append([]model.SystemLogEntry(nil), v.logs[mode]...),
		Returns:    v.returns[mode],
		PeriodDays: v.periodDays,
		Errors:     v.errs.copy(),
		Loaded:     v.loaded,
	}
	if w := v.whitelist[mode]; w != nil {
		snap.Whitelist = append([]model.WhitelistItem(nil), w.Coins...)
		snap.UpdatedAt = w.UpdatedAt
	}
	if p := snap.Portfolio; p != nil {
		snap.UnrealizedPnL = spotUnrealized(p.Positions)
	}
	return snap
}

// spotUnrealized 持仓未实现盈亏合计
func spotUnrealized(positions []model.SpotHolding) float64 {
	total := decimal.Zero
	for _, p := range positions {
		if p.UnrealizedPnL != nil {
			total = total.Add(decimal.NewFromFloat(*p.UnrealizedPnL))
		}
	}
	return total.InexactFloat64()
}
