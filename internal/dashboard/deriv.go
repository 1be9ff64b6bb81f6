package dashboard

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// PanelBot 合约机器人状态面板
const PanelBot = "bot"

// DerivSnapshot 合约看板状态
type DerivSnapshot struct {
	Mode          model.Mode
	Running       bool
	Bot           *model.DerivBotStatus
	Whitelist     []model.DerivWhitelistItem
	UpdatedAt     string
	Portfolio     *model.DerivPortfolio
	LongCount     int
	ShortCount    int
	UnrealizedPnL float64
	Logs          []model.SystemLogEntry
	Returns       *model.DerivPeriodReturns
	PeriodDays    int
	Errors        map[string]string
	Loaded        bool
}

// DerivView 合约看板，只获取当前模式的数据
type DerivView struct {
	backend DerivBackend
	logger  *zap.Logger

	mu         sync.Mutex
	gens       generations
	errs       panelErrors
	mode       model.Mode
	logLimit   int
	periodDays int
	loaded     bool

	bot       *model.DerivBotStatus
	whitelist map[model.Mode]*model.DerivWhitelist
	portfolio map[model.Mode]*model.DerivPortfolio
	logs      map[model.Mode][]model.SystemLogEntry
	returns   map[model.Mode]*model.DerivPeriodReturns
}

// NewDerivView 创建合约看板
func NewDerivView(backend DerivBackend, opts Options, logger *zap.Logger) *DerivView {
	if opts.LogLimit <= 0 {
		opts.LogLimit = 50
	}
	if opts.PeriodDays <= 0 {
		opts.PeriodDays = 1
	}
	if opts.Mode != model.ModeReal {
		opts.Mode = model.ModeSimulation
	}
	return &DerivView{
		backend:    backend,
		logger:     logger.With(zap.String("component", "deriv_view")),
		errs:       make(panelErrors),
		mode:       opts.Mode,
		logLimit:   opts.LogLimit,
		periodDays: opts.PeriodDays,
		whitelist:  make(map[model.Mode]*model.DerivWhitelist),
		portfolio:  make(map[model.Mode]*model.DerivPortfolio),
		logs:       make(map[model.Mode][]model.SystemLogEntry),
		returns:    make(map[model.Mode]*model.DerivPeriodReturns),
	}
}

// Refresh 当前模式的监控列表、持仓、日志、区间收益以及两个模式的机器人状态
func (v *DerivView) Refresh(ctx context.Context) {
	v.mu.Lock()
	gen := v.gens.begin()
	mode, days, limit := v.mode, v.periodDays, v.logLimit
	v.mu.Unlock()

	results := fanOut(ctx, v.logger, []task{
		fetchInto(modePanel(PanelWhitelist, mode),
			func(ctx context.Context) (*model.DerivWhitelist, error) { return v.backend.DerivWhitelist(ctx, mode) },
			func(w *model.DerivWhitelist) { v.whitelist[mode] = w }),
		fetchInto(modePanel(PanelPortfolio, mode),
			func(ctx context.Context) (*model.DerivPortfolio, error) { return v.backend.DerivPortfolio(ctx, mode) },
			func(p *model.DerivPortfolio) { v.portfolio[mode] = p }),
		fetchInto(modePanel(PanelLogs, mode),
			func(ctx context.Context) (*model.LogPage, error) { return v.backend.DerivLogs(ctx, limit, mode) },
			func(p *model.LogPage) { v.logs[mode] = p.Logs }),
		// 不带mode时后端返回两个模式的状态
		fetchInto(PanelBot,
			func(ctx context.Context) (*model.DerivBotStatus, error) { return v.backend.DerivBotStatus(ctx, "") },
			func(s *model.DerivBotStatus) { v.bot = s }),
		fetchInto(modePanel(PanelReturns, mode),
			func(ctx context.Context) (*model.DerivPeriodReturns, error) {
				return v.backend.DerivPeriodReturns(ctx, mode, days)
			},
			func(r *model.DerivPeriodReturns) { v.returns[mode] = r }),
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gens.closed {
		return
	}
	applyOutcomes(&v.gens, v.errs, gen, results, v.logger)
	v.loaded = true
}

// SwitchMode 切换模式并立即刷新
func (v *DerivView) SwitchMode(ctx context.Context, mode model.Mode) {
	v.mu.Lock()
	v.mode = mode
	v.mu.Unlock()
	v.Refresh(ctx)
}

// SetPeriodDays 修改区间收益的天数，下次刷新生效
func (v *DerivView) SetPeriodDays(days int) {
	if days <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.periodDays = days
}

// Mode 当前模式
func (v *DerivView) Mode() model.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Close 视图销毁后，迟到的结果直接丢弃
func (v *DerivView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gens.closed = true
}

// Snapshot 当前模式的数据
func (v *DerivView) Snapshot() DerivSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	mode := v.mode
	snap := DerivSnapshot{
		Mode:       mode,
		Bot:        v.bot,
		Running:    v.bot.Running(mode),
		Portfolio:  v.portfolio[mode],
		Logs:       append([]model.SystemLogEntry(nil), v.logs[mode]...),
		Returns:    v.returns[mode],
		PeriodDays: v.periodDays,
		Errors:     v.errs.copy(),
		Loaded:     v.loaded,
	}
	if w := v.whitelist[mode]; w != nil {
		snap.Whitelist = append([]model.DerivWhitelistItem(nil), w.Coins...)
		snap.UpdatedAt = w.UpdatedAt
	}
	if p := snap.Portfolio; p != nil {
		total := decimal.Zero
		for _, pos := range p.Positions {
			if pos.Side == model.DirectionShort {
				snap.ShortCount++
			} else {
				snap.LongCount++
			}
			total = total.Add(decimal.NewFromFloat(pos.UnrealizedPnL))
		}
		snap.UnrealizedPnL = total.InexactFloat64()
	}
	return snap
}
