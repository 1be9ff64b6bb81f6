package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/api"
	"github.com/life2you_mini/tradedash/internal/chart"
	"github.com/life2you_mini/tradedash/internal/chart/scene"
	"github.com/life2you_mini/tradedash/internal/config"
	"github.com/life2you_mini/tradedash/internal/dashboard"
	"github.com/life2you_mini/tradedash/internal/exchange"
	"github.com/life2you_mini/tradedash/internal/model"
	"github.com/life2you_mini/tradedash/internal/session"
)

// View 命令行可选的页面
type View string

const (
	ViewSpot     View = "spot"
	ViewBybit    View = "bybit"
	ViewHistory  View = "history"
	ViewSettings View = "settings"
	ViewLogs     View = "logs"
	ViewChart    View = "chart"
	ViewLogin    View = "login"
	ViewLogout   View = "logout"
)

// 图表挂载点
var chartMounts = chart.Mounts{Main: "price", Oscillator: "rsi"}

// ErrLoginRequired 没有有效会话
var ErrLoginRequired = errors.New("请先登录")

// DashboardService 看板服务，负责组装会话、客户端、视图和日志流
type DashboardService struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer

	session  session.Provider
	client   *api.Client
	registry *exchange.Registry

	spot     *dashboard.SpotView
	deriv    *dashboard.DerivView
	history  *dashboard.HistoryView
	settings *dashboard.SettingsView
	actions  *dashboard.Actions

	renderer *scene.Renderer
	viewport *scene.Viewport
	modal    *chart.Modal

	workers      conc.WaitGroup
	streamMu     sync.Mutex
	stream       *api.LogStream
	loginOnce    sync.Once
	loginRequire chan struct{}
}

// NewDashboardService 创建看板服务
func NewDashboardService(
	parentCtx context.Context,
	cfg *config.Config,
	prompter dashboard.Prompter,
	out io.Writer,
	logger *zap.Logger,
) (*DashboardService, error) {
	ctx, cancel := context.WithCancel(parentCtx)

	provider, err := session.NewProvider(cfg, logger.With(zap.String("component", "session")))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("初始化会话存储失败: %w", err)
	}

	s := &DashboardService{
		ctx:          ctx,
		cancel:       cancel,
		cfg:          cfg,
		logger:       logger.With(zap.String("component", "dashboard_service")),
		out:          out,
		session:      provider,
		registry:     exchange.NewDefaultRegistry(logger),
		loginRequire: make(chan struct{}),
	}

	s.client = api.NewClient(
		cfg.Backend.BaseURL,
		provider,
		logger.With(zap.String("component", "api")),
		api.WithTimeout(time.Duration(cfg.Backend.RequestTimeoutSeconds)*time.Second),
		api.WithStreamPath(cfg.Backend.StreamPath),
		api.WithUnauthorizedHandler(s.requireLogin),
	)

	opts := dashboard.Options{
		LogLimit:   cfg.Dashboard.LogLimit,
		PeriodDays: cfg.Dashboard.PeriodDays,
		Mode:       model.Mode(cfg.Dashboard.DefaultMode),
	}
	s.spot = dashboard.NewSpotView(s.client, opts, logger)
	s.deriv = dashboard.NewDerivView(s.client, opts, logger)
	s.history = dashboard.NewHistoryView(s.client, s.client, model.Exchange(cfg.Dashboard.DefaultExchange), cfg.Dashboard.HistoryPageSize, logger)
	s.settings = dashboard.NewSettingsView(s.client, s.client, logger)
	s.actions = dashboard.NewActions(s.client, s.client, s.spot, s.deriv, prompter, logger)

	s.renderer = scene.NewRenderer(logger)
	s.viewport = scene.NewViewport(cfg.Chart.Width)
	overlay := chart.NewOverlay(s.renderer, s.viewport, chart.Options{
		Width:            cfg.Chart.Width,
		MainHeight:       cfg.Chart.MainHeight,
		OscillatorHeight: cfg.Chart.OscillatorHeight,
	}, logger)
	s.modal = chart.NewModal(s.client, overlay, chartMounts, logger)

	return s, nil
}

// requireLogin 会话失效时只通知一次
func (s *DashboardService) requireLogin() {
	s.loginOnce.Do(func() {
		s.logger.Warn("会话已失效，请重新登录")
		close(s.loginRequire)
	})
}

// LoginRequired 会话失效时关闭
func (s *DashboardService) LoginRequired() <-chan struct{} {
	return s.loginRequire
}

// Client 后端客户端
func (s *DashboardService) Client() *api.Client {
	return s.client
}

// Actions 用户命令
func (s *DashboardService) Actions() *dashboard.Actions {
	return s.actions
}

// Login 登录并保存会话
func (s *DashboardService) Login(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout 登出，本地会话总是被清除
func (s *DashboardService) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}

// SelectExchange 解析要显示的交易所：参数优先，其次是上次的选择，最后是配置默认值
func (s *DashboardService) SelectExchange(ctx context.Context, requested string) (model.Exchange, error) {
	if requested != "" {
		profile, ok := s.registry.Get(model.Exchange(requested))
		if !ok {
			return "", fmt.Errorf("未知的交易所: %s", requested)
		}
		if err := s.session.SetSelectedExchange(ctx, profile.Name); err != nil {
			s.logger.Warn("保存交易所选择失败", zap.Error(err))
		}
		return profile.Name, nil
	}
	if ex, err := s.session.SelectedExchange(ctx); err == nil && ex != "" {
		return ex, nil
	}
	return model.Exchange(s.cfg.Dashboard.DefaultExchange), nil
}

// Start 启动指定页面的轮询或日志流
func (s *DashboardService) Start(view View, ex model.Exchange) error {
	ok, err := s.client.VerifySession(s.ctx)
	if err != nil {
		return fmt.Errorf("验证会话失败: %w", err)
	}
	if !ok {
		return ErrLoginRequired
	}

	interval := time.Duration(s.cfg.Dashboard.PollIntervalSeconds) * time.Second
	s.logger.Info("启动看板", zap.String("view", string(view)), zap.String("exchange", string(ex)))

	var target *ViewAdapter
	switch view {
	case ViewSpot:
		target = NewViewAdapter(s.spot, func() interface{} { return s.spot.Snapshot() }, s.out, s.logger)
	case ViewBybit:
		target = NewViewAdapter(s.deriv, func() interface{} { return s.deriv.Snapshot() }, s.out, s.logger)
	case ViewHistory:
		s.history.SetExchange(ex)
		target = NewViewAdapter(s.history, func() interface{} { return s.history.Snapshot() }, s.out, s.logger)
	case ViewSettings:
		target = NewViewAdapter(s.settings, func() interface{} { return s.settings.Snapshot() }, s.out, s.logger)
	case ViewLogs:
		return s.startLogStream(ex)
	default:
		return fmt.Errorf("不支持轮询的页面: %s", view)
	}

	poller := dashboard.NewPoller(target, interval, s.logger)
	s.workers.Go(func() {
		if err := poller.Start(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("轮询异常退出", zap.Error(err))
		}
	})
	return nil
}

func (s *DashboardService) startLogStream(ex model.Exchange) error {
	stream, err := s.client.StreamLogs(s.ctx,
		func(logs []model.SystemLogEntry) {
			if err := dashboard.RenderLogs(s.out, logs, ex); err != nil {
				s.logger.Error("输出日志失败", zap.Error(err))
			}
		},
		func(err error) {
			s.logger.Warn("日志流中断", zap.Error(err))
		})
	if err != nil {
		return fmt.Errorf("打开日志流失败: %w", err)
	}

	s.streamMu.Lock()
	s.stream = stream
	s.streamMu.Unlock()
	return nil
}

// RunAction 执行一次命令，如 start、stop、panic-sell、sell:KRW-BTC、close:12
func (s *DashboardService) RunAction(ctx context.Context, ex model.Exchange, action string) error {
	name, arg, _ := strings.Cut(action, ":")
	spotMode, derivMode := s.spot.Mode(), s.deriv.Mode()
	mode := spotMode
	if ex == model.ExchangeBybit {
		mode = derivMode
	}

	var err error
	switch name {
	case "start":
		err = s.actions.ToggleBot(ctx, ex, mode, true)
	case "stop":
		err = s.actions.ToggleBot(ctx, ex, mode, false)
	case "panic-sell":
		_, err = s.actions.PanicSell(ctx, spotMode)
	case "sell":
		if arg == "" {
			return fmt.Errorf("sell 需要指定市场，如 sell:KRW-BTC")
		}
		_, err = s.actions.SellPosition(ctx, arg, spotMode)
	case "close":
		id, perr := strconv.ParseInt(arg, 10, 64)
		if perr != nil {
			return fmt.Errorf("close 需要持仓ID，如 close:12: %w", perr)
		}
		_, err = s.actions.ClosePosition(ctx, model.PositionRecord{ID: id, Symbol: "#" + arg})
	default:
		return fmt.Errorf("未知的命令: %s", action)
	}
	return err
}

// ChartReport 图表弹窗的输出
type ChartReport struct {
	Target  chart.Target   `json:"target"`
	Summary *chart.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
	Scene   scene.Document `json:"scene"`
}

// OpenChart 打开成交或持仓图表，把底栏和面板导出为JSON
func (s *DashboardService) OpenChart(ctx context.Context, target chart.Target) (*ChartReport, error) {
	err := s.modal.Open(ctx, target)
	state := s.modal.State()
	report := &ChartReport{
		Target:  target,
		Summary: s.modal.Summary(),
		Error:   state.Error,
		Scene:   s.renderer.Snapshot(),
	}
	defer s.modal.Close()

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(report); encErr != nil {
		return report, fmt.Errorf("输出图表失败: %w", encErr)
	}
	return report, err
}

// Stop 停止服务
func (s *DashboardService) Stop(ctx context.Context) error {
	s.logger.Info("停止看板服务")

	s.cancel()

	s.streamMu.Lock()
	stream := s.stream
	s.streamMu.Unlock()
	stream.Close()

	s.spot.Close()
	s.deriv.Close()
	s.history.Close()
	s.settings.Close()
	s.modal.Close()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if cerr := s.session.Close(); cerr != nil {
		s.logger.Error("关闭会话存储失败", zap.Error(cerr))
	}
	return err
}
