package chart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// PayloadSource 图表数据来源，由API客户端实现
type PayloadSource interface {
	TradeChart(ctx context.Context, tradeID int64) (*model.ChartPayload, error)
	PositionChart(ctx context.Context, positionID int64) (*model.ChartPayload, error)
}

// Target 要打开的图表
type Target struct {
	Kind Kind
	ID   int64
}

// ModalState 弹窗当前状态
type ModalState struct {
	Open    bool
	Target  Target
	Error   string
	Payload *model.ChartPayload
}

// Modal 成交/持仓图表弹窗，每次打开都重新获取数据
type Modal struct {
	source  PayloadSource
	overlay *Overlay
	mounts  Mounts
	logger  *zap.Logger

	mu    sync.Mutex
	state ModalState
	seq   uint64
}

// NewModal 创建图表弹窗
func NewModal(source PayloadSource, overlay *Overlay, mounts Mounts, logger *zap.Logger) *Modal {
	return &Modal{
		source:  source,
		overlay: overlay,
		mounts:  mounts,
		logger:  logger.With(zap.String("component", "chart_modal")),
	}
}

// Open 获取数据并构建图表，获取失败时进入错误状态
func (m *Modal) Open(ctx context.Context, target Target) error {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = ModalState{Open: true, Target: target}
	m.mu.Unlock()

	payload, err := m.fetch(ctx, target)

	m.mu.Lock()
	defer m.mu.Unlock()
	// 已关闭或被更新的Open取代
	if seq != m.seq || !m.state.Open {
		return nil
	}

	if err != nil {
		m.overlay.Dispose()
		m.state.Error = err.Error()
		if m.state.Error == "" {
			m.state.Error = "알 수 없는 오류"
		}
		m.logger.Warn("获取图表数据失败",
			zap.String("kind", string(target.Kind)),
			zap.Int64("id", target.ID),
			zap.Error(err))
		return err
	}

	m.state.Payload = payload
	if err := m.overlay.Build(payload, m.mounts); err != nil {
		m.state.Error = err.Error()
		return err
	}
	return nil
}

func (m *Modal) fetch(ctx context.Context, target Target) (*model.ChartPayload, error) {
	if target.Kind == KindPosition {
		return m.source.PositionChart(ctx, target.ID)
	}
	return m.source.TradeChart(ctx, target.ID)
}

// Close 关闭弹窗并销毁面板
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = ModalState{}
	m.overlay.Dispose()
}

// State 当前状态
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Summary 底栏信息，没有数据时返回nil
func (m *Modal) Summary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Payload == nil || m.state.Error != "" {
		return nil
	}
	return Summarize(m.state.Target.Kind, m.state.Payload)
}
