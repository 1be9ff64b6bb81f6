package dashboard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/exchange"
	"github.com/life2you_mini/tradedash/internal/model"
	"github.com/life2you_mini/tradedash/internal/reason"
)

// 历史页面的面板
const (
	PanelHistory = "history"
	PanelChart   = "returns_chart"
)

// DefaultPageSize 历史记录每页条数
const DefaultPageSize = 50

// HistoryFilter 历史记录筛选，零值表示全部
type HistoryFilter struct {
	Mode     model.Mode
	Strategy string
	Side     model.Side
	Coin     string // 只对现货有效
}

// HistoryRow 一条格式化后的成交记录
type HistoryRow struct {
	ID         int64
	CreatedAt  string
	Mode       model.Mode
	Coin       string
	Strategy   string
	Side       string
	IsLong     bool
	Price      string
	Quantity   float64
	Leverage   string
	PnL        string
	PnLPercent string
	Reason     reason.Info
	Record     model.TradeRecord
}

// HistorySnapshot 历史页面状态
type HistorySnapshot struct {
	Exchange model.Exchange
	Filter   HistoryFilter
	Offset   int
	Limit    int
	Total    int
	Rows     []HistoryRow
	Chart    *model.ReturnsChart
	Errors   map[string]string
}

// Range 分页文本，如 "1 - 50 / 120"
func (s *HistorySnapshot) Range() string {
	end := s.Offset + s.Limit
	if end > s.Total {
		end = s.Total
	}
	return fmt.Sprintf("%d - %d / %d", s.Offset+1, end, s.Total)
}

// HasPrev 是否有上一页
func (s *HistorySnapshot) HasPrev() bool { return s.Offset > 0 }

// HasNext 是否有下一页
func (s *HistorySnapshot) HasNext() bool { return s.Offset+s.Limit < s.Total }

// HistoryView 成交历史与累计收益曲线
type HistoryView struct {
	spot   SpotBackend
	deriv  DerivBackend
	logger *zap.Logger

	mu       sync.Mutex
	gens     generations
	errs     panelErrors
	exchange model.Exchange
	filter   HistoryFilter
	offset   int
	limit    int

	total   int
	records []model.TradeRecord
	chart   *model.ReturnsChart
}

// NewHistoryView 创建历史页面
func NewHistoryView(spot SpotBackend, deriv DerivBackend, ex model.Exchange, pageSize int, logger *zap.Logger) *HistoryView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if ex == "" {
		ex = model.ExchangeUpbit
	}
	return &HistoryView{
		spot:     spot,
		deriv:    deriv,
		logger:   logger.With(zap.String("component", "history_view")),
		errs:     make(panelErrors),
		exchange: ex,
		limit:    pageSize,
	}
}

// SetExchange 切换交易所并回到第一页
func (v *HistoryView) SetExchange(ex model.Exchange) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ex != v.exchange {
		v.records, v.total, v.chart = nil, 0, nil
	}
	v.exchange = ex
	v.offset = 0
}

// SetFilter 修改筛选条件并回到第一页
func (v *HistoryView) SetFilter(f HistoryFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
	v.offset = 0
}

// NextPage 翻到下一页，已是最后一页时返回false
func (v *HistoryView) NextPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.offset+v.limit >= v.total {
		return false
	}
	v.offset += v.limit
	return true
}

// PrevPage 翻到上一页，已是第一页时返回false
func (v *HistoryView) PrevPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.offset == 0 {
		return false
	}
	v.offset -= v.limit
	if v.offset < 0 {
		v.offset = 0
	}
	return true
}

// Refresh 同Load
func (v *HistoryView) Refresh(ctx context.Context) {
	v.Load(ctx)
}

// Load 并发获取当前页的记录和收益曲线
func (v *HistoryView) Load(ctx context.Context) {
	v.mu.Lock()
	gen := v.gens.begin()
	ex, f := v.exchange, v.filter
	q := model.HistoryQuery{
		Mode:     f.Mode,
		Strategy: f.Strategy,
		Side:     f.Side,
		Limit:    v.limit,
		Offset:   v.offset,
	}
	v.mu.Unlock()

	var history, chart task
	if ex == model.ExchangeBybit {
		history = fetchInto(PanelHistory,
			func(ctx context.Context) (*model.TradeHistory, error) { return v.deriv.DerivHistory(ctx, q) },
			v.setHistory)
		chart = fetchInto(PanelChart,
			func(ctx context.Context) (*model.ReturnsChart, error) {
				return v.deriv.DerivReturnsChart(ctx, f.Mode, f.Strategy)
			},
			v.setChart)
	} else {
		q.Exchange = model.ExchangeUpbit
		q.Coin = f.Coin
		history = fetchInto(PanelHistory,
			func(ctx context.Context) (*model.TradeHistory, error) { return v.spot.TradeHistory(ctx, q) },
			v.setHistory)
		chart = fetchInto(PanelChart,
			func(ctx context.Context) (*model.ReturnsChart, error) {
				return v.spot.ReturnsChart(ctx, f.Mode, f.Strategy)
			},
			v.setChart)
	}

	results := fanOut(ctx, v.logger, []task{history, chart})

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gens.closed {
		return
	}
	// 结果属于已经切换掉的交易所
	if ex != v.exchange {
		return
	}
	for _, r := range results {
		// 收益曲线获取失败时不保留旧曲线
		if r.panel == PanelChart && r.err != nil && !v.gens.stale(PanelChart, gen) {
			v.chart = nil
		}
	}
	applyOutcomes(&v.gens, v.errs, gen, results, v.logger)
}

func (v *HistoryView) setHistory(h *model.TradeHistory) {
	v.records = h.Logs
	v.total = h.Total
}

func (v *HistoryView) setChart(c *model.ReturnsChart) {
	v.chart = c
}

// Close 视图销毁后，迟到的结果直接丢弃
func (v *HistoryView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gens.closed = true
}

// Snapshot 当前页
func (v *HistoryView) Snapshot() HistorySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	profile := exchange.Lookup(v.exchange)
	rows := make([]HistoryRow, 0, len(v.records))
	for i := range v.records {
		rows = append(rows, formatRow(profile, &v.records[i]))
	}
	return HistorySnapshot{
		Exchange: v.exchange,
		Filter:   v.filter,
		Offset:   v.offset,
		Limit:    v.limit,
		Total:    v.total,
		Rows:     rows,
		Chart:    v.chart,
		Errors:   v.errs.copy(),
	}
}

// formatRow 格式化一条记录，开仓记录没有盈亏
func formatRow(profile *exchange.Profile, rec *model.TradeRecord) HistoryRow {
	side, isLong := reason.SideLabel(rec.Side)
	row := HistoryRow{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		Mode:       rec.Mode,
		Coin:       profile.DisplayCoin(rec.Instrument()),
		Strategy:   reason.StrategyLabel(rec.Strategy, rec.Timeframe),
		Side:       side,
		IsLong:     isLong,
		Price:      profile.FormatMoney(rec.Price),
		Quantity:   rec.Quantity,
		Leverage:   "-",
		PnL:        "-",
		PnLPercent: "-",
		Reason:     reason.DecodeRecord(rec, profile.IsDerivatives()),
		Record:     *rec,
	}
	if rec.Leverage != nil && *rec.Leverage > 0 {
		row.Leverage = fmt.Sprintf("%gx", *rec.Leverage)
	}
	if rec.Side.IsClosing() {
		if rec.PnL != nil {
			row.PnL = profile.FormatSignedMoney(*rec.PnL)
		}
		row.PnLPercent = exchange.FormatPercent(rec.PnLPercent)
	}
	return row
}
