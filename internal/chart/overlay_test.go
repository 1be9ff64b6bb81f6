package chart_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/life2you_mini/tradedash/internal/chart"
	"github.com/life2you_mini/tradedash/internal/chart/scene"
	"github.com/life2you_mini/tradedash/internal/model"
)

var mounts = chart.Mounts{Main: "main", Oscillator: "rsi"}

func ptr(v float64) *float64 { return &v }

func candles(n int) []model.Candle {
	out := make([]model.Candle, n)
	for i := range out {
		price := 100 + float64(i)
		out[i] = model.Candle{Time: 1700000000 + int64(i)*86400, Open: price, High: price + 2, Low: price - 2, Close: price + 1, Volume: 10}
	}
	return out
}

func series(n int, base float64) model.Series {
	out := make(model.Series, n)
	for i := range out {
		out[i] = base + float64(i)
	}
	return out
}

func fullPayload() *model.ChartPayload {
	return &model.ChartPayload{
		Candles: candles(30),
		Indicators: model.Indicators{
			RSI:     series(30, 40),
			MA5:     series(26, 101),
			MA20:    series(11, 102),
			BBUpper: series(30, 110),
			BBLower: series(30, 90),
		},
		Levels: model.Levels{
			Entry:      ptr(105),
			StopLoss:   ptr(98),
			TakeProfit: ptr(120),
		},
		Trade: &model.ChartTrade{ID: 1, Coin: "KRW-BTC", Side: model.SideSell, Exchange: model.ExchangeUpbit},
	}
}

type fixture struct {
	renderer *scene.Renderer
	viewport *scene.Viewport
	overlay  *chart.Overlay
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	renderer := scene.NewRenderer(logger)
	viewport := scene.NewViewport(960)
	return &fixture{
		renderer: renderer,
		viewport: viewport,
		overlay:  chart.NewOverlay(renderer, viewport, chart.DefaultOptions(), logger),
	}
}

func (f *fixture) pane(t *testing.T, mount string) *scene.Pane {
	t.Helper()
	p, ok := f.renderer.Pane(mount)
	require.True(t, ok, "mount %s", mount)
	return p
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name    string
		candles int
		values  int
		want    int
	}{
		{name: "指标短于K线", candles: 5, values: 3, want: 3},
		{name: "长度相同", candles: 4, values: 4, want: 4},
		{name: "指标长于K线", candles: 2, values: 6, want: 2},
		{name: "空指标", candles: 3, values: 0, want: 0},
		{name: "没有K线", candles: 0, values: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := candles(tt.candles)
			points := chart.Align(cs, series(tt.values, 1))
			require.Len(t, points, tt.want)
			for i, p := range points {
				assert.Equal(t, cs[i].Time, p.Time)
				assert.Equal(t, 1+float64(i), p.Value)
			}
		})
	}
}

func TestAlign_KeepsGaps(t *testing.T) {
	points := chart.Align(candles(3), []float64{math.NaN(), 2, 3})
	require.Len(t, points, 3)
	assert.True(t, points[0].Gap())
	assert.False(t, points[1].Gap())
}

func TestOverlay_BuildFullPayload(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.overlay.Build(fullPayload(), mounts))

	main := f.pane(t, "main")
	assert.Equal(t, 350, main.Height())

	candleSeries, ok := main.Candles()
	require.True(t, ok)
	assert.Equal(t, 30, candleSeries.Len())

	ma5, ok := main.Line("ma5")
	require.True(t, ok)
	assert.Equal(t, 26, ma5.Len())
	assert.Equal(t, chart.ColorMA5, ma5.Options().Color)

	ma20, ok := main.Line("ma20")
	require.True(t, ok)
	assert.Equal(t, 11, ma20.Len())

	upper, ok := main.Line("bb_upper")
	require.True(t, ok)
	assert.Equal(t, chart.Dashed, upper.Options().Style)
	_, ok = main.Line("bb_lower")
	assert.True(t, ok)
	_, ok = main.Line("bb_middle")
	assert.False(t, ok)

	var titles []string
	for _, l := range candleSeries.PriceLines() {
		titles = append(titles, l.Title())
	}
	assert.Equal(t, []string{"진입", "손절", "익절"}, titles)

	assert.True(t, main.TimeScale().(*scene.TimeScale).Fitted())

	osc := f.pane(t, "rsi")
	assert.Equal(t, 100, osc.Height())
	rsi, ok := osc.Line("rsi")
	require.True(t, ok)
	assert.Equal(t, chart.ColorRSI, rsi.Options().Color)
	require.Len(t, rsi.PriceLines(), 2)
	assert.Equal(t, float64(chart.RSIOversold), rsi.PriceLines()[0].Price())
	assert.Equal(t, float64(chart.RSIOverbought), rsi.PriceLines()[1].Price())

	assert.Equal(t, 1, f.viewport.Listeners())
	assert.True(t, f.overlay.HasOscillator())
}

func TestOverlay_PartialPayload(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(p *model.ChartPayload)
		mounts     chart.Mounts
		wantOsc    bool
		wantLines  []string
		wantSeries int
	}{
		{
			name:       "没有指标",
			mutate:     func(p *model.ChartPayload) { p.Indicators = model.Indicators{} },
			mounts:     mounts,
			wantLines:  []string{"진입", "손절", "익절"},
			wantSeries: 1,
		},
		{
			name: "只有布林上轨",
			mutate: func(p *model.ChartPayload) {
				p.Indicators.BBLower = nil
				p.Indicators.MA5 = nil
			},
			mounts:     mounts,
			wantOsc:    true,
			wantLines:  []string{"진입", "손절", "익절"},
			wantSeries: 2,
		},
		{
			name: "价格线为0或缺失",
			mutate: func(p *model.ChartPayload) {
				p.Levels = model.Levels{Entry: ptr(0), TakeProfit2: ptr(130)}
			},
			mounts:     mounts,
			wantOsc:    true,
			wantLines:  []string{"2차익절"},
			wantSeries: 5,
		},
		{
			name:       "没有RSI挂载点",
			mutate:     func(p *model.ChartPayload) {},
			mounts:     chart.Mounts{Main: "main"},
			wantLines:  []string{"진입", "손절", "익절"},
			wantSeries: 5,
		},
		{
			name:       "空RSI数组仍然创建副图",
			mutate:     func(p *model.ChartPayload) { p.Indicators.RSI = model.Series{} },
			mounts:     mounts,
			wantOsc:    true,
			wantLines:  []string{"진입", "손절", "익절"},
			wantSeries: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			payload := fullPayload()
			tt.mutate(payload)

			require.NoError(t, f.overlay.Build(payload, tt.mounts))
			main := f.pane(t, "main")
			assert.Len(t, main.Series(), tt.wantSeries)

			candleSeries, _ := main.Candles()
			var titles []string
			for _, l := range candleSeries.PriceLines() {
				titles = append(titles, l.Title())
			}
			assert.Equal(t, tt.wantLines, titles)

			_, hasOsc := f.renderer.Pane("rsi")
			assert.Equal(t, tt.wantOsc, hasOsc)
		})
	}
}

func TestOverlay_SyncIsOneDirectional(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.overlay.Build(fullPayload(), mounts))
	main := f.pane(t, "main")
	osc := f.pane(t, "rsi")

	main.Pan(chart.LogicalRange{From: 5, To: 20})
	got, ok := osc.TimeScale().VisibleRange()
	require.True(t, ok)
	assert.Equal(t, chart.LogicalRange{From: 5, To: 20}, got)

	osc.Pan(chart.LogicalRange{From: 0, To: 3})
	mainRange, ok := main.TimeScale().VisibleRange()
	require.True(t, ok)
	assert.Equal(t, chart.LogicalRange{From: 5, To: 20}, mainRange)
}

func TestOverlay_FitContent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.overlay.Build(fullPayload(), mounts))

	main := f.pane(t, "main")
	r, ok := main.TimeScale().VisibleRange()
	require.True(t, ok)
	assert.Equal(t, chart.LogicalRange{From: 0, To: 29}, r)
}

func TestOverlay_Resize(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.overlay.Build(fullPayload(), mounts))

	f.viewport.Resize(640)
	assert.Equal(t, 640, f.pane(t, "main").Width())
	assert.Equal(t, 640, f.pane(t, "rsi").Width())
}

func TestOverlay_DisposeIsIdempotent(t *testing.T) {
	var nilOverlay *chart.Overlay
	assert.NotPanics(t, nilOverlay.Dispose)

	f := newFixture(t)
	assert.NotPanics(t, f.overlay.Dispose)

	require.NoError(t, f.overlay.Build(fullPayload(), mounts))
	main := f.pane(t, "main")
	mainScale := main.TimeScale().(*scene.TimeScale)
	assert.Equal(t, 1, mainScale.Subscribers())

	f.overlay.Dispose()
	f.overlay.Dispose()

	assert.False(t, f.overlay.Built())
	assert.True(t, main.Removed())
	assert.Equal(t, 0, mainScale.Subscribers())
	assert.Equal(t, 0, f.renderer.LiveCount())
	assert.Equal(t, 0, f.viewport.Listeners())
}

func TestOverlay_FailedBuildLeavesNothing(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.overlay.Build(nil, mounts), chart.ErrNoPayload)
	assert.False(t, f.overlay.Built())
	assert.NotPanics(t, f.overlay.Dispose)

	// 副图挂载点被占用时，已经建好的主图也要释放
	_, err := f.renderer.NewPane("rsi", chart.PaneOptions{})
	require.NoError(t, err)
	err = f.overlay.Build(fullPayload(), mounts)
	require.ErrorIs(t, err, scene.ErrMountBusy)
	_, mainAlive := f.renderer.Pane("main")
	assert.False(t, mainAlive)
	assert.Equal(t, 0, f.viewport.Listeners())
}

func TestOverlay_RebuildDisposesPrevious(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.overlay.Build(fullPayload(), mounts))
	first := f.pane(t, "main")

	require.NoError(t, f.overlay.Build(fullPayload(), mounts))
	assert.True(t, first.Removed())
	assert.Equal(t, 2, f.renderer.LiveCount())
	assert.Equal(t, 4, f.renderer.Created())
	assert.Equal(t, 1, f.viewport.Listeners())
}

func TestOverlay_AxisLabelsFollowExchange(t *testing.T) {
	f := newFixture(t)
	payload := fullPayload()
	payload.Trade = nil
	payload.Position = &model.ChartPosition{ID: 3, Coin: "DOGEUSDT", Direction: model.DirectionShort, Exchange: model.ExchangeBybit}
	payload.Levels = model.Levels{Entry: ptr(0.1234567)}
	require.NoError(t, f.overlay.Build(payload, chart.Mounts{Main: "main"}))

	doc := f.renderer.Snapshot()
	require.Len(t, doc.Panes, 1)
	entry := doc.Panes[0].Series[0].PriceLines[0]
	assert.Equal(t, "$0.123457", entry.Label)

	f2 := newFixture(t)
	payload = fullPayload()
	payload.Levels = model.Levels{Entry: ptr(95000000.4)}
	require.NoError(t, f2.overlay.Build(payload, chart.Mounts{Main: "main"}))
	doc = f2.renderer.Snapshot()
	assert.Equal(t, "₩95,000,000", doc.Panes[0].Series[0].PriceLines[0].Label)

	_, err := json.Marshal(doc)
	assert.NoError(t, err)
}
