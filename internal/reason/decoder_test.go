package reason

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/life2you_mini/tradedash/internal/model"
)

func TestBaseReason(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"stop_loss (lost -2.5%)", "stop_loss"},
		{"take_profit(+3.1%)", "take_profit"},
		{"divergence 매수 신호", "divergence"},
		{"  ", ""},
		{"", ""},
		{"수동 청산", "수동"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseReason(tt.raw))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		code       Code
		recognized bool
	}{
		{name: "空", raw: "", code: None},
		{name: "机器代码", raw: "take_profit", code: TakeProfit, recognized: true},
		{name: "带附加说明", raw: "stop_loss (lost -2.5%)", code: StopLoss, recognized: true},
		{name: "本地化止盈", raw: "익절", code: TakeProfit, recognized: true},
		{name: "本地化止损带说明", raw: "손절 (-3%)", code: StopLoss, recognized: true},
		{name: "手动平仓", raw: "수동 청산", code: ManualClose, recognized: true},
		{name: "紧急卖出", raw: "긴급매도", code: PanicSell, recognized: true},
		{name: "未知原因", raw: "liquidated by exchange", code: Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.raw)
			assert.Equal(t, tt.code, r.Code)
			assert.Equal(t, tt.recognized, r.Recognized())
		})
	}
}

func TestDecode_Totality(t *testing.T) {
	reasons := []string{"", " ", "(", "entry_", "entry_unknown", "stop_loss", "🤖", "a b c (d)", "익절", "bearish_divergence"}
	sides := []model.Side{model.SideBuy, model.SideSell, model.SideLongOpen, model.SideLongClose, model.SideShortOpen, model.SideShortClose, "", "liquidation"}
	strategies := []string{"", "morning", "evening_star", "unknown"}

	for _, r := range reasons {
		for _, side := range sides {
			for _, strategy := range strategies {
				assert.NotPanics(t, func() {
					first := Decode(r, side, strategy)
					second := Decode(r, side, strategy)
					assert.Equal(t, first, second)
				})
			}
		}
	}
}

func TestDecode_BaseReasonStripping(t *testing.T) {
	withQualifier := Decode("stop_loss (lost -2.5%)", model.SideSell, "")
	plain := Decode("stop_loss", model.SideSell, "")

	assert.Equal(t, plain.Label, withQualifier.Label)
	assert.Equal(t, plain.Emoji, withQualifier.Emoji)
	assert.Equal(t, "손절", plain.Label)
}

func TestDecode_EntryCascadePriority(t *testing.T) {
	info, step := Trace("entry_squirrel", model.SideBuy, "morning")
	assert.Equal(t, StepReason, step)
	assert.Equal(t, EntrySquirrel, info.Code)
	assert.Equal(t, "다람쥐 진입", info.Label)
}

func TestTrace_Steps(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		side     model.Side
		strategy string
		step     string
		label    string
		emoji    string
	}{
		{name: "entry前缀带说明", raw: "entry_harmonic (D=0.786)", side: model.SideBuy, step: StepEntryBase, label: "하모닉 진입"},
		{name: "合约按策略名", raw: "매수 신호", side: model.SideLongOpen, strategy: "divergence", step: StepStrategy, label: "다이버전스 롱"},
		{name: "策略名优先于基础原因", raw: "harmonic 신호", side: model.SideLongOpen, strategy: "squirrel", step: StepStrategy, label: "다람쥐 롱"},
		{name: "基础原因为策略名", raw: "morning 신호", side: model.SideLongOpen, step: StepBase, label: "샛별형 롱"},
		{name: "现货开仓兜底", raw: "something", side: model.SideBuy, step: StepFallback, label: "진입", emoji: "📈"},
		{name: "合约开多兜底", raw: "", side: model.SideLongOpen, step: StepFallback, label: "롱 진입", emoji: "📈"},
		{name: "开空按策略名", raw: "", side: model.SideShortOpen, strategy: "evening_star", step: StepStrategy, label: "석양형", emoji: "🌅"},
		{name: "开空按基础原因", raw: "breakdown (wedge)", side: model.SideShortOpen, step: StepBase, label: "이탈 하락"},
		{name: "开空兜底", raw: "bearish signal", side: model.SideShortOpen, step: StepFallback, label: "숏 진입", emoji: "📉"},
		{name: "本地化平仓原因", raw: "익절", side: model.SideSell, step: StepExit, label: "익절", emoji: "💰"},
		{name: "手动平仓", raw: "수동 청산", side: model.SideLongClose, step: StepExit, label: "수동 청산", emoji: "👆"},
		{name: "平空止损", raw: "stop_loss", side: model.SideShortClose, step: StepExit, label: "손절", emoji: "🛑"},
		{name: "没有原因", raw: "", side: model.SideSell, step: StepNone, label: ""},
		{name: "未知原因原样显示", raw: "liquidated", side: model.SideSell, step: StepRaw, label: "liquidated", emoji: "📝"},
		{name: "开仓代码出现在平仓方向", raw: "entry_squirrel", side: model.SideSell, step: StepRaw, label: "entry_squirrel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, step := Trace(tt.raw, tt.side, tt.strategy)
			assert.Equal(t, tt.step, step)
			assert.Equal(t, tt.label, info.Label)
			if tt.emoji != "" {
				assert.Equal(t, tt.emoji, info.Emoji)
			}
		})
	}
}

func TestDecode_RawEchoAndSentinel(t *testing.T) {
	echo := Decode("trailing stop", model.SideSell, "")
	assert.Equal(t, "사유: trailing stop", echo.Description)
	assert.Equal(t, "상세 정보가 없습니다.", echo.Details)
	assert.True(t, echo.HasReason())

	none := Decode("", model.SideSell, "")
	assert.False(t, none.HasReason())
	assert.Empty(t, none.Emoji)
	assert.Empty(t, none.Description)
}

func TestDecodeRecord(t *testing.T) {
	reasonText := "매수 신호"
	rec := &model.TradeRecord{Side: model.SideLongOpen, Strategy: "harmonic", Reason: &reasonText}

	assert.Equal(t, "하모닉 롱", DecodeRecord(rec, true).Label)
	assert.Equal(t, "롱 진입", DecodeRecord(rec, false).Label)

	rec.Reason = nil
	rec.Side = model.SideSell
	assert.False(t, DecodeRecord(rec, true).HasReason())
}

func TestDecode_DetailsText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		side     model.Side
		strategy string
		details  string
	}{
		{
			name: "샛별형 진입",
			raw:  "entry_morning",
			side: model.SideBuy,
			details: "가격이 계속 떨어지다가 바닥을 찍고 반등하는 패턴이 나타났어요. " +
				"마치 롤러코스터가 내려가다가 바닥을 찍고 다시 올라가는 것처럼요. 기술적으로 바닥 신호가 나타나서 매수했어요.",
		},
		{
			name: "하모닉 진입",
			raw:  "entry_harmonic",
			side: model.SideBuy,
			details: "가격이 수학적으로 계산된 정확한 반전 지점에 도달했어요. " +
				"가틀리/배트 패턴의 D점은 높은 확률로 반등이 시작되는 자리예요.",
		},
		{
			name:     "리딩다이아 롱",
			raw:      "leading_diagonal 매수 신호",
			side:     model.SideLongOpen,
			strategy: "leading_diagonal",
			details: "가격이 삼각형 모양으로 수렴하다가 위쪽으로 터져나왔어요. " +
				"새로운 상승 추세가 시작되는 강력한 신호예요. (Bybit 5x 레버리지)",
		},
		{
			name:     "석양형",
			side:     model.SideShortOpen,
			strategy: "evening_star",
			details: "3개의 캔들이 연속으로 나타나서 \"상승→망설임→하락\" 패턴을 보였어요. " +
				"해가 지듯이 상승 추세가 끝나고 하락이 시작될 신호예요. (Bybit 5x 레버리지)",
		},
		{
			name: "손절",
			raw:  "stop_loss (lost -2.5%)",
			side: model.SideSell,
			details: "매수할 때 설정한 손절가(SL)에 도달해서 전량 청산했어요. " +
				"더 큰 손실을 막기 위해 빠르게 정리했어요. 손절은 나쁜 게 아니라, 자산을 지키는 현명한 선택이에요!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Decode(tt.raw, tt.side, tt.strategy)
			assert.Equal(t, tt.name, info.Label)
			assert.Equal(t, tt.details, info.Details)
		})
	}
}
