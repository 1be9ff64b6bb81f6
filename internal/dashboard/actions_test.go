package dashboard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/life2you_mini/tradedash/internal/dashboard"
	"github.com/life2you_mini/tradedash/internal/mocks"
	"github.com/life2you_mini/tradedash/internal/model"
)

// countingView 记录刷新次数
type countingView struct {
	refreshes atomic.Int32
}

func (v *countingView) Refresh(ctx context.Context) {
	v.refreshes.Add(1)
}

type actionsFixture struct {
	spot      *mocks.MockSpotBackend
	deriv     *mocks.MockDerivBackend
	prompter  *mocks.MockPrompter
	spotView  *countingView
	derivView *countingView
	actions   *dashboard.Actions
}

func newActions(t *testing.T) *actionsFixture {
	f := &actionsFixture{
		spot:      &mocks.MockSpotBackend{},
		deriv:     &mocks.MockDerivBackend{},
		prompter:  &mocks.MockPrompter{},
		spotView:  &countingView{},
		derivView: &countingView{},
	}
	f.actions = dashboard.NewActions(f.spot, f.deriv, f.spotView, f.derivView, f.prompter, zaptest.NewLogger(t))
	return f
}

func TestActions_ToggleBotAlwaysRepolls(t *testing.T) {
	tests := []struct {
		name       string
		exchange   model.Exchange
		run        bool
		method     string
		err        error
		wantAlert  string
		spotPolls  int32
		derivPolls int32
	}{
		{name: "现货启动成功", exchange: model.ExchangeUpbit, run: true, method: "StartBot", spotPolls: 1},
		{name: "现货停止失败", exchange: model.ExchangeUpbit, run: false, method: "StopBot", err: errors.New("HTTP 500"), wantAlert: "봇 제어 실패: HTTP 500", spotPolls: 1},
		{name: "合约启动失败", exchange: model.ExchangeBybit, run: true, method: "StartDerivBot", err: errors.New("API key missing"), wantAlert: "봇 제어 실패: API key missing", derivPolls: 1},
		{name: "合约停止成功", exchange: model.ExchangeBybit, run: false, method: "StopDerivBot", derivPolls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newActions(t)
			var result *model.CommandResult
			if tt.err == nil {
				result = &model.CommandResult{Success: true}
			}
			backend := &f.spot.Mock
			if tt.exchange == model.ExchangeBybit {
				backend = &f.deriv.Mock
			}
			if result == nil {
				backend.On(tt.method, mock.Anything, model.ModeReal).Return(nil, tt.err)
			} else {
				backend.On(tt.method, mock.Anything, model.ModeReal).Return(result, nil)
			}
			if tt.wantAlert != "" {
				f.prompter.On("Alert", tt.wantAlert).Once()
			}

			err := f.actions.ToggleBot(context.Background(), tt.exchange, model.ModeReal, tt.run)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.spotPolls, f.spotView.refreshes.Load())
			assert.Equal(t, tt.derivPolls, f.derivView.refreshes.Load())
			backend.AssertCalled(t, tt.method, mock.Anything, model.ModeReal)
			f.prompter.AssertExpectations(t)
		})
	}
}

func TestActions_ClosePosition(t *testing.T) {
	position := model.PositionRecord{ID: 7, Symbol: "ETHUSDT", Side: model.DirectionShort}

	t.Run("取消确认不执行命令", func(t *testing.T) {
		f := newActions(t)
		f.prompter.On("Confirm", mock.MatchedBy(func(msg string) bool {
			return assert.Contains(t, msg, "ETHUSDT 숏")
		})).Return(false)

		_, err := f.actions.ClosePosition(context.Background(), position)
		assert.ErrorIs(t, err, dashboard.ErrCancelled)
		f.deriv.AssertNotCalled(t, "CloseDerivPosition", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, int32(0), f.derivView.refreshes.Load())
	})

	t.Run("失败时提示并刷新", func(t *testing.T) {
		f := newActions(t)
		f.prompter.On("Confirm", mock.Anything).Return(true)
		f.prompter.On("Alert", "청산 실패: Position not found").Once()
		f.deriv.On("CloseDerivPosition", mock.Anything, int64(7), "").Return(nil, errors.New("Position not found"))

		_, err := f.actions.ClosePosition(context.Background(), position)
		require.Error(t, err)
		assert.Equal(t, int32(1), f.derivView.refreshes.Load())
		f.prompter.AssertExpectations(t)
	})

	t.Run("成功后刷新", func(t *testing.T) {
		f := newActions(t)
		f.prompter.On("Confirm", mock.Anything).Return(true)
		f.deriv.On("CloseDerivPosition", mock.Anything, int64(7), "").Return(&model.ClosePositionResult{Success: true, PnL: 1.5}, nil)

		result, err := f.actions.ClosePosition(context.Background(), position)
		require.NoError(t, err)
		assert.Equal(t, 1.5, result.PnL)
		assert.Equal(t, int32(1), f.derivView.refreshes.Load())
		assert.Equal(t, int32(0), f.spotView.refreshes.Load())
		f.prompter.AssertNotCalled(t, "Alert", mock.Anything)
	})
}

func TestActions_PanicSell(t *testing.T) {
	f := newActions(t)
	f.prompter.On("Confirm", mock.MatchedBy(func(msg string) bool {
		return assert.Contains(t, msg, "모의투자")
	})).Return(true)
	f.spot.On("PanicSell", mock.Anything, model.ModeSimulation).Return(&model.PanicSellResult{
		Success:       true,
		SoldPositions: []model.SoldPosition{{Market: "KRW-BTC", Success: true}},
	}, nil)

	result, err := f.actions.PanicSell(context.Background(), model.ModeSimulation)
	require.NoError(t, err)
	assert.Len(t, result.SoldPositions, 1)
	assert.Equal(t, int32(1), f.spotView.refreshes.Load())
}

func TestActions_SellPosition(t *testing.T) {
	f := newActions(t)
	f.prompter.On("Confirm", mock.MatchedBy(func(msg string) bool {
		return assert.Contains(t, msg, "BTC 포지션")
	})).Return(true)
	f.prompter.On("Alert", "청산 실패: 최소 주문 금액 미만").Once()
	f.spot.On("SellPosition", mock.Anything, "KRW-BTC", model.ModeReal).Return(nil, errors.New("최소 주문 금액 미만"))

	_, err := f.actions.SellPosition(context.Background(), "KRW-BTC", model.ModeReal)
	require.Error(t, err)
	assert.Equal(t, int32(1), f.spotView.refreshes.Load())
	f.prompter.AssertExpectations(t)
}

func TestActions_NilViewsSkipRepoll(t *testing.T) {
	spot := &mocks.MockSpotBackend{}
	spot.On("StartBot", mock.Anything, model.ModeSimulation).Return(&model.CommandResult{Success: true}, nil)
	actions := dashboard.NewActions(spot, &mocks.MockDerivBackend{}, nil, nil, &mocks.MockPrompter{}, zaptest.NewLogger(t))

	assert.NoError(t, actions.ToggleBot(context.Background(), model.ExchangeUpbit, model.ModeSimulation, true))
}
