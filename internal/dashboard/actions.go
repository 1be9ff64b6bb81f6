package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// ErrCancelled 用户取消了确认
var ErrCancelled = errors.New("用户已取消")

// Actions 用户触发的命令。危险命令先确认，命令执行后无论成败都重新轮询
type Actions struct {
	spot      SpotBackend
	deriv     DerivBackend
	spotView  Refresher
	derivView Refresher
	prompter  Prompter
	logger    *zap.Logger
}

// NewActions 创建命令处理器，视图为nil时命令后不刷新
func NewActions(spot SpotBackend, deriv DerivBackend, spotView, derivView Refresher, prompter Prompter, logger *zap.Logger) *Actions {
	return &Actions{
		spot:      spot,
		deriv:     deriv,
		spotView:  spotView,
		derivView: derivView,
		prompter:  prompter,
		logger:    logger.With(zap.String("component", "actions")),
	}
}

// ToggleBot 启动或停止机器人
func (a *Actions) ToggleBot(ctx context.Context, ex model.Exchange, mode model.Mode, run bool) error {
	var err error
	if ex == model.ExchangeBybit {
		defer a.repoll(ctx, a.derivView)
		if run {
			_, err = a.deriv.StartDerivBot(ctx, mode)
		} else {
			_, err = a.deriv.StopDerivBot(ctx, mode)
		}
	} else {
		defer a.repoll(ctx, a.spotView)
		if run {
			_, err = a.spot.StartBot(ctx, mode)
		} else {
			_, err = a.spot.StopBot(ctx, mode)
		}
	}

	a.logger.Info("机器人控制",
		zap.String("exchange", string(ex)),
		zap.String("mode", string(mode)),
		zap.Bool("run", run),
		zap.Error(err))
	if err != nil {
		a.prompter.Alert(fmt.Sprintf("봇 제어 실패: %s", err))
		return err
	}
	return nil
}

// PanicSell 以市价卖出当前模式的全部现货持仓
func (a *Actions) PanicSell(ctx context.Context, mode model.Mode) (*model.PanicSellResult, error) {
	message := fmt.Sprintf("⚠️ 긴급 매도 확인\n%s 모드의 모든 보유 포지션을 시장가로 즉시 매도합니다.", ModeLabel(mode))
	if !a.prompter.Confirm(message) {
		return nil, ErrCancelled
	}
	defer a.repoll(ctx, a.spotView)

	result, err := a.spot.PanicSell(ctx, mode)
	if err != nil {
		a.logger.Error("紧急卖出失败", zap.String("mode", string(mode)), zap.Error(err))
		a.prompter.Alert(fmt.Sprintf("긴급 매도 실패: %s", err))
		return nil, err
	}
	a.logger.Warn("紧急卖出已执行",
		zap.String("mode", string(mode)),
		zap.Int("sold", len(result.SoldPositions)))
	return result, nil
}

// SellPosition 卖出单个现货持仓
func (a *Actions) SellPosition(ctx context.Context, market string, mode model.Mode) (*model.SellPositionResult, error) {
	message := fmt.Sprintf("⚠️ 포지션 청산 확인\n%s 포지션을 시장가로 즉시 청산합니다.", displayMarket(market))
	if !a.prompter.Confirm(message) {
		return nil, ErrCancelled
	}
	defer a.repoll(ctx, a.spotView)

	result, err := a.spot.SellPosition(ctx, market, mode)
	if err != nil {
		a.logger.Error("卖出持仓失败", zap.String("market", market), zap.Error(err))
		a.prompter.Alert(fmt.Sprintf("청산 실패: %s", err))
		return nil, err
	}
	return result, nil
}

// ClosePosition 平掉一个合约持仓，使用默认平仓原因
func (a *Actions) ClosePosition(ctx context.Context, position model.PositionRecord) (*model.ClosePositionResult, error) {
	direction := "롱"
	if position.Side == model.DirectionShort {
		direction = "숏"
	}
	message := fmt.Sprintf("⚠️ 포지션 청산 확인\n%s %s 포지션을 청산합니다.", position.Symbol, direction)
	if !a.prompter.Confirm(message) {
		return nil, ErrCancelled
	}
	defer a.repoll(ctx, a.derivView)

	result, err := a.deriv.CloseDerivPosition(ctx, position.ID, "")
	if err != nil {
		a.logger.Error("合约平仓失败", zap.Int64("position_id", position.ID), zap.Error(err))
		a.prompter.Alert(fmt.Sprintf("청산 실패: %s", err))
		return nil, err
	}
	return result, nil
}

func (a *Actions) repoll(ctx context.Context, view Refresher) {
	if view == nil {
		return
	}
	view.Refresh(ctx)
}

func displayMarket(market string) string {
	return strings.TrimPrefix(market, "KRW-")
}
