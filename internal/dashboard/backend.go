package dashboard

import (
	"context"

	"github.com/life2you_mini/tradedash/internal/model"
)

// SpotBackend 现货看板依赖的后端接口，由api.Client实现
type SpotBackend interface {
	BotStatus(ctx context.Context, mode model.Mode) (*model.BotStatus, error)
	StartBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error)
	StopBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error)
	PanicSell(ctx context.Context, mode model.Mode) (*model.PanicSellResult, error)
	SellPosition(ctx context.Context, market string, mode model.Mode) (*model.SellPositionResult, error)

	Whitelist(ctx context.Context, mode model.Mode) (*model.Whitelist, error)
	RefreshWhitelist(ctx context.Context) (*model.RefreshResult, error)
	TradeHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error)
	Portfolio(ctx context.Context, mode model.Mode) (*model.SpotPortfolio, error)
	RecentLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error)
	PeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.PeriodReturns, error)
	ReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error)

	Settings(ctx context.Context, exchange model.Exchange) (*model.Settings, error)
	UpdateSettings(ctx context.Context, update model.SettingsUpdate, exchange model.Exchange) (*model.SettingsUpdateResult, error)
	TestTelegram(ctx context.Context) (*model.MessageResult, error)
	ValidateUpbit(ctx context.Context) (*model.UpbitValidation, error)
}

// DerivBackend 合约看板依赖的后端接口
type DerivBackend interface {
	DerivWhitelist(ctx context.Context, mode model.Mode) (*model.DerivWhitelist, error)
	DerivPortfolio(ctx context.Context, mode model.Mode) (*model.DerivPortfolio, error)
	DerivHistory(ctx context.Context, q model.HistoryQuery) (*model.TradeHistory, error)
	DerivLogs(ctx context.Context, limit int, mode model.Mode) (*model.LogPage, error)
	DerivPeriodReturns(ctx context.Context, mode model.Mode, days int) (*model.DerivPeriodReturns, error)
	DerivReturnsChart(ctx context.Context, mode model.Mode, strategy string) (*model.ReturnsChart, error)

	DerivSettings(ctx context.Context) (*model.DerivSettings, error)
	UpdateDerivAPIKeys(ctx context.Context, apiKey, apiSecret string) (*model.MessageResult, error)
	UpdateDerivStrategySettings(ctx context.Context, patch map[string]model.StrategyPatch) (*model.MessageResult, error)

	OpenDerivPosition(ctx context.Context, symbol string, mode model.Mode) (*model.OpenPositionResult, error)
	CloseDerivPosition(ctx context.Context, positionID int64, reason string) (*model.ClosePositionResult, error)
	DerivBotStatus(ctx context.Context, mode model.Mode) (*model.DerivBotStatus, error)
	StartDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error)
	StopDerivBot(ctx context.Context, mode model.Mode) (*model.CommandResult, error)
}

// Confirmer 危险操作前的确认
type Confirmer interface {
	Confirm(message string) bool
}

// Alerter 阻塞式提示
type Alerter interface {
	Alert(message string)
}

// Prompter 确认与提示
type Prompter interface {
	Confirmer
	Alerter
}

// Refresher 可以被轮询刷新的视图
type Refresher interface {
	Refresh(ctx context.Context)
}

// ModeLabel 模式的展示名
func ModeLabel(mode model.Mode) string {
	if mode == model.ModeReal {
		return "실전투자"
	}
	return "모의투자"
}
