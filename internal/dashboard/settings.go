package dashboard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// 设置页面的面板
const (
	PanelSpotSettings  = "spot_settings"
	PanelDerivSettings = "deriv_settings"
)

// SettingsSnapshot 设置页面状态
type SettingsSnapshot struct {
	Spot   *model.Settings
	Deriv  *model.DerivSettings
	Errors map[string]string
}

// SettingsView 现货与合约设置
type SettingsView struct {
	spot   SpotBackend
	deriv  DerivBackend
	logger *zap.Logger

	mu        sync.Mutex
	gens      generations
	errs      panelErrors
	spotData  *model.Settings
	derivData *model.DerivSettings
}

// NewSettingsView 创建设置页面
func NewSettingsView(spot SpotBackend, deriv DerivBackend, logger *zap.Logger) *SettingsView {
	return &SettingsView{
		spot:   spot,
		deriv:  deriv,
		logger: logger.With(zap.String("component", "settings_view")),
		errs:   make(panelErrors),
	}
}

// Refresh 并发加载现货与合约设置
func (v *SettingsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	gen := v.gens.begin()
	v.mu.Unlock()

	results := fanOut(ctx, v.logger, []task{
		fetchInto(PanelSpotSettings,
			func(ctx context.Context) (*model.Settings, error) { return v.spot.Settings(ctx, model.ExchangeUpbit) },
			func(s *model.Settings) { v.spotData = s }),
		fetchInto(PanelDerivSettings,
			v.deriv.DerivSettings,
			func(s *model.DerivSettings) { v.derivData = s }),
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	applyOutcomes(&v.gens, v.errs, gen, results, v.logger)
}

// SaveSpot 保存现货设置，成功后重新加载
func (v *SettingsView) SaveSpot(ctx context.Context, update model.SettingsUpdate) (*model.SettingsUpdateResult, error) {
	result, err := v.spot.UpdateSettings(ctx, update, model.ExchangeUpbit)
	if err != nil {
		return nil, fmt.Errorf("保存现货设置失败: %w", err)
	}
	v.logger.Info("现货设置已保存", zap.Strings("fields", result.UpdatedFields))
	v.Refresh(ctx)
	return result, nil
}

// SaveDerivKeys 保存Bybit API密钥
func (v *SettingsView) SaveDerivKeys(ctx context.Context, apiKey, apiSecret string) (*model.MessageResult, error) {
	result, err := v.deriv.UpdateDerivAPIKeys(ctx, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("保存Bybit密钥失败: %w", err)
	}
	v.Refresh(ctx)
	return result, nil
}

// SaveDerivStrategies 保存合约策略开关
func (v *SettingsView) SaveDerivStrategies(ctx context.Context, patch map[string]model.StrategyPatch) (*model.MessageResult, error) {
	result, err := v.deriv.UpdateDerivStrategySettings(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("保存合约策略失败: %w", err)
	}
	v.Refresh(ctx)
	return result, nil
}

// TestTelegram 发送测试消息
func (v *SettingsView) TestTelegram(ctx context.Context) (*model.MessageResult, error) {
	return v.spot.TestTelegram(ctx)
}

// ValidateUpbit 校验Upbit密钥
func (v *SettingsView) ValidateUpbit(ctx context.Context) (*model.UpbitValidation, error) {
	return v.spot.ValidateUpbit(ctx)
}

// Close 视图销毁后，迟到的结果直接丢弃
func (v *SettingsView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gens.closed = true
}

// Snapshot 当前设置
func (v *SettingsView) Snapshot() SettingsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return SettingsSnapshot{
		Spot:   v.spotData,
		Deriv:  v.derivData,
		Errors: v.errs.copy(),
	}
}
