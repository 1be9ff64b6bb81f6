package model

// StrategyConfig 单个策略的配置
type StrategyConfig struct {
	Enabled     bool   `json:"enabled"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// StrategyPatch 策略配置的部分更新
type StrategyPatch struct {
	Enabled     *bool   `json:"enabled,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Timeframe   *string `json:"timeframe,omitempty"`
}

// Settings 现货设置
type Settings struct {
	UpbitAccessKey    string                    `json:"upbit_access_key"`
	UpbitSecretKey    string                    `json:"upbit_secret_key"`
	TelegramToken     string                    `json:"telegram_token"`
	TelegramChatID    string                    `json:"telegram_chat_id"`
	TelegramEnabled   bool                      `json:"telegram_enabled"`
	StrategySettings  map[string]StrategyConfig `json:"strategy_settings"`
	HardCapRatio      float64                   `json:"hard_cap_ratio"`
	VirtualKRWBalance float64                   `json:"virtual_krw_balance"`
}

// SettingsUpdate 现货设置更新，nil字段不发送
type SettingsUpdate struct {
	UpbitAccessKey    *string                  `json:"upbit_access_key,omitempty"`
	UpbitSecretKey    *string                  `json:"upbit_secret_key,omitempty"`
	TelegramToken     *string                  `json:"telegram_token,omitempty"`
	TelegramChatID    *string                  `json:"telegram_chat_id,omitempty"`
	TelegramEnabled   *bool                    `json:"telegram_enabled,omitempty"`
	StrategySettings  map[string]StrategyPatch `json:"strategy_settings,omitempty"`
	HardCapRatio      *float64                 `json:"hard_cap_ratio,omitempty"`
	VirtualKRWBalance *float64                 `json:"virtual_krw_balance,omitempty"`
}

// SettingsUpdateResult 设置更新结果
type SettingsUpdateResult struct {
	Success       bool     `json:"success"`
	UpdatedFields []string `json:"updated_fields"`
}

// UpbitValidation Upbit密钥校验结果
type UpbitValidation struct {
	Valid      bool     `json:"valid"`
	KRWBalance *float64 `json:"krw_balance,omitempty"`
	Message    string   `json:"message"`
}

// DerivSettings 合约设置
type DerivSettings struct {
	APIConfigured    bool                      `json:"api_configured"`
	StrategySettings map[string]StrategyConfig `json:"strategy_settings"`
	VirtualBalance   float64                   `json:"virtual_balance"`
	Leverage         float64                   `json:"leverage"`
}
