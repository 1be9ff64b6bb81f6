package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// 会话存储类型
const (
	SessionStoreMemory = "memory"
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
)

// Config 应用配置结构
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend" yaml:"backend"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Session   SessionConfig   `mapstructure:"session" yaml:"session"`
	Redis     RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Chart     ChartConfig     `mapstructure:"chart" yaml:"chart"`
	System    SystemConfig    `mapstructure:"system" yaml:"system"`
}

// BackendConfig 后端服务配置
type BackendConfig struct {
	BaseURL               string `mapstructure:"base_url" yaml:"base_url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" yaml:"request_timeout_seconds"`
	StreamPath            string `mapstructure:"stream_path" yaml:"stream_path"`
}

// DashboardConfig 看板配置
type DashboardConfig struct {
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds" yaml:"poll_interval_seconds"`
	DefaultExchange     string `mapstructure:"default_exchange" yaml:"default_exchange"`
	DefaultMode         string `mapstructure:"default_mode" yaml:"default_mode"`
	LogLimit            int    `mapstructure:"log_limit" yaml:"log_limit"`
	HistoryPageSize     int    `mapstructure:"history_page_size" yaml:"history_page_size"`
	PeriodDays          int    `mapstructure:"period_days" yaml:"period_days"`
}

// SessionConfig 会话存储配置
type SessionConfig struct {
	Store    string `mapstructure:"store" yaml:"store"`
	FilePath string `mapstructure:"file_path" yaml:"file_path"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port"`
	Password  string `mapstructure:"password" yaml:"password"`
	DB        int    `mapstructure:"db" yaml:"db"`
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// ChartConfig 图表尺寸配置
type ChartConfig struct {
	Width            int `mapstructure:"width" yaml:"width"`
	MainHeight       int `mapstructure:"main_height" yaml:"main_height"`
	OscillatorHeight int `mapstructure:"oscillator_height" yaml:"oscillator_height"`
}

// SystemConfig 系统配置
type SystemConfig struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogDir   string `mapstructure:"log_dir" yaml:"log_dir"`
}

// LoadConfig 从文件加载配置
func LoadConfig(filePath string) (*Config, error) {
	// .env 文件不存在时直接使用系统环境变量
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 环境变量覆盖，如 TRADEDASH_BACKEND_BASE_URL
	v.SetEnvPrefix("TRADEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if apiURL := os.Getenv("TRADEDASH_API_URL"); apiURL != "" {
		v.Set("backend.base_url", apiURL)
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		v.Set("redis.password", redisPassword)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &config, nil
}

// LoadConfigFromYAML 不经过viper直接解析yaml
func LoadConfigFromYAML(filePath string) (*Config, error) {
	yamlFile, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := GetDefaultConfig()
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return config, nil
}

// setDefaults 将默认配置注册到viper，文件中缺省的键使用默认值
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("backend.base_url", d.Backend.BaseURL)
	v.SetDefault("backend.request_timeout_seconds", d.Backend.RequestTimeoutSeconds)
	v.SetDefault("backend.stream_path", d.Backend.StreamPath)
	v.SetDefault("dashboard.poll_interval_seconds", d.Dashboard.PollIntervalSeconds)
	v.SetDefault("dashboard.default_exchange", d.Dashboard.DefaultExchange)
	v.SetDefault("dashboard.default_mode", d.Dashboard.DefaultMode)
	v.SetDefault("dashboard.log_limit", d.Dashboard.LogLimit)
	v.SetDefault("dashboard.history_page_size", d.Dashboard.HistoryPageSize)
	v.SetDefault("dashboard.period_days", d.Dashboard.PeriodDays)
	v.SetDefault("session.store", d.Session.Store)
	v.SetDefault("session.file_path", d.Session.FilePath)
	v.SetDefault("redis.host", d.Redis.Host)
	v.SetDefault("redis.port", d.Redis.Port)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.key_prefix", d.Redis.KeyPrefix)
	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.main_height", d.Chart.MainHeight)
	v.SetDefault("chart.oscillator_height", d.Chart.OscillatorHeight)
	v.SetDefault("system.log_level", d.System.LogLevel)
	v.SetDefault("system.log_dir", d.System.LogDir)
}

// validateConfig 验证配置有效性
func validateConfig(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("后端地址不能为空")
	}

	if config.Backend.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("请求超时必须大于0")
	}

	if config.Dashboard.PollIntervalSeconds <= 0 {
		return fmt.Errorf("轮询间隔必须大于0")
	}

	switch config.Dashboard.DefaultExchange {
	case "upbit", "bybit":
	default:
		return fmt.Errorf("未知的交易所: %s", config.Dashboard.DefaultExchange)
	}

	switch config.Dashboard.DefaultMode {
	case "simulation", "real":
	default:
		return fmt.Errorf("未知的交易模式: %s", config.Dashboard.DefaultMode)
	}

	switch config.Session.Store {
	case SessionStoreMemory:
	case SessionStoreFile:
		if config.Session.FilePath == "" {
			return fmt.Errorf("文件会话存储需要配置file_path")
		}
	case SessionStoreRedis:
		if config.Redis.Host == "" {
			return fmt.Errorf("Redis主机不能为空")
		}
		if config.Redis.Port <= 0 || config.Redis.Port > 65535 {
			return fmt.Errorf("无效的Redis端口")
		}
	default:
		return fmt.Errorf("未知的会话存储类型: %s", config.Session.Store)
	}

	return nil
}

// GetDefaultConfig 获取默认配置（用于生成示例配置）
func GetDefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:               "http://localhost:8000",
			RequestTimeoutSeconds: 15,
			StreamPath:            "/api/trading/logs",
		},
		Dashboard: DashboardConfig{
			PollIntervalSeconds: 10,
			DefaultExchange:     "upbit",
			DefaultMode:         "simulation",
			LogLimit:            50,
			HistoryPageSize:     50,
			PeriodDays:          1,
		},
		Session: SessionConfig{
			Store:    SessionStoreFile,
			FilePath: "./data/session.yaml",
		},
		Redis: RedisConfig{
			Host:      "localhost",
			Port:      6379,
			DB:        0,
			KeyPrefix: "tradedash:",
		},
		Chart: ChartConfig{
			Width:            960,
			MainHeight:       350,
			OscillatorHeight: 100,
		},
		System: SystemConfig{
			LogLevel: "INFO",
			LogDir:   "./logs",
		},
	}
}

// SaveConfigToFile 将配置保存到文件
func SaveConfigToFile(config *Config, filePath string) error {
	v := viper.New()
	v.SetConfigFile(filePath)

	// 注意：这里不包含Redis密码
	configMap := map[string]interface{}{
		"backend": map[string]interface{}{
			"base_url":                config.Backend.BaseURL,
			"request_timeout_seconds": config.Backend.RequestTimeoutSeconds,
			"stream_path":             config.Backend.StreamPath,
		},
		"dashboard": map[string]interface{}{
			"poll_interval_seconds": config.Dashboard.PollIntervalSeconds,
			"default_exchange":      config.Dashboard.DefaultExchange,
			"default_mode":          config.Dashboard.DefaultMode,
			"log_limit":             config.Dashboard.LogLimit,
			"history_page_size":     config.Dashboard.HistoryPageSize,
			"period_days":           config.Dashboard.PeriodDays,
		},
		"session": map[string]interface{}{
			"store":     config.Session.Store,
			"file_path": config.Session.FilePath,
		},
		"redis": map[string]interface{}{
			"host":       config.Redis.Host,
			"port":       config.Redis.Port,
			"db":         config.Redis.DB,
			"key_prefix": config.Redis.KeyPrefix,
		},
		"chart": map[string]interface{}{
			"width":             config.Chart.Width,
			"main_height":       config.Chart.MainHeight,
			"oscillator_height": config.Chart.OscillatorHeight,
		},
		"system": map[string]interface{}{
			"log_level": config.System.LogLevel,
			"log_dir":   config.System.LogDir,
		},
	}

	for k, val := range configMap {
		v.Set(k, val)
	}

	return v.WriteConfigAs(filePath)
}
