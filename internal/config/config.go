package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string `yaml:"addr"`
		PasswordHash   string `yaml:"password_hash"` // bcrypt hash of the dashboard password, empty disables auth
		SessionTTLMins int    `yaml:"session_ttl_minutes"`
	} `yaml:"server"`
	CoinGecko struct {
		BaseURL        string  `yaml:"base_url"`
		APIKey         string  `yaml:"api_key"`
		Currency       string  `yaml:"currency"`
		RequestsPerMin int     `yaml:"requests_per_minute"`
		TimeoutSecs    int     `yaml:"timeout_seconds"`
		Mock           bool    `yaml:"mock"`
		MockPrice      float64 `yaml:"mock_price"`
	} `yaml:"coingecko"`
	Analysis struct {
		HistoryDays   int    `yaml:"history_days"`
		RSIPeriod     int    `yaml:"rsi_period"`
		MACDFast      int    `yaml:"macd_fast"`
		MACDSlow      int    `yaml:"macd_slow"`
		MACDSignal    int    `yaml:"macd_signal"`
		MAShort       int    `yaml:"ma_short"`
		MALong        int    `yaml:"ma_long"`
		ATRPeriod     int    `yaml:"atr_period"`
		RiskTolerance string `yaml:"risk_tolerance"` // low, medium, high
	} `yaml:"analysis"`
	Risk struct {
		PortfolioValue  float64 `yaml:"portfolio_value"`
		MaxRiskPerTrade float64 `yaml:"max_risk_per_trade"`
		MaxExposure     float64 `yaml:"max_exposure"`
		StopPercentage  float64 `yaml:"stop_percentage"`
		TrailPercentage float64 `yaml:"trail_percentage"`
	} `yaml:"risk"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
		SummaryCron  string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DASHBOARD_PASSWORD_HASH"); v != "" {
		cfg.Server.PasswordHash = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("RISK_TOLERANCE"); v != "" {
		cfg.Analysis.RiskTolerance = v
	}
	if v := os.Getenv("PORTFOLIO_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.PortfolioValue = f
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.SessionTTLMins == 0 {
		cfg.Server.SessionTTLMins = 12 * 60
	}
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.CoinGecko.Currency == "" {
		cfg.CoinGecko.Currency = "usd"
	}
	if cfg.CoinGecko.RequestsPerMin == 0 {
		cfg.CoinGecko.RequestsPerMin = 10 // free tier friendly
	}
	if cfg.CoinGecko.TimeoutSecs == 0 {
		cfg.CoinGecko.TimeoutSecs = 30
	}
	if cfg.CoinGecko.MockPrice == 0 {
		cfg.CoinGecko.MockPrice = 3000
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 250
	}
	if cfg.Analysis.RSIPeriod == 0 {
		cfg.Analysis.RSIPeriod = 14
	}
	if cfg.Analysis.MACDFast == 0 {
		cfg.Analysis.MACDFast = 12
	}
	if cfg.Analysis.MACDSlow == 0 {
		cfg.Analysis.MACDSlow = 26
	}
	if cfg.Analysis.MACDSignal == 0 {
		cfg.Analysis.MACDSignal = 9
	}
	if cfg.Analysis.MAShort == 0 {
		cfg.Analysis.MAShort = 50
	}
	if cfg.Analysis.MALong == 0 {
		cfg.Analysis.MALong = 200
	}
	if cfg.Analysis.ATRPeriod == 0 {
		cfg.Analysis.ATRPeriod = 14
	}
	if cfg.Analysis.RiskTolerance == "" {
		cfg.Analysis.RiskTolerance = "medium"
	}
	if cfg.Risk.PortfolioValue == 0 {
		cfg.Risk.PortfolioValue = 10000
	}
	if cfg.Risk.MaxRiskPerTrade == 0 {
		cfg.Risk.MaxRiskPerTrade = 0.02
	}
	if cfg.Risk.MaxExposure == 0 {
		cfg.Risk.MaxExposure = 0.25
	}
	if cfg.Risk.StopPercentage == 0 {
		cfg.Risk.StopPercentage = 0.05
	}
	if cfg.Risk.TrailPercentage == 0 {
		cfg.Risk.TrailPercentage = 0.5
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 */30 * * * *"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 20 * * *"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Risk.PortfolioValue <= 0 {
		return fmt.Errorf("risk.portfolio_value must be positive")
	}
	if c.Risk.MaxRiskPerTrade <= 0 || c.Risk.MaxRiskPerTrade >= 1 {
		return fmt.Errorf("risk.max_risk_per_trade must be in (0,1)")
	}
	if c.Risk.MaxExposure <= 0 || c.Risk.MaxExposure > 1 {
		return fmt.Errorf("risk.max_exposure must be in (0,1]")
	}
	if c.Risk.StopPercentage <= 0 || c.Risk.StopPercentage >= 1 {
		return fmt.Errorf("risk.stop_percentage must be in (0,1)")
	}
	switch c.Analysis.RiskTolerance {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("analysis.risk_tolerance must be low, medium or high")
	}
	if c.Analysis.MACDFast >= c.Analysis.MACDSlow {
		return fmt.Errorf("analysis.macd_fast must be less than macd_slow")
	}
	if c.Analysis.MAShort >= c.Analysis.MALong {
		return fmt.Errorf("analysis.ma_short must be less than ma_long")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}
