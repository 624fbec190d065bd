package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string   `yaml:"base_url"`
		APIKey  string   `yaml:"api_key"`
		Symbols []string `yaml:"symbols"`
		Mock    bool     `yaml:"mock"`
	} `yaml:"data_source"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		MonitorCron string `yaml:"monitor_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Trading struct {
		UserID         int64   `yaml:"user_id"`
		InitialBalance float64 `yaml:"initial_balance"`
		RiskPerTrade   float64 `yaml:"risk_per_trade"`
		MinConfidence  float64 `yaml:"min_confidence"`
		MaxHoldHours   int     `yaml:"max_hold_hours"`
	} `yaml:"trading"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
		InMemory   bool   `yaml:"in_memory"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BROKER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BROKER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TRADE_SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("INITIAL_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.InitialBalance = f
		}
	}
	if v := os.Getenv("RISK_PER_TRADE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.RiskPerTrade = f
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"NIFTY50", "BANKNIFTY", "RELIANCE", "TCS", "HDFCBANK", "INFY"}
	}
	if cfg.Schedule.ScanCron == "" {
		// Every 5 minutes during the trading session, Mon-Fri.
		cfg.Schedule.ScanCron = "0 */5 9-15 * * 1-5"
	}
	if cfg.Schedule.MonitorCron == "" {
		cfg.Schedule.MonitorCron = "0 * 9-15 * * 1-5"
	}
	if cfg.Schedule.SummaryCron == "" {
		// Daily wrap-up after close.
		cfg.Schedule.SummaryCron = "0 45 15 * * 1-5"
	}
	if cfg.Trading.UserID == 0 {
		cfg.Trading.UserID = 1
	}
	if cfg.Trading.InitialBalance == 0 {
		cfg.Trading.InitialBalance = 100000
	}
	if cfg.Trading.RiskPerTrade == 0 {
		cfg.Trading.RiskPerTrade = 0.01
	}
	if cfg.Trading.MinConfidence == 0 {
		cfg.Trading.MinConfidence = 0.6
	}
	if cfg.Trading.MaxHoldHours == 0 {
		cfg.Trading.MaxHoldHours = 6
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trading.db"
	}

	return cfg, nil
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when a bot token is set")
	}
	if !c.DataSource.Mock && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required unless mock mode is on")
	}
	if c.Trading.RiskPerTrade <= 0 || c.Trading.RiskPerTrade > 0.1 {
		return fmt.Errorf("trading.risk_per_trade must be in (0, 0.1]")
	}
	if c.Trading.InitialBalance <= 0 {
		return fmt.Errorf("trading.initial_balance must be positive")
	}
	return nil
}
