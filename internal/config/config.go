// internal/config/config.go
//
// 讀取執行期設定。所有設定皆來自環境變數（main 會先以 godotenv 載入 .env），
// 由 Viper 綁定並反序列化為 Config；金額與利率再轉為 decimal 並檢核。

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the bank simulator.
type Config struct {
	BankName         string `mapstructure:"BANK_NAME"`
	StartNumber      int64  `mapstructure:"BANK_START_NUMBER"`
	CurrencySymbol   string `mapstructure:"BANK_CURRENCY_SYMBOL"`
	DailyLimitText   string `mapstructure:"BANK_DEFAULT_DAILY_LIMIT"`
	InterestSchedule string `mapstructure:"BANK_INTEREST_SCHEDULE"`
	InterestRateText string `mapstructure:"BANK_INTEREST_RATE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`

	// 由上面的文字欄位解析而來。
	DefaultDailyLimit decimal.Decimal `mapstructure:"-"`
	InterestRate      decimal.Decimal `mapstructure:"-"`
}

var keys = []string{
	"BANK_NAME",
	"BANK_START_NUMBER",
	"BANK_CURRENCY_SYMBOL",
	"BANK_DEFAULT_DAILY_LIMIT",
	"BANK_INTEREST_SCHEDULE",
	"BANK_INTEREST_RATE",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	viper.SetDefault("BANK_NAME", "BANK OF JOE")
	viper.SetDefault("BANK_START_NUMBER", 1001)
	viper.SetDefault("BANK_CURRENCY_SYMBOL", "₹")
	viper.SetDefault("BANK_DEFAULT_DAILY_LIMIT", "500.00")
	viper.SetDefault("BANK_INTEREST_SCHEDULE", "") // 空字串代表不啟用排程計息
	viper.SetDefault("BANK_INTEREST_RATE", "0")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.BankName = strings.TrimSpace(c.BankName)
	c.InterestSchedule = strings.TrimSpace(c.InterestSchedule)
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if c.StartNumber <= 0 {
		return fmt.Errorf("BANK_START_NUMBER must be positive, got %d", c.StartNumber)
	}

	limit, err := decimal.NewFromString(strings.TrimSpace(c.DailyLimitText))
	if err != nil {
		return fmt.Errorf("BANK_DEFAULT_DAILY_LIMIT: %w", err)
	}
	if !limit.IsPositive() {
		return fmt.Errorf("BANK_DEFAULT_DAILY_LIMIT must be positive, got %s", limit)
	}
	c.DefaultDailyLimit = limit

	rate, err := decimal.NewFromString(strings.TrimSpace(c.InterestRateText))
	if err != nil {
		return fmt.Errorf("BANK_INTEREST_RATE: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("BANK_INTEREST_RATE cannot be negative, got %s", rate)
	}
	c.InterestRate = rate

	if c.InterestSchedule != "" {
		if _, err := cron.ParseStandard(c.InterestSchedule); err != nil {
			return fmt.Errorf("BANK_INTEREST_SCHEDULE: %w", err)
		}
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// InterestEnabled 回報是否需要啟動排程計息。
func (c *Config) InterestEnabled() bool {
	return c.InterestSchedule != "" && c.InterestRate.IsPositive()
}
