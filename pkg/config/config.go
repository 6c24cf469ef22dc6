package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// NGNPerUSD is the fixed conversion rate applied to every
	// dual-currency field.
	NGNPerUSD decimal.Decimal
	// DefaultAnnualRatePercent is the interest rate used when a credit
	// request does not carry its own.
	DefaultAnnualRatePercent decimal.Decimal

	// SeedDemoData seeds the active profile with a lived-in dataset at
	// startup.
	SeedDemoData bool

	// RateLimit is a limiter format string, e.g. "100-M".
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("NGN_PER_USD", "1600")
	viper.SetDefault("DEFAULT_ANNUAL_RATE_PERCENT", "25")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	rateStr := viper.GetString("NGN_PER_USD")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || !rate.IsPositive() {
		rate = decimal.NewFromInt(1600)
		log.Printf("Warning: Invalid value for NGN_PER_USD ('%s'). Defaulting to %s.\n", rateStr, rate.String())
	}
	cfg.NGNPerUSD = rate

	annualStr := viper.GetString("DEFAULT_ANNUAL_RATE_PERCENT")
	annual, err := decimal.NewFromString(annualStr)
	if err != nil || annual.IsNegative() {
		annual = decimal.NewFromInt(25)
		log.Printf("Warning: Invalid value for DEFAULT_ANNUAL_RATE_PERCENT ('%s'). Defaulting to %s.\n", annualStr, annual.String())
	}
	cfg.DefaultAnnualRatePercent = annual

	cfg.SeedDemoData = viper.GetBool("SEED_DEMO_DATA")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "300-M"
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s.\n", cfg.RateLimit)
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}
