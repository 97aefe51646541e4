package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-level configuration for the bot.
// Strategy parameters (universe, top-N, capital, rebalance window) live
// in the YAML strategy file, not here; this covers credentials and plumbing.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Brokerage
	Alpaca AlpacaConfig

	// Market data
	Yahoo YahooConfig

	// Strategy file path
	StrategyFile string

	// Logging
	LogLevel  string
	LogFormat string
}

// AlpacaConfig holds Alpaca trading API configuration.
type AlpacaConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// YahooConfig holds Yahoo Finance endpoint configuration.
type YahooConfig struct {
	QuoteBaseURL string
	ChartBaseURL string
	Timeout      time.Duration
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		Alpaca: AlpacaConfig{
			APIKey:    getEnv("ALPACA_API_KEY", ""),
			SecretKey: getEnv("ALPACA_SECRET_KEY", ""),
			BaseURL:   getEnv("ALPACA_BASE_URL", "https://paper-api.alpaca.markets"),
			Timeout:   getEnvAsDuration("ALPACA_TIMEOUT", "15s"),
		},

		Yahoo: YahooConfig{
			QuoteBaseURL: getEnv("YAHOO_QUOTE_BASE_URL", "https://finance.yahoo.com"),
			ChartBaseURL: getEnv("YAHOO_CHART_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:      getEnvAsDuration("YAHOO_TIMEOUT", "15s"),
		},

		StrategyFile: getEnv("STRATEGY_FILE", "strategy.yaml"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Alpaca.APIKey == "" {
		return fmt.Errorf("ALPACA_API_KEY is required")
	}
	if c.Alpaca.SecretKey == "" {
		return fmt.Errorf("ALPACA_SECRET_KEY is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
