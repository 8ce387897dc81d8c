// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for the cache database (always absolute)
	AnalyticsBaseURL string // Portfolio analytics service base URL
	YahooBaseURL     string // Yahoo Finance API base URL
	LogLevel         string
	Port             int
	PortfolioSize    int           // Number of companies per recommended portfolio
	CallTimeout      time.Duration // Timeout applied to each external API call
	DevMode          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory with fallback logic:
	// 1. Check NAVIGATOR_DATA_DIR environment variable
	// 2. If not set, default to ./data
	// 3. Always resolve to absolute path and ensure it exists
	dataDir := getEnv("NAVIGATOR_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		Port:             getEnvAsInt("PORT", 8080),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		AnalyticsBaseURL: getEnv("ANALYTICS_BASE_URL", "https://api.newtonanalytics.com"),
		YahooBaseURL:     getEnv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PortfolioSize:    getEnvAsInt("PORTFOLIO_SIZE", 10),
		CallTimeout:      time.Duration(getEnvAsInt("CALL_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and sane
func (c *Config) Validate() error {
	if c.PortfolioSize < 1 {
		return fmt.Errorf("portfolio size must be positive, got %d", c.PortfolioSize)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout)
	}
	if c.AnalyticsBaseURL == "" {
		return fmt.Errorf("analytics base URL is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
