package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local session store
	SessionDBPath string

	// Transaction list
	PageSize int

	// Dashboard
	TrendCacheTTL time.Duration
	ChartsDir     string

	// Google Sheets export (optional)
	SpreadsheetID string
	SheetName     string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("FINTRACK_API_URL", "http://localhost:5000/api"),
		HTTPTimeout: getEnvDuration("FINTRACK_HTTP_TIMEOUT", 15*time.Second),

		SessionDBPath: getEnv("FINTRACK_SESSION_DB", defaultSessionPath()),

		PageSize: getEnvInt("FINTRACK_PAGE_SIZE", 10),

		TrendCacheTTL: getEnvDuration("FINTRACK_TREND_CACHE_TTL", time.Minute),
		ChartsDir:     getEnv("FINTRACK_CHARTS_DIR", "."),

		SpreadsheetID: getEnv("FINTRACK_SPREADSHEET_ID", ""),
		SheetName:     getEnv("FINTRACK_SHEET_NAME", "Transactions"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	// The session directory is created by session.Open; validation only
	// reports.
	if c.SessionDBPath == "" {
		errors = append(errors, "session database path cannot be empty")
	}

	if c.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	} else if c.PageSize > 500 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at most 500", c.PageSize))
	}

	if c.TrendCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid trend cache TTL %v: must not be negative", c.TrendCacheTTL))
	}

	// Sheet name only matters when export is configured
	if c.SpreadsheetID != "" && strings.TrimSpace(c.SheetName) == "" {
		errors = append(errors, "sheet name cannot be empty when a spreadsheet ID is configured")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./fintrack.db"
	}
	return filepath.Join(home, ".fintrack", "session.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
