package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		APIBaseURL:    "http://localhost:5000/api",
		HTTPTimeout:   15 * time.Second,
		SessionDBPath: "./session.db",
		PageSize:      10,
		TrendCacheTTL: time.Minute,
		ChartsDir:     ".",
		SheetName:     "Transactions",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "export configured",
			mutate:  func(c *Config) { c.SpreadsheetID = "sheet-123" },
			wantErr: false,
		},
		{
			name:        "invalid URL scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name:        "timeout too short",
			mutate:      func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "timeout too long",
			mutate:      func(c *Config) { c.HTTPTimeout = 10 * time.Minute },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
		{
			name:        "empty session path",
			mutate:      func(c *Config) { c.SessionDBPath = "" },
			wantErr:     true,
			errorString: "session database path cannot be empty",
		},
		{
			name:        "page size too small",
			mutate:      func(c *Config) { c.PageSize = 0 },
			wantErr:     true,
			errorString: "must be at least 1",
		},
		{
			name:        "page size too large",
			mutate:      func(c *Config) { c.PageSize = 1000 },
			wantErr:     true,
			errorString: "must be at most 500",
		},
		{
			name:        "negative cache TTL",
			mutate:      func(c *Config) { c.TrendCacheTTL = -time.Second },
			wantErr:     true,
			errorString: "must not be negative",
		},
		{
			name: "spreadsheet without sheet name",
			mutate: func(c *Config) {
				c.SpreadsheetID = "sheet-123"
				c.SheetName = "  "
			},
			wantErr:     true,
			errorString: "sheet name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateHasNoSideEffects(t *testing.T) {
	cfg := validConfig()
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "nested", "deeper", "session.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cfg.SessionDBPath)); !os.IsNotExist(err) {
		t.Fatalf("validation must not create the session directory")
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = "ftp://example.com"
	cfg.PageSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "http") || !strings.Contains(msg, "page size") {
		t.Fatalf("expected both failures reported, got %q", msg)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"FINTRACK_API_URL", "FINTRACK_HTTP_TIMEOUT", "FINTRACK_SESSION_DB",
		"FINTRACK_PAGE_SIZE", "FINTRACK_TREND_CACHE_TTL", "FINTRACK_SHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Fatalf("API URL default: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("timeout default: %v", cfg.HTTPTimeout)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("page size default: %d", cfg.PageSize)
	}
	if cfg.SheetName != "Transactions" {
		t.Fatalf("sheet name default: %q", cfg.SheetName)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FINTRACK_API_URL", "https://tracker.example.com/api")
	t.Setenv("FINTRACK_PAGE_SIZE", "25")
	t.Setenv("FINTRACK_HTTP_TIMEOUT", "30s")
	t.Setenv("FINTRACK_TREND_CACHE_TTL", "5m")

	cfg := Load()
	if cfg.APIBaseURL != "https://tracker.example.com/api" {
		t.Fatalf("API URL: %q", cfg.APIBaseURL)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("page size: %d", cfg.PageSize)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.TrendCacheTTL != 5*time.Minute {
		t.Fatalf("cache TTL: %v", cfg.TrendCacheTTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("FINTRACK_PAGE_SIZE", "lots")
	t.Setenv("FINTRACK_HTTP_TIMEOUT", "soon")

	cfg := Load()
	if cfg.PageSize != 10 || cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("malformed values must fall back to defaults: %d %v", cfg.PageSize, cfg.HTTPTimeout)
	}
}
