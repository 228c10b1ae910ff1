package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Debug   DebugConfig
	Browser BrowserConfig
	Search  SearchConfig
	Store   StoreConfig
	Logging LogConfig
}

// DebugConfig holds the browser remote-debugging endpoint settings.
type DebugConfig struct {
	Host string `envconfig:"CDP_HOST" default:"localhost"`
	Port int    `envconfig:"CDP_PORT" default:"9222"`
}

// BrowserConfig holds interaction timing settings.
type BrowserConfig struct {
	SettleDelay  time.Duration `envconfig:"NAV_SETTLE_DELAY" default:"2s"`
	PollInterval time.Duration `envconfig:"WAIT_POLL_INTERVAL" default:"500ms"`
	WaitTimeout  time.Duration `envconfig:"WAIT_TIMEOUT" default:"10s"`
}

// SearchConfig holds pipeline defaults and inter-page pacing.
type SearchConfig struct {
	PageLimit   int           `envconfig:"SEARCH_PAGE_LIMIT" default:"3"`
	MinScore    float64       `envconfig:"SEARCH_MIN_SCORE" default:"3.0"`
	TargetCount int           `envconfig:"SEARCH_TARGET_COUNT" default:"10"`
	PageDelay   time.Duration `envconfig:"SEARCH_PAGE_DELAY" default:"2s"`
	Selectors   string        `envconfig:"SEARCH_SELECTORS_FILE" default:""`
}

// StoreConfig holds results persistence settings.
type StoreConfig struct {
	OutputDir string `envconfig:"RESULTS_DIR" default:"results"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Debug: DebugConfig{
			Host: "localhost",
			Port: 9222,
		},
		Browser: BrowserConfig{
			SettleDelay:  2 * time.Second,
			PollInterval: 500 * time.Millisecond,
			WaitTimeout:  10 * time.Second,
		},
		Search: SearchConfig{
			PageLimit:   3,
			MinScore:    3.0,
			TargetCount: 10,
			PageDelay:   2 * time.Second,
		},
		Store: StoreConfig{
			OutputDir: "results",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
