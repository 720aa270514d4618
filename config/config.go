// Package config loads the robot configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxrobot/risk"
)

// Config is the complete robot configuration.
type Config struct {
	Symbols    []string      `json:"symbols" yaml:"symbols"`
	Strategies []string      `json:"strategies,omitempty" yaml:"strategies,omitempty"`
	Risk       risk.Policy   `json:"risk" yaml:"risk"`
	Lookback   int           `json:"lookback,omitempty" yaml:"lookback,omitempty"`
	Interval   string        `json:"interval,omitempty" yaml:"interval,omitempty"`
	Feed       FeedConfig    `json:"feed" yaml:"feed"`
	Journal    JournalConfig `json:"journal" yaml:"journal"`
	Metrics    MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// FeedConfig selects the price feed. Data maps symbol -> candle CSV path
// (plain or .xz) for the replay feed.
type FeedConfig struct {
	Type string            `json:"type" yaml:"type"` // "replay"
	Data map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// JournalConfig selects the journal backend.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	SignalsFile string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile  string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// MetricsConfig controls the optional Prometheus listener in the run loop.
type MetricsConfig struct {
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"` // e.g. ":9090"
}

// Default returns a runnable configuration: the seven majors, all built-in
// strategies, default risk policy, no journal.
func Default() *Config {
	return &Config{
		Symbols: []string{
			"EURUSD", "GBPUSD", "USDJPY", "USDCHF",
			"AUDUSD", "USDCAD", "NZDUSD",
		},
		Risk:     risk.DefaultPolicy(),
		Interval: "5m",
		Journal:  JournalConfig{Type: "none"},
	}
}

// CycleInterval parses the interval between cycles, defaulting to 5 minutes.
func (c *Config) CycleInterval() (time.Duration, error) {
	if c.Interval == "" {
		return 5 * time.Minute, nil
	}
	return time.ParseDuration(c.Interval)
}

// LoadFromFile loads configuration from a YAML or JSON file, picking the
// parser by extension and falling back to trying both.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	switch {
	case strings.HasSuffix(path, ".json"):
		err = json.Unmarshal(data, cfg)
	default:
		// YAML first, JSON as a fallback.
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr == nil {
				err = nil
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the config the loader can check without
// touching the filesystem.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("config: at least one symbol is required")
	}
	if _, err := c.CycleInterval(); err != nil {
		return fmt.Errorf("config: bad interval %q: %w", c.Interval, err)
	}
	switch c.Journal.Type {
	case "", "none", "sqlite", "csv":
	default:
		return fmt.Errorf("config: unknown journal type %q", c.Journal.Type)
	}
	return nil
}
