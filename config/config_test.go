package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
symbols:
  - EURUSD
  - GBPUSD
strategies:
  - trend-following
  - breakout
risk:
  start_balance: 25000
  max_risk_per_trade: 0.01
interval: 1m
journal:
  type: sqlite
  db_path: robot.db
feed:
  type: replay
  data:
    EURUSD: testdata/eurusd.csv
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromFile(writeConfig(t, "robot.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"EURUSD", "GBPUSD"}, cfg.Symbols)
	assert.Equal(t, []string{"trend-following", "breakout"}, cfg.Strategies)
	assert.Equal(t, 25000.0, cfg.Risk.StartBalance)
	assert.Equal(t, 0.01, cfg.Risk.MaxRiskPerTrade)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "replay", cfg.Feed.Type)

	d, err := cfg.CycleInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromFile(writeConfig(t, "robot.json",
		`{"symbols": ["USDJPY"], "journal": {"type": "csv"}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"USDJPY"}, cfg.Symbols)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeConfig(t, "bad.yaml", "symbols: [EURUSD]\njournal: {type: mongo}\n"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeConfig(t, "bad2.yaml", "symbols: []\n"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeConfig(t, "bad3.yaml", "symbols: [EURUSD]\ninterval: soon\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Len(t, cfg.Symbols, 7)
	require.NoError(t, cfg.Validate())

	d, err := cfg.CycleInterval()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)
}
