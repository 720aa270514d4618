package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxrobot/config"
	"github.com/rustyeddy/fxrobot/engine"
	"github.com/rustyeddy/fxrobot/feed"
	"github.com/rustyeddy/fxrobot/journal"
	"github.com/rustyeddy/fxrobot/risk"
	"github.com/rustyeddy/fxrobot/strategies"
)

// openJournal builds the journal backend named in the config.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		path := cfg.Journal.DBPath
		if path == "" {
			path = "./fxrobot.sqlite"
		}
		return journal.NewSQLite(path)
	case "csv":
		return journal.NewCSV(cfg.Journal.SignalsFile, cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "", "none":
		return journal.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}

// buildFeed constructs the price feed. Only the replay feed is wired up; it
// is returned concretely so the run loop can drive it bar by bar.
func buildFeed(cfg *config.Config) (*feed.Replay, error) {
	switch cfg.Feed.Type {
	case "", "replay":
		if len(cfg.Feed.Data) == 0 {
			return nil, fmt.Errorf("feed: no candle data files configured")
		}
		return feed.LoadReplay(cfg.Feed.Data)
	default:
		return nil, fmt.Errorf("unknown feed type %q", cfg.Feed.Type)
	}
}

// buildEngine assembles a full engine from a loaded configuration.
func buildEngine(cfg *config.Config) (*engine.Engine, *feed.Replay, journal.Journal, error) {
	replay, err := buildFeed(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create journal: %w", err)
	}

	var strats []strategies.Strategy
	for _, name := range cfg.Strategies {
		s, err := strategies.ByName(name)
		if err != nil {
			j.Close()
			return nil, nil, nil, err
		}
		strats = append(strats, s)
	}

	eng, err := engine.New(engine.Config{
		Feed:       replay,
		Symbols:    cfg.Symbols,
		Strategies: strats,
		Risk:       risk.NewManager(cfg.Risk),
		Journal:    j,
		Lookback:   cfg.Lookback,
	})
	if err != nil {
		j.Close()
		return nil, nil, nil, err
	}
	return eng, replay, j, nil
}
