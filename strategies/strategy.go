// Package strategies contains the signal-generating trading strategies and
// the Signal type they produce.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxrobot/market"
)

// Strategy turns a chronological candle series into a Signal.
//
// GenerateSignal never fails: a series that is too short, or one the strategy
// has no opinion on, yields a HOLD signal with zero confidence and a
// human-readable reason. The Symbol field is left for the caller to fill in;
// strategies only see prices.
type Strategy interface {
	// Name returns a stable identifier like "trend-following".
	Name() string

	// MinBars returns the number of candles the strategy needs before it
	// can produce anything other than HOLD.
	MinBars() int

	// GenerateSignal evaluates the series. The last candle is the current
	// bar; its close is the price any signal is quoted at.
	GenerateSignal(candles []market.Candle) Signal
}

var registry = make(map[string]func() Strategy)

// Register makes a strategy constructor available to ByName. Later
// registrations under the same name win.
func Register(name string, fn func() Strategy) {
	registry[name] = fn
}

// ByName constructs a registered strategy.
func ByName(name string) (Strategy, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// Names lists the registered strategy names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Defaults returns one instance of every built-in strategy, the set the
// engine runs when the config does not name any.
func Defaults() []Strategy {
	return []Strategy{
		NewTrendFollowing(),
		NewMeanReversion(),
		NewBreakout(),
	}
}

func init() {
	Register("trend-following", func() Strategy { return NewTrendFollowing() })
	Register("mean-reversion", func() Strategy { return NewMeanReversion() })
	Register("breakout", func() Strategy { return NewBreakout() })
}
