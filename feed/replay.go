package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/fxrobot/market"
)

// Replay walks per-symbol candle histories one bar per step, so the whole
// robot can run offline against recorded data. At any point the feed exposes
// only the bars up to its cursor; the current price is the cursor bar's
// close.
//
// All symbols advance together. Done reports when the shortest history is
// exhausted.
type Replay struct {
	mu      sync.Mutex
	candles map[string][]market.Candle
	cursor  int
}

// NewReplay builds a replay feed over the given histories. The cursor starts
// on the first bar.
func NewReplay(histories map[string][]market.Candle) (*Replay, error) {
	if len(histories) == 0 {
		return nil, fmt.Errorf("replay feed needs at least one symbol")
	}
	for sym, cs := range histories {
		if len(cs) == 0 {
			return nil, fmt.Errorf("replay feed: empty history for %s", sym)
		}
	}
	return &Replay{candles: histories}, nil
}

// LoadReplay builds a replay feed from per-symbol CSV (or CSV.xz) files.
func LoadReplay(paths map[string]string) (*Replay, error) {
	histories := make(map[string][]market.Candle, len(paths))
	for sym, path := range paths {
		cs, err := LoadCandlesCSV(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sym, err)
		}
		histories[sym] = cs
	}
	return NewReplay(histories)
}

// Advance moves every symbol forward one bar. It returns false when any
// symbol has run out of data.
func (r *Replay) Advance() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor++
	return !r.doneLocked()
}

// Done reports whether the replay has consumed some symbol's history.
func (r *Replay) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doneLocked()
}

func (r *Replay) doneLocked() bool {
	for _, cs := range r.candles {
		if r.cursor >= len(cs) {
			return true
		}
	}
	return false
}

// Symbols lists the symbols the replay covers.
func (r *Replay) Symbols() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.candles))
	for sym := range r.candles {
		out = append(out, sym)
	}
	return out
}

func (r *Replay) HistoricalCandles(ctx context.Context, symbol string, bars int) ([]market.Candle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs, ok := r.candles[symbol]
	if !ok {
		return nil, nil
	}

	end := r.cursor + 1
	if end > len(cs) {
		end = len(cs)
	}
	return market.Tail(cs[:end], bars), nil
}

func (r *Replay) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs, ok := r.candles[symbol]
	if !ok || r.cursor >= len(cs) {
		return 0, ErrPriceUnavailable
	}

	price := cs[r.cursor].Close
	if price == 0 {
		return 0, ErrPriceUnavailable
	}
	return price, nil
}
