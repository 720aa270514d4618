package feed

import (
	"context"
	"sync"

	"github.com/rustyeddy/fxrobot/market"
)

// Static is an in-memory PriceFeed. Histories and current prices are set
// explicitly; it backs tests and manual harness runs.
type Static struct {
	mu      sync.RWMutex
	history map[string][]market.Candle
	prices  map[string]float64
}

func NewStatic() *Static {
	return &Static{
		history: make(map[string][]market.Candle),
		prices:  make(map[string]float64),
	}
}

// SetHistory replaces the candle history for a symbol.
func (s *Static) SetHistory(symbol string, candles []market.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[symbol] = candles
}

// SetPrice sets the current price for a symbol.
func (s *Static) SetPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// ClearPrice removes the current price, making the symbol unavailable.
func (s *Static) ClearPrice(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prices, symbol)
}

func (s *Static) HistoricalCandles(ctx context.Context, symbol string, bars int) ([]market.Candle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return market.Tail(s.history[symbol], bars), nil
}

func (s *Static) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prices[symbol]
	if !ok || p == 0 {
		return 0, ErrPriceUnavailable
	}
	return p, nil
}
