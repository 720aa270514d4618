// Package feed defines the price-data capability the engine consumes and a
// few file- and memory-backed implementations. Anything network-shaped lives
// behind the PriceFeed interface; the engine never learns where prices come
// from.
package feed

import (
	"context"
	"errors"

	"github.com/rustyeddy/fxrobot/market"
)

// ErrPriceUnavailable means the feed has no usable price for a symbol right
// now. Callers skip the symbol or trade for this step and try again next
// cycle; it is never fatal.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceFeed supplies candle history and current prices per symbol.
//
// HistoricalCandles returns up to bars chronological candles ending at the
// present; an empty slice is a valid answer. CurrentPrice returns
// ErrPriceUnavailable when there is nothing trustworthy to report; a zero
// price must never be handed out as a market price.
type PriceFeed interface {
	HistoricalCandles(ctx context.Context, symbol string, bars int) ([]market.Candle, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}
