package strategies

import (
	"fmt"

	"github.com/rustyeddy/fxrobot/market"
)

// Breakout trades closes beyond the recent range. Resistance is the highest
// high and support the lowest low over the lookback window ending at the
// previous bar; the current bar is excluded so that its own high or low
// cannot mask the very breakout being tested. A 0.1% buffer filters touches.
type Breakout struct {
	Lookback int
	Buffer   float64
}

func NewBreakout() *Breakout {
	return &Breakout{
		Lookback: 20,
		Buffer:   0.001,
	}
}

func (s *Breakout) Name() string { return "breakout" }

func (s *Breakout) MinBars() int { return s.Lookback }

func (s *Breakout) GenerateSignal(candles []market.Candle) Signal {
	if len(candles) < s.MinBars() {
		return hold(s.Name(), "insufficient data")
	}

	window := market.Tail(candles[:len(candles)-1], s.Lookback)
	resistance, support, ok := market.HighLow(window)
	if !ok {
		return hold(s.Name(), "insufficient data")
	}

	price := candles[len(candles)-1].Close

	switch {
	case price > resistance*(1+s.Buffer):
		sig := hold(s.Name(), fmt.Sprintf("breakout above resistance at %.5f", resistance))
		sig.Direction = Buy
		sig.Confidence = 0.75
		sig.EntryPrice = price
		sig.StopLoss = resistance * (1 - s.Buffer)
		sig.TakeProfit = ptr(price + 2*(price-resistance))
		return sig

	case price < support*(1-s.Buffer):
		sig := hold(s.Name(), fmt.Sprintf("breakdown below support at %.5f", support))
		sig.Direction = Sell
		sig.Confidence = 0.75
		sig.EntryPrice = price
		sig.StopLoss = support * (1 + s.Buffer)
		sig.TakeProfit = ptr(price - 2*(support-price))
		return sig
	}

	return hold(s.Name(), fmt.Sprintf("inside range [%.5f, %.5f]", support, resistance))
}
