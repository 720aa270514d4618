package strategies

import (
	"fmt"

	"github.com/rustyeddy/fxrobot/indicators"
	"github.com/rustyeddy/fxrobot/market"
)

// TrendFollowing trades golden/death crosses of a short SMA over a long SMA.
//
// A cross is detected from the previous bar to the current one, so the
// strategy needs one bar beyond the long window before it can fire.
type TrendFollowing struct {
	ShortPeriod int
	LongPeriod  int
}

func NewTrendFollowing() *TrendFollowing {
	return &TrendFollowing{
		ShortPeriod: 10,
		LongPeriod:  30,
	}
}

func (s *TrendFollowing) Name() string { return "trend-following" }

func (s *TrendFollowing) MinBars() int { return s.LongPeriod }

func (s *TrendFollowing) GenerateSignal(candles []market.Candle) Signal {
	if len(candles) < s.MinBars() {
		return hold(s.Name(), "insufficient data")
	}

	closes := market.Closes(candles)

	curShort, err := indicators.SMA(closes, s.ShortPeriod)
	if err != nil {
		return hold(s.Name(), "insufficient data")
	}
	curLong, err := indicators.SMA(closes, s.LongPeriod)
	if err != nil {
		return hold(s.Name(), "insufficient data")
	}

	// Previous-bar SMAs. With exactly LongPeriod bars there is no previous
	// long window yet, so no cross can be detected.
	prev := closes[:len(closes)-1]
	prevShort, err := indicators.SMA(prev, s.ShortPeriod)
	if err != nil {
		return hold(s.Name(), "no prior bar for cross detection")
	}
	prevLong, err := indicators.SMA(prev, s.LongPeriod)
	if err != nil {
		return hold(s.Name(), "no prior bar for cross detection")
	}

	entry := closes[len(closes)-1]

	switch {
	case prevShort <= prevLong && curShort > curLong:
		sig := hold(s.Name(), "golden cross detected")
		sig.Direction = Buy
		sig.Confidence = 0.7
		sig.EntryPrice = entry
		sig.StopLoss = entry * 0.98
		sig.TakeProfit = ptr(entry * 1.04)
		return sig

	case prevShort >= prevLong && curShort < curLong:
		sig := hold(s.Name(), "death cross detected")
		sig.Direction = Sell
		sig.Confidence = 0.7
		sig.EntryPrice = entry
		sig.StopLoss = entry * 1.02
		sig.TakeProfit = ptr(entry * 0.96)
		return sig
	}

	return hold(s.Name(), fmt.Sprintf("no clear trend: SMA(%d)=%.5f SMA(%d)=%.5f",
		s.ShortPeriod, curShort, s.LongPeriod, curLong))
}
