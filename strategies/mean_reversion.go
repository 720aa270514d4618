package strategies

import (
	"fmt"

	"github.com/rustyeddy/fxrobot/indicators"
	"github.com/rustyeddy/fxrobot/market"
)

// MeanReversion fades extremes: it buys oversold prices under the lower
// Bollinger band and sells overbought prices over the upper band, targeting
// the middle band in both cases.
type MeanReversion struct {
	RSIPeriod  int
	BBPeriod   int
	BBStdDev   float64
	Oversold   float64
	Overbought float64
}

func NewMeanReversion() *MeanReversion {
	return &MeanReversion{
		RSIPeriod:  14,
		BBPeriod:   20,
		BBStdDev:   2,
		Oversold:   30,
		Overbought: 70,
	}
}

func (s *MeanReversion) Name() string { return "mean-reversion" }

func (s *MeanReversion) MinBars() int {
	if s.RSIPeriod > s.BBPeriod {
		return s.RSIPeriod
	}
	return s.BBPeriod
}

func (s *MeanReversion) GenerateSignal(candles []market.Candle) Signal {
	if len(candles) < s.MinBars() {
		return hold(s.Name(), "insufficient data")
	}

	closes := market.Closes(candles)
	rsi := indicators.RSI(closes, s.RSIPeriod)

	upper, middle, lower, err := indicators.BollingerBands(closes, s.BBPeriod, s.BBStdDev)
	if err != nil {
		return hold(s.Name(), "insufficient data")
	}

	price := closes[len(closes)-1]

	switch {
	case rsi < s.Oversold && price < lower:
		sig := hold(s.Name(), fmt.Sprintf("oversold: RSI=%.2f, price below lower band", rsi))
		sig.Direction = Buy
		sig.Confidence = 0.8
		sig.EntryPrice = price
		sig.StopLoss = price * 0.97
		sig.TakeProfit = ptr(middle)
		return sig

	case rsi > s.Overbought && price > upper:
		sig := hold(s.Name(), fmt.Sprintf("overbought: RSI=%.2f, price above upper band", rsi))
		sig.Direction = Sell
		sig.Confidence = 0.8
		sig.EntryPrice = price
		sig.StopLoss = price * 1.03
		sig.TakeProfit = ptr(middle)
		return sig
	}

	return hold(s.Name(), fmt.Sprintf("no reversion setup: RSI=%.2f", rsi))
}
