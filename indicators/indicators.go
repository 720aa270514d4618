// Package indicators provides technical analysis functions over price series.
//
// All functions are pure: they take a chronological slice of prices and
// window parameters and return derived values. They hold no state and are
// safe to call concurrently.
package indicators

import (
	"fmt"
	"math"
)

// SMA calculates the Simple Moving Average over the trailing period values.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("not enough prices: need %d, got %d", period, len(prices))
	}

	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMA calculates the Exponential Moving Average over the full series with
// smoothing 2/(period+1), seeded from the first value.
func EMA(prices []float64, period int) (float64, error) {
	s, err := EMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return s[len(s)-1], nil
}

// EMASeries returns the running EMA at every index. The output has the same
// length as the input; entry i depends only on prices[0..i].
func EMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("not enough prices: need 1, got 0")
	}

	multiplier := 2.0 / float64(period+1)

	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out, nil
}

// RSI calculates the Relative Strength Index over the trailing period deltas.
//
// Fewer than period+1 prices is not an error: there is no momentum to
// measure, so the neutral value 50 is returned. A window with zero average
// loss returns 100 rather than dividing by zero.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}

	// Average gains and losses over the trailing period deltas.
	var avgGain, avgLoss float64
	for i := len(prices) - period; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD calculates the Moving Average Convergence Divergence: the MACD line
// (fast EMA minus slow EMA), its signal-period EMA, and the histogram
// (line minus signal), all evaluated at the last index.
func MACD(prices []float64, fast, slow, signal int) (line, signalLine, histogram float64, err error) {
	fastEMA, err := EMASeries(prices, fast)
	if err != nil {
		return 0, 0, 0, err
	}
	slowEMA, err := EMASeries(prices, slow)
	if err != nil {
		return 0, 0, 0, err
	}

	macd := make([]float64, len(prices))
	for i := range macd {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signalSeries, err := EMASeries(macd, signal)
	if err != nil {
		return 0, 0, 0, err
	}

	line = macd[len(macd)-1]
	signalLine = signalSeries[len(signalSeries)-1]
	return line, signalLine, line - signalLine, nil
}

// BollingerBands calculates the upper, middle and lower bands: the middle is
// the period SMA, the outer bands sit mult standard deviations either side.
func BollingerBands(prices []float64, period int, mult float64) (upper, middle, lower float64, err error) {
	if period < 2 {
		return 0, 0, 0, fmt.Errorf("period must be at least 2, got %d", period)
	}
	middle, err = SMA(prices, period)
	if err != nil {
		return 0, 0, 0, err
	}

	// Sample standard deviation (n-1), matching the usual rolling-std
	// convention for Bollinger calculations.
	variance := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - middle
		variance += d * d
	}
	std := math.Sqrt(variance / float64(period-1))

	return middle + mult*std, middle, middle - mult*std, nil
}
