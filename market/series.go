package market

// Closes extracts the close prices from a candle slice, oldest first.
// Candle order is chronological; it is the only ordering callers may rely on.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// HighLow returns the highest high and the lowest low over the given candles.
// ok is false for an empty slice.
func HighLow(candles []Candle) (high, low float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	high = candles[0].High
	low = candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, true
}

// Last returns the most recent candle. ok is false for an empty slice.
func Last(candles []Candle) (Candle, bool) {
	if len(candles) == 0 {
		return Candle{}, false
	}
	return candles[len(candles)-1], true
}

// Tail returns up to the last n candles without copying.
func Tail(candles []Candle, n int) []Candle {
	if n <= 0 {
		return nil
	}
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
