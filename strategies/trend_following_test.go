package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxrobot/market"
)

func candlesFromCloses(closes []float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Open: c, High: c, Low: c, Close: c}
	}
	return out
}

// goldenCrossCloses declines for 35 bars then rallies hard enough that the
// SMA(10) crosses above the SMA(30) exactly at the last bar.
func goldenCrossCloses() []float64 {
	var closes []float64
	for i := 0; i < 35; i++ {
		closes = append(closes, 1.30-0.001*float64(i))
	}
	last := closes[len(closes)-1]
	for i := 1; i <= 8; i++ {
		closes = append(closes, last+0.004*float64(i))
	}
	return closes
}

func TestTrendFollowingInsufficientData(t *testing.T) {
	t.Parallel()

	s := NewTrendFollowing()
	sig := s.GenerateSignal(candlesFromCloses(make([]float64, 29)))

	assert.Equal(t, Hold, sig.Direction)
	assert.Zero(t, sig.Confidence)
	assert.Equal(t, "insufficient data", sig.Reason)
}

func TestTrendFollowingGoldenCross(t *testing.T) {
	t.Parallel()

	closes := goldenCrossCloses()
	sig := NewTrendFollowing().GenerateSignal(candlesFromCloses(closes))

	entry := closes[len(closes)-1]

	require.Equal(t, Buy, sig.Direction)
	assert.Equal(t, 0.7, sig.Confidence)
	assert.InDelta(t, entry, sig.EntryPrice, 1e-9)
	assert.InDelta(t, entry*0.98, sig.StopLoss, 1e-9)
	require.NotNil(t, sig.TakeProfit)
	assert.InDelta(t, entry*1.04, *sig.TakeProfit, 1e-9)
	assert.Less(t, sig.StopLoss, sig.EntryPrice)
}

func TestTrendFollowingDeathCross(t *testing.T) {
	t.Parallel()

	var closes []float64
	for i := 0; i < 35; i++ {
		closes = append(closes, 1.20+0.001*float64(i))
	}
	last := closes[len(closes)-1]
	for i := 1; i <= 8; i++ {
		closes = append(closes, last-0.004*float64(i))
	}

	sig := NewTrendFollowing().GenerateSignal(candlesFromCloses(closes))

	entry := closes[len(closes)-1]

	require.Equal(t, Sell, sig.Direction)
	assert.Equal(t, 0.7, sig.Confidence)
	assert.InDelta(t, entry*1.02, sig.StopLoss, 1e-9)
	require.NotNil(t, sig.TakeProfit)
	assert.InDelta(t, entry*0.96, *sig.TakeProfit, 1e-9)
	assert.Greater(t, sig.StopLoss, sig.EntryPrice)
}

func TestTrendFollowingNoCross(t *testing.T) {
	t.Parallel()

	// Steadily rising series: short SMA is already above the long SMA on
	// both bars, so there is no cross to trade.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 1.10 + 0.001*float64(i)
	}

	sig := NewTrendFollowing().GenerateSignal(candlesFromCloses(closes))
	assert.Equal(t, Hold, sig.Direction)
	assert.Zero(t, sig.Confidence)
}

func TestTrendFollowingExactMinBarsHolds(t *testing.T) {
	t.Parallel()

	// With exactly 30 bars there is no previous long SMA, so no cross can
	// be detected yet.
	closes := goldenCrossCloses()[:30]
	sig := NewTrendFollowing().GenerateSignal(candlesFromCloses(closes))
	assert.Equal(t, Hold, sig.Direction)
}
