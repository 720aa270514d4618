package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxrobot/feed"
	"github.com/rustyeddy/fxrobot/ledger"
	"github.com/rustyeddy/fxrobot/market"
	"github.com/rustyeddy/fxrobot/risk"
	"github.com/rustyeddy/fxrobot/strategies"
)

func candlesFromCloses(closes []float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Open: c, High: c, Low: c, Close: c}
	}
	return out
}

// goldenCrossCloses declines for 35 bars then rallies so that the SMA(10)
// crosses above the SMA(30) exactly at the last bar.
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

func newTestEngine(t *testing.T, symbols []string, strats []strategies.Strategy) (*Engine, *feed.Static, *risk.Manager) {
	t.Helper()

	f := feed.NewStatic()
	rm := risk.NewManager(risk.Policy{StartBalance: 10000})

	e, err := New(Config{
		Feed:       f,
		Symbols:    symbols,
		Strategies: strats,
		Risk:       rm,
	})
	require.NoError(t, err)
	return e, f, rm
}

func TestNewRequiresFeedAndRisk(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Risk: risk.NewManager(risk.Policy{})})
	assert.Error(t, err)

	_, err = New(Config{Feed: feed.NewStatic()})
	assert.Error(t, err)
}

func TestRunCycleOpensTradeOnGoldenCross(t *testing.T) {
	t.Parallel()

	e, f, _ := newTestEngine(t, []string{"EURUSD"},
		[]strategies.Strategy{strategies.NewTrendFollowing()})

	f.SetHistory("EURUSD", candlesFromCloses(goldenCrossCloses()))

	report := e.RunCycle(context.Background())
	assert.Equal(t, 1, report.SignalsGenerated)
	assert.Equal(t, 1, report.TradesOpened)
	assert.Zero(t, report.TradesClosed)

	open := e.OpenTrades()
	require.Len(t, open, 1)
	tr := open[0]

	entry := goldenCrossCloses()
	last := entry[len(entry)-1]
	assert.Equal(t, strategies.Buy, tr.Direction)
	assert.Equal(t, "trend-following", tr.Strategy)
	assert.InDelta(t, last, tr.EntryPrice, 1e-9)
	assert.InDelta(t, last*0.98, tr.StopLoss, 1e-9)
	require.NotNil(t, tr.TakeProfit)
	assert.InDelta(t, last*1.04, *tr.TakeProfit, 1e-9)
}

func TestRunCycleSkipsEmptySymbols(t *testing.T) {
	t.Parallel()

	e, f, _ := newTestEngine(t, []string{"EURUSD", "GBPUSD"},
		[]strategies.Strategy{strategies.NewTrendFollowing()})

	// Only GBPUSD has data; EURUSD is skipped without aborting the cycle.
	f.SetHistory("GBPUSD", candlesFromCloses(goldenCrossCloses()))

	report := e.RunCycle(context.Background())
	assert.Equal(t, 1, report.TradesOpened)
	require.Len(t, e.OpenTrades(), 1)
	assert.Equal(t, "GBPUSD", e.OpenTrades()[0].Symbol)
}

type panicStrategy struct{}

func (panicStrategy) Name() string  { return "panicky" }
func (panicStrategy) MinBars() int  { return 1 }
func (panicStrategy) GenerateSignal([]market.Candle) strategies.Signal {
	panic("boom")
}

func TestRunCycleIsolatesStrategyFailure(t *testing.T) {
	t.Parallel()

	e, f, _ := newTestEngine(t, []string{"EURUSD"},
		[]strategies.Strategy{panicStrategy{}, strategies.NewTrendFollowing()})

	f.SetHistory("EURUSD", candlesFromCloses(goldenCrossCloses()))

	// The panicking strategy must not take the trend-following one down.
	report := e.RunCycle(context.Background())
	assert.Equal(t, 1, report.TradesOpened)
}

func TestRunCycleMonitorsBeforeOpening(t *testing.T) {
	t.Parallel()

	e, f, rm := newTestEngine(t, nil,
		[]strategies.Strategy{strategies.NewTrendFollowing()})

	// Open a trade manually, then let the cycle's monitor phase stop it
	// out.
	take := 1.1100
	tr, err := e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Buy,
		Confidence: 0.9,
		EntryPrice: 1.1000,
		StopLoss:   1.0950,
		TakeProfit: &take,
	})
	require.NoError(t, err)

	f.SetPrice("EURUSD", 1.0940)
	report := e.RunCycle(context.Background())

	assert.Equal(t, 1, report.TradesClosed)
	assert.Empty(t, e.OpenTrades())

	history := e.History(ledger.HistoryFilter{})
	require.Len(t, history, 1)
	assert.Equal(t, tr.ID, history[0].ID)
	assert.Equal(t, ledger.ReasonStopLoss, history[0].CloseReason)
	assert.Less(t, rm.Balance(), 10000.0)
}

func TestRunCycleRespectsRiskRejection(t *testing.T) {
	t.Parallel()

	e, f, rm := newTestEngine(t, []string{"EURUSD"},
		[]strategies.Strategy{strategies.NewTrendFollowing()})

	f.SetHistory("EURUSD", candlesFromCloses(goldenCrossCloses()))

	// Trip the daily-loss breaker: signals are still generated and
	// counted, but nothing opens.
	rm.ApplyRealizedPnl(-600)

	report := e.RunCycle(context.Background())
	assert.Equal(t, 1, report.SignalsGenerated)
	assert.Zero(t, report.TradesOpened)
	assert.Empty(t, e.OpenTrades())
}

func TestMultipleStrategiesMayOpenOnSameSymbol(t *testing.T) {
	t.Parallel()

	// A series that is simultaneously a golden cross and (by construction)
	// a breakout: flat highs below the closing rally.
	closes := goldenCrossCloses()
	candles := candlesFromCloses(closes)
	for i := range candles[:len(candles)-1] {
		candles[i].High = 1.27
		candles[i].Low = 1.26
	}

	e, f, _ := newTestEngine(t, []string{"EURUSD"}, []strategies.Strategy{
		strategies.NewTrendFollowing(),
		strategies.NewBreakout(),
	})
	f.SetHistory("EURUSD", candles)

	report := e.RunCycle(context.Background())

	// No de-duplication across strategies: each actionable signal opens
	// its own trade.
	assert.Equal(t, 2, report.SignalsGenerated)
	assert.Equal(t, 2, report.TradesOpened)
	assert.Len(t, e.OpenTrades(), 2)
}

func TestManualOpenValidation(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t, nil, []strategies.Strategy{strategies.NewBreakout()})

	_, err := e.ManualOpen(strategies.Signal{
		Direction:  strategies.Buy,
		Confidence: 0.9,
		EntryPrice: 1.10,
		StopLoss:   1.09,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest) // no symbol

	_, err = e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Hold,
		Confidence: 0.9,
		EntryPrice: 1.10,
		StopLoss:   1.09,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	// Stop on the wrong side of the entry.
	_, err = e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Buy,
		Confidence: 0.9,
		EntryPrice: 1.10,
		StopLoss:   1.11,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	// Low confidence passes request validation but fails risk.
	_, err = e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Buy,
		Confidence: 0.2,
		EntryPrice: 1.10,
		StopLoss:   1.09,
	})
	assert.ErrorIs(t, err, ErrRejected)

	tr, err := e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Sell,
		Confidence: 0.9,
		EntryPrice: 1.2000,
		StopLoss:   1.2100,
	})
	require.NoError(t, err)
	assert.Equal(t, "manual", tr.Strategy)
}

func TestManualClose(t *testing.T) {
	t.Parallel()

	e, f, _ := newTestEngine(t, nil, []strategies.Strategy{strategies.NewBreakout()})
	ctx := context.Background()

	tr, err := e.ManualOpen(strategies.Signal{
		Symbol:     "EURUSD",
		Direction:  strategies.Buy,
		Confidence: 0.9,
		EntryPrice: 1.1000,
		StopLoss:   1.0900,
	})
	require.NoError(t, err)

	// Price unavailable: the close is refused, the trade stays open.
	_, err = e.ManualClose(ctx, tr.ID)
	assert.ErrorIs(t, err, feed.ErrPriceUnavailable)
	assert.Len(t, e.OpenTrades(), 1)

	f.SetPrice("EURUSD", 1.1050)
	closed, err := e.ManualClose(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.ReasonManual, closed.CloseReason)
	assert.InDelta(t, closed.Size*0.005, closed.RealizedPnl, 1e-6)

	_, err = e.ManualClose(ctx, tr.ID)
	assert.ErrorIs(t, err, ledger.ErrTradeAlreadyClosed)

	_, err = e.ManualClose(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrTradeNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()

	e, f, rm := newTestEngine(t, nil, []strategies.Strategy{strategies.NewBreakout()})
	ctx := context.Background()

	s := e.Stats()
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRatePct)
	assert.InDelta(t, 10000.0, s.AccountBalance, 1e-9)

	open := func(entry, stop float64) string {
		t.Helper()
		tr, err := e.ManualOpen(strategies.Signal{
			Symbol:     "EURUSD",
			Direction:  strategies.Buy,
			Confidence: 0.9,
			EntryPrice: entry,
			StopLoss:   stop,
		})
		require.NoError(t, err)
		return tr.ID
	}

	winner := open(1.1000, 1.0900)
	loser := open(1.1000, 1.0900)
	still := open(1.1000, 1.0900)

	f.SetPrice("EURUSD", 1.1100)
	_, err := e.ManualClose(ctx, winner)
	require.NoError(t, err)

	f.SetPrice("EURUSD", 1.0950)
	_, err = e.ManualClose(ctx, loser)
	require.NoError(t, err)

	s = e.Stats()
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 50.0, s.WinRatePct, 1e-9)
	assert.Equal(t, 1, s.ActiveTradeCount)
	assert.InDelta(t, rm.Balance(), s.AccountBalance, 1e-9)

	_ = still
}

func TestPositionSizingScenario(t *testing.T) {
	t.Parallel()

	// Balance 10000, entry 1.2000, stop 1.1900: raw size 20000 capped to
	// 1000 (10% of balance).
	rm := risk.NewManager(risk.Policy{StartBalance: 10000})
	assert.InDelta(t, 1000.0, rm.PositionSize(1.2000, 1.1900), 1e-9)
}
