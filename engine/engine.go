// Package engine drives one trading cycle: monitor open trades for exits,
// then run every strategy over every symbol and open trades for the signals
// that clear risk. The engine owns no scheduling; callers invoke RunCycle as
// often as they like, serially.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/fxrobot/feed"
	"github.com/rustyeddy/fxrobot/journal"
	"github.com/rustyeddy/fxrobot/ledger"
	"github.com/rustyeddy/fxrobot/market"
	"github.com/rustyeddy/fxrobot/risk"
	"github.com/rustyeddy/fxrobot/strategies"
)

// ErrRejected means risk validation turned a trade down. The message carries
// the violation code.
var ErrRejected = errors.New("trade rejected")

// ErrInvalidRequest means a manual trade request was malformed and never
// reached the ledger.
var ErrInvalidRequest = errors.New("invalid trade request")

// DefaultLookback is how many candles of history each strategy is offered
// per cycle. It comfortably covers every built-in strategy's minimum.
const DefaultLookback = 100

// CycleReport summarizes one RunCycle invocation. The engine returns it
// rather than logging or serving it; reporting belongs to the caller.
type CycleReport struct {
	SignalsGenerated int
	TradesOpened     int
	TradesClosed     int
}

// Config assembles an Engine. Feed and Risk are required; zero values for
// the rest fall back to sensible defaults.
type Config struct {
	Feed       feed.PriceFeed
	Symbols    []string
	Strategies []strategies.Strategy
	Risk       *risk.Manager
	Journal    journal.Journal
	Lookback   int
}

type Engine struct {
	feed     feed.PriceFeed
	symbols  []string
	strats   []strategies.Strategy
	risk     *risk.Manager
	ledger   *ledger.Ledger
	journal  journal.Journal
	lookback int
}

func New(cfg Config) (*Engine, error) {
	if cfg.Feed == nil {
		return nil, errors.New("engine: price feed is required")
	}
	if cfg.Risk == nil {
		return nil, errors.New("engine: risk manager is required")
	}
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = strategies.Defaults()
	}
	if cfg.Journal == nil {
		cfg.Journal = journal.Nop{}
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultLookback
	}

	return &Engine{
		feed:     cfg.Feed,
		symbols:  cfg.Symbols,
		strats:   cfg.Strategies,
		risk:     cfg.Risk,
		ledger:   ledger.New(cfg.Risk, cfg.Journal),
		journal:  cfg.Journal,
		lookback: cfg.Lookback,
	}, nil
}

// RunCycle executes one monitor-then-analyze step.
//
// A symbol with no history is skipped for this cycle only. A misbehaving
// strategy (panic) is isolated to its (symbol, strategy) pair; the rest of
// the cycle proceeds.
func (e *Engine) RunCycle(ctx context.Context) CycleReport {
	var report CycleReport

	report.TradesClosed = len(e.ledger.MonitorAndClose(ctx, e.feed))

	for _, symbol := range e.symbols {
		candles, err := e.feed.HistoricalCandles(ctx, symbol, e.lookback)
		if err != nil || len(candles) == 0 {
			log.Debug().Str("symbol", symbol).Msg("no history, skipping symbol this cycle")
			continue
		}

		for _, strat := range e.strats {
			sig := generate(strat, candles)
			sig.Symbol = symbol
			if sig.GeneratedAt.IsZero() {
				sig.GeneratedAt = time.Now().UTC()
			}

			if !sig.Direction.Actionable() {
				continue
			}
			report.SignalsGenerated++

			log.Info().
				Str("symbol", symbol).
				Str("strategy", sig.Strategy).
				Str("direction", string(sig.Direction)).
				Float64("confidence", sig.Confidence).
				Str("reason", sig.Reason).
				Msg("signal generated")

			e.recordSignal(sig)

			if _, err := e.tryOpen(sig); err == nil {
				report.TradesOpened++
			}
		}
	}

	return report
}

// generate shields a cycle from a panicking strategy: the pair resolves to
// HOLD and everything else carries on.
func generate(s strategies.Strategy, candles []market.Candle) (sig strategies.Signal) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("strategy", s.Name()).Msg("strategy panicked")
			sig = strategies.Signal{
				Strategy:    s.Name(),
				Direction:   strategies.Hold,
				Reason:      "strategy failure",
				GeneratedAt: time.Now().UTC(),
			}
		}
	}()
	return s.GenerateSignal(candles)
}

// tryOpen runs a signal through validation and sizing and opens the trade if
// both pass.
func (e *Engine) tryOpen(sig strategies.Signal) (ledger.Trade, error) {
	if d := e.risk.ValidateTrade(sig); !d.Allowed {
		log.Debug().
			Str("symbol", sig.Symbol).
			Str("strategy", sig.Strategy).
			Str("code", d.Code).
			Msg("signal rejected")
		return ledger.Trade{}, fmt.Errorf("%w: %s", ErrRejected, d.Code)
	}

	size := e.risk.PositionSize(sig.EntryPrice, sig.StopLoss)
	if size <= 0 {
		return ledger.Trade{}, fmt.Errorf("%w: non-executable position size", ErrRejected)
	}

	return e.ledger.Open(sig, size)
}

func (e *Engine) recordSignal(sig strategies.Signal) {
	rec := journal.SignalRecord{
		Symbol:     sig.Symbol,
		Strategy:   sig.Strategy,
		Direction:  string(sig.Direction),
		Confidence: sig.Confidence,
		EntryPrice: sig.EntryPrice,
		StopLoss:   sig.StopLoss,
		Reason:     sig.Reason,
		Time:       sig.GeneratedAt,
	}
	if sig.TakeProfit != nil {
		rec.TakeProfit = *sig.TakeProfit
	}
	if err := e.journal.RecordSignal(rec); err != nil {
		log.Error().Err(err).Msg("journal signal failed")
	}
}

// ManualOpen validates and opens a trade from a caller-supplied signal,
// bypassing the strategies but not the risk checks.
func (e *Engine) ManualOpen(sig strategies.Signal) (ledger.Trade, error) {
	if !sig.Direction.Actionable() {
		return ledger.Trade{}, fmt.Errorf("%w: direction must be BUY or SELL", ErrInvalidRequest)
	}
	if sig.Symbol == "" {
		return ledger.Trade{}, fmt.Errorf("%w: symbol is required", ErrInvalidRequest)
	}
	if sig.EntryPrice <= 0 || sig.StopLoss <= 0 {
		return ledger.Trade{}, fmt.Errorf("%w: entry price and stop loss are required", ErrInvalidRequest)
	}
	if sig.Direction == strategies.Buy && sig.StopLoss >= sig.EntryPrice {
		return ledger.Trade{}, fmt.Errorf("%w: BUY stop loss must be below entry", ErrInvalidRequest)
	}
	if sig.Direction == strategies.Sell && sig.StopLoss <= sig.EntryPrice {
		return ledger.Trade{}, fmt.Errorf("%w: SELL stop loss must be above entry", ErrInvalidRequest)
	}

	if sig.GeneratedAt.IsZero() {
		sig.GeneratedAt = time.Now().UTC()
	}
	if sig.Strategy == "" {
		sig.Strategy = "manual"
	}

	e.recordSignal(sig)
	return e.tryOpen(sig)
}

// ManualClose closes an open trade at the current market price.
func (e *Engine) ManualClose(ctx context.Context, tradeID string) (ledger.Trade, error) {
	open := e.ledger.OpenTrades()
	var symbol string
	for _, t := range open {
		if t.ID == tradeID {
			symbol = t.Symbol
			break
		}
	}
	if symbol == "" {
		// Preserve the precise not-found/already-closed distinction.
		_, err := e.ledger.Close(tradeID, 0, ledger.ReasonManual)
		return ledger.Trade{}, err
	}

	price, err := e.feed.CurrentPrice(ctx, symbol)
	if err != nil {
		return ledger.Trade{}, fmt.Errorf("close %s: %w", tradeID, err)
	}

	return e.ledger.Close(tradeID, price, ledger.ReasonManual)
}

// OpenTrades returns a snapshot of the open positions.
func (e *Engine) OpenTrades() []ledger.Trade {
	return e.ledger.OpenTrades()
}

// History returns closed trades, optionally filtered.
func (e *Engine) History(f ledger.HistoryFilter) []ledger.Trade {
	return e.ledger.History(f)
}

// ResetDailyPnl re-arms the daily-loss breaker. Calendar policy is the
// caller's.
func (e *Engine) ResetDailyPnl() {
	e.risk.ResetDailyPnl()
}

// DailyPnl reports the realized P/L accumulated since the last reset.
func (e *Engine) DailyPnl() float64 {
	return e.risk.DailyPnl()
}
