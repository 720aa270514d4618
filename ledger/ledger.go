// Package ledger owns open trades and the history of closed ones. Every
// state transition (open, auto-close on stop/take, manual close) happens
// here, and closing a trade is the only path that touches the account's
// realized P/L.
package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/fxrobot/feed"
	"github.com/rustyeddy/fxrobot/journal"
	"github.com/rustyeddy/fxrobot/pkg/id"
	"github.com/rustyeddy/fxrobot/risk"
	"github.com/rustyeddy/fxrobot/strategies"
)

var (
	ErrTradeNotFound      = errors.New("trade not found")
	ErrTradeAlreadyClosed = errors.New("trade already closed")
	ErrInvalidSize        = errors.New("position size must be positive")
)

// Ledger tracks open trades and appends closed ones to an immutable history.
// It is safe for concurrent use; every mutation runs under one lock.
type Ledger struct {
	mu      sync.Mutex
	riskMgr *risk.Manager
	journal journal.Journal
	open    map[string]*Trade
	history []Trade // append order = close order
}

func New(riskMgr *risk.Manager, j journal.Journal) *Ledger {
	if j == nil {
		j = journal.Nop{}
	}
	return &Ledger{
		riskMgr: riskMgr,
		journal: j,
		open:    make(map[string]*Trade),
	}
}

// Open creates an OPEN trade from a validated, sized signal. The caller must
// have run risk validation and sizing already; a non-positive size is a
// caller bug and is rejected.
func (l *Ledger) Open(sig strategies.Signal, size float64) (Trade, error) {
	if size <= 0 {
		return Trade{}, ErrInvalidSize
	}
	if !sig.Direction.Actionable() {
		return Trade{}, errors.New("cannot open trade from a HOLD signal")
	}

	t := &Trade{
		ID:         id.New(),
		Symbol:     sig.Symbol,
		Direction:  sig.Direction,
		Strategy:   sig.Strategy,
		EntryPrice: sig.EntryPrice,
		StopLoss:   sig.StopLoss,
		TakeProfit: sig.TakeProfit,
		Size:       size,
		EntryTime:  time.Now().UTC(),
		Status:     StatusOpen,
	}

	l.mu.Lock()
	l.open[t.ID] = t
	l.mu.Unlock()

	log.Info().
		Str("trade_id", t.ID).
		Str("symbol", t.Symbol).
		Str("direction", string(t.Direction)).
		Str("strategy", t.Strategy).
		Float64("entry", t.EntryPrice).
		Float64("stop", t.StopLoss).
		Float64("size", t.Size).
		Msg("trade opened")

	return *t, nil
}

// MonitorAndClose checks every open trade against the current price and
// closes the ones whose stop-loss or take-profit has been hit. The stop is
// evaluated first. A symbol without a usable price is skipped for this step.
//
// It returns the trades closed by this invocation, in close order.
func (l *Ledger) MonitorAndClose(ctx context.Context, prices feed.PriceFeed) []Trade {
	type closure struct {
		id     string
		price  float64
		reason CloseReason
	}

	// First pass: decide, under the lock, which trades to close.
	l.mu.Lock()
	var toClose []closure
	for _, t := range l.open {
		price, err := prices.CurrentPrice(ctx, t.Symbol)
		if err != nil || price == 0 {
			continue
		}

		switch {
		case hitStopLoss(t, price):
			toClose = append(toClose, closure{t.ID, price, ReasonStopLoss})
		case hitTakeProfit(t, price):
			toClose = append(toClose, closure{t.ID, price, ReasonTakeProfit})
		}
	}
	l.mu.Unlock()

	// Deterministic close order regardless of map iteration.
	sort.Slice(toClose, func(i, j int) bool { return toClose[i].id < toClose[j].id })

	// Second pass: apply.
	closed := make([]Trade, 0, len(toClose))
	for _, c := range toClose {
		t, err := l.Close(c.id, c.price, c.reason)
		if err != nil {
			// Raced with a manual close; nothing to do.
			continue
		}
		closed = append(closed, t)
	}
	return closed
}

// Close transitions a trade to CLOSED at exitPrice, computes its realized
// P/L, applies it to the account exactly once, and journals the result. A
// trade id can be closed at most once; ids of closed trades stay in the
// history forever.
func (l *Ledger) Close(tradeID string, exitPrice float64, reason CloseReason) (Trade, error) {
	l.mu.Lock()

	t, ok := l.open[tradeID]
	if !ok {
		closedAlready := false
		for i := range l.history {
			if l.history[i].ID == tradeID {
				closedAlready = true
				break
			}
		}
		l.mu.Unlock()
		if closedAlready {
			return Trade{}, ErrTradeAlreadyClosed
		}
		return Trade{}, ErrTradeNotFound
	}

	pnl := t.Pnl(exitPrice)

	t.ExitPrice = exitPrice
	t.ExitTime = time.Now().UTC()
	t.RealizedPnl = pnl
	t.Status = StatusClosed
	t.CloseReason = reason

	delete(l.open, tradeID)
	l.history = append(l.history, *t)
	closed := *t

	l.mu.Unlock()

	// The one and only application of this trade's P/L.
	l.riskMgr.ApplyRealizedPnl(pnl)

	log.Info().
		Str("trade_id", closed.ID).
		Str("symbol", closed.Symbol).
		Str("reason", string(reason)).
		Float64("exit", exitPrice).
		Float64("pnl", pnl).
		Msg("trade closed")

	if err := l.journal.RecordTrade(journal.TradeRecord{
		TradeID:     closed.ID,
		Symbol:      closed.Symbol,
		Direction:   string(closed.Direction),
		Strategy:    closed.Strategy,
		Size:        closed.Size,
		EntryPrice:  closed.EntryPrice,
		ExitPrice:   closed.ExitPrice,
		EntryTime:   closed.EntryTime,
		ExitTime:    closed.ExitTime,
		RealizedPnl: closed.RealizedPnl,
		Reason:      string(closed.CloseReason),
	}); err != nil {
		log.Error().Err(err).Str("trade_id", closed.ID).Msg("journal trade failed")
	}
	if err := l.journal.RecordEquity(journal.EquitySnapshot{
		Time:     closed.ExitTime,
		Balance:  l.riskMgr.Balance(),
		DailyPnl: l.riskMgr.DailyPnl(),
	}); err != nil {
		log.Error().Err(err).Msg("journal equity failed")
	}

	return closed, nil
}

// OpenTrades returns a snapshot of the open trades, ordered by id (and
// therefore by open time, since ids are time-sortable).
func (l *Ledger) OpenTrades() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Trade, 0, len(l.open))
	for _, t := range l.open {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OpenCount returns the number of open trades.
func (l *Ledger) OpenCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.open)
}

// HistoryFilter narrows History results. The zero value selects everything.
type HistoryFilter struct {
	Symbol string
	Limit  int
}

// History returns closed trades in close order. With a Limit it returns the
// most recent closes.
func (l *Ledger) History(f HistoryFilter) []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Trade, 0, len(l.history))
	for _, t := range l.history {
		if f.Symbol != "" && t.Symbol != f.Symbol {
			continue
		}
		out = append(out, t)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[len(out)-f.Limit:]
	}
	return out
}
