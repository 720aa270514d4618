package engine

import "github.com/rustyeddy/fxrobot/ledger"

// PerformanceStats aggregates the session's closed trades and account state.
type PerformanceStats struct {
	TotalTrades      int
	WinningTrades    int
	LosingTrades     int
	WinRatePct       float64
	TotalPnl         float64
	AccountBalance   float64
	ActiveTradeCount int
}

// Stats computes performance statistics over the ledger history. A trade
// counts as winning only with a strictly positive realized P/L.
func (e *Engine) Stats() PerformanceStats {
	history := e.ledger.History(ledger.HistoryFilter{})

	s := PerformanceStats{
		TotalTrades:      len(history),
		AccountBalance:   e.risk.Balance(),
		ActiveTradeCount: e.ledger.OpenCount(),
	}

	for _, t := range history {
		if t.RealizedPnl > 0 {
			s.WinningTrades++
		} else {
			s.LosingTrades++
		}
		s.TotalPnl += t.RealizedPnl
	}

	if s.TotalTrades > 0 {
		s.WinRatePct = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	}

	return s
}
