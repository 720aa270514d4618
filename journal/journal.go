// Package journal persists what the robot did: signals it acted on, trades
// it closed, and equity snapshots. Backends are SQLite and CSV; Nop discards
// everything for callers that do not care.
package journal

import "time"

// SignalRecord is an actionable strategy signal at the moment the engine saw
// it.
type SignalRecord struct {
	Symbol     string
	Strategy   string
	Direction  string
	Confidence float64
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64 // 0 when the signal had none
	Reason     string
	Time       time.Time
}

// TradeRecord is a closed trade.
type TradeRecord struct {
	TradeID     string
	Symbol      string
	Direction   string
	Strategy    string
	Size        float64
	EntryPrice  float64
	ExitPrice   float64
	EntryTime   time.Time
	ExitTime    time.Time
	RealizedPnl float64
	Reason      string
}

// EquitySnapshot is the account state after a close.
type EquitySnapshot struct {
	Time     time.Time
	Balance  float64
	DailyPnl float64
}

type Journal interface {
	RecordSignal(SignalRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
