package ledger

import (
	"time"

	"github.com/rustyeddy/fxrobot/strategies"
)

// Status is a trade's lifecycle state. A trade is OPEN from the moment the
// ledger creates it and transitions to CLOSED exactly once.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// CloseReason explains why a trade was closed.
type CloseReason string

const (
	ReasonStopLoss   CloseReason = "STOP_LOSS"
	ReasonTakeProfit CloseReason = "TAKE_PROFIT"
	ReasonManual     CloseReason = "MANUAL"
)

// Trade is a ledger record of a position. While OPEN it is owned exclusively
// by the ledger; the exit fields are set only by Close.
type Trade struct {
	ID         string
	Symbol     string
	Direction  strategies.Direction
	Strategy   string
	EntryPrice float64
	StopLoss   float64
	TakeProfit *float64
	Size       float64
	EntryTime  time.Time
	Status     Status

	ExitPrice   float64
	ExitTime    time.Time
	RealizedPnl float64
	CloseReason CloseReason
}

// Pnl computes the realized P/L of closing the trade at exitPrice. This is
// the single P/L formula in the robot.
func (t *Trade) Pnl(exitPrice float64) float64 {
	if t.Direction == strategies.Sell {
		return (t.EntryPrice - exitPrice) * t.Size
	}
	return (exitPrice - t.EntryPrice) * t.Size
}
