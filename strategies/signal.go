package strategies

import "time"

// Direction is a strategy's recommendation for a symbol.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
	Hold Direction = "HOLD"
)

// Actionable reports whether the direction asks for a position to be opened.
func (d Direction) Actionable() bool {
	return d == Buy || d == Sell
}

// Signal is a single strategy's recommendation for a symbol at a point in
// time.
//
// A HOLD signal has zero confidence and no price levels. A BUY or SELL signal
// always carries EntryPrice and a StopLoss on the losing side of the entry
// (below it for BUY, above it for SELL). TakeProfit is optional.
type Signal struct {
	Symbol      string
	Strategy    string
	Direction   Direction
	Confidence  float64
	EntryPrice  float64
	StopLoss    float64
	TakeProfit  *float64
	Reason      string
	GeneratedAt time.Time
}

// hold builds the uniform no-action signal every strategy returns when it has
// nothing to say; reason explains why for the journal and logs.
func hold(name, reason string) Signal {
	return Signal{
		Strategy:    name,
		Direction:   Hold,
		Reason:      reason,
		GeneratedAt: time.Now().UTC(),
	}
}

func ptr(v float64) *float64 { return &v }
