package ledger

import "github.com/rustyeddy/fxrobot/strategies"

func hitStopLoss(t *Trade, price float64) bool {
	if t.Direction == strategies.Buy {
		return price <= t.StopLoss
	}
	return price >= t.StopLoss
}

func hitTakeProfit(t *Trade, price float64) bool {
	if t.TakeProfit == nil {
		return false
	}
	if t.Direction == strategies.Buy {
		return price >= *t.TakeProfit
	}
	return price <= *t.TakeProfit
}
