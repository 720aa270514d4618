// Package risk gates trade execution and sizes positions. A single Manager
// owns the account balance and the day's realized P/L; everything else in the
// robot treats those numbers as read-only.
package risk

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/fxrobot/strategies"
)

// Policy holds the fixed risk limits. Zero values are filled in by
// DefaultPolicy; the limits are session constants, not per-trade knobs.
type Policy struct {
	StartBalance    float64 `json:"start_balance" yaml:"start_balance"`
	MaxRiskPerTrade float64 `json:"max_risk_per_trade" yaml:"max_risk_per_trade"`
	MaxDailyLossPct float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"`
	MaxPositionPct  float64 `json:"max_position_pct" yaml:"max_position_pct"`
	MinConfidence   float64 `json:"min_confidence" yaml:"min_confidence"`
}

func DefaultPolicy() Policy {
	return Policy{
		StartBalance:    10000,
		MaxRiskPerTrade: 0.02,
		MaxDailyLossPct: 0.05,
		MaxPositionPct:  0.10,
		MinConfidence:   0.6,
	}
}

// Manager tracks account state and applies the Policy.
//
// All mutating calls are serialized internally; the engine treats the Manager
// as a single-writer resource.
type Manager struct {
	mu       sync.Mutex
	policy   Policy
	balance  float64
	dailyPnl float64
}

func NewManager(p Policy) *Manager {
	def := DefaultPolicy()
	if p.StartBalance <= 0 {
		p.StartBalance = def.StartBalance
	}
	if p.MaxRiskPerTrade <= 0 {
		p.MaxRiskPerTrade = def.MaxRiskPerTrade
	}
	if p.MaxDailyLossPct <= 0 {
		p.MaxDailyLossPct = def.MaxDailyLossPct
	}
	if p.MaxPositionPct <= 0 {
		p.MaxPositionPct = def.MaxPositionPct
	}
	if p.MinConfidence <= 0 {
		p.MinConfidence = def.MinConfidence
	}

	return &Manager{
		policy:  p,
		balance: p.StartBalance,
	}
}

// Balance returns the current account balance.
func (m *Manager) Balance() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// DailyPnl returns the realized P/L accumulated since the last reset.
func (m *Manager) DailyPnl() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dailyPnl
}

// ApplyRealizedPnl folds a closed trade's P/L into the account. The ledger is
// the only caller and guarantees exactly one application per closed trade.
func (m *Manager) ApplyRealizedPnl(pnl float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance += pnl
	m.dailyPnl += pnl
}

// ResetDailyPnl zeroes the daily P/L, re-arming the daily-loss breaker.
// When to call it (day boundary, session start) is the caller's policy.
func (m *Manager) ResetDailyPnl() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailyPnl = 0
}

// PositionSize computes the size for a trade with the given entry and stop.
//
// The size risks MaxRiskPerTrade of the balance against the stop distance and
// is capped at MaxPositionPct of the balance. An entry equal to the stop is a
// degenerate signal and yields a non-executable size of 0 rather than an
// error.
func (m *Manager) PositionSize(entryPrice, stopLoss float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	dist := entryPrice - stopLoss
	if dist < 0 {
		dist = -dist
	}
	if dist == 0 {
		return 0
	}

	size := m.balance * m.policy.MaxRiskPerTrade / dist

	if limit := m.balance * m.policy.MaxPositionPct; size > limit {
		size = limit
	}
	return size
}

// ValidateTrade checks a signal against the policy. Checks run in a fixed
// order and the first failure decides the rejection: the daily-loss breaker,
// then required fields, then the confidence floor.
//
// The breaker does not auto-reset; once tripped it rejects everything until
// ResetDailyPnl is called.
func (m *Manager) ValidateTrade(sig strategies.Signal) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dailyPnl <= -m.balance*m.policy.MaxDailyLossPct {
		log.Warn().
			Float64("daily_pnl", m.dailyPnl).
			Float64("balance", m.balance).
			Str("symbol", sig.Symbol).
			Msg("daily loss breaker tripped, trade rejected")
		return reject(CodeDailyLossLimit, "daily loss limit reached")
	}

	if !sig.Direction.Actionable() || sig.EntryPrice == 0 || sig.StopLoss == 0 {
		return reject(CodeMissingFields, "signal missing direction, entry price or stop loss")
	}

	if sig.Confidence < m.policy.MinConfidence {
		return reject(CodeLowConfidence, "signal confidence below minimum")
	}

	return Decision{Allowed: true}
}
