package journal

import (
	"database/sql"
	"fmt"
)

// Summary aggregates the closed trades in a journal database.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	TotalPnl      float64
}

// WinRatePct returns the percentage of profitable trades, 0 when empty.
func (s Summary) WinRatePct() float64 {
	if s.TotalTrades == 0 {
		return 0
	}
	return float64(s.WinningTrades) / float64(s.TotalTrades) * 100
}

// GetTrade returns a single closed trade by id.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, symbol, direction, strategy, size, entry_price, exit_price, entry_time, exit_time, realized_pnl, reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return rec, err
}

// ListTrades returns closed trades in close order, newest last. symbol
// filters when non-empty; limit caps the result when positive.
func (j *SQLite) ListTrades(symbol string, limit int) ([]TradeRecord, error) {
	q := `
		SELECT trade_id, symbol, direction, strategy, size, entry_price, exit_price, entry_time, exit_time, realized_pnl, reason
		FROM trades`
	var args []any
	if symbol != "" {
		q += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	q += ` ORDER BY exit_time ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize aggregates every closed trade in the database.
func (j *SQLite) Summarize() (Summary, error) {
	var s Summary
	err := j.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN realized_pnl > 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(realized_pnl), 0)
		FROM trades`).Scan(&s.TotalTrades, &s.WinningTrades, &s.TotalPnl)
	if err != nil {
		return Summary{}, err
	}
	s.LosingTrades = s.TotalTrades - s.WinningTrades
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (TradeRecord, error) {
	var rec TradeRecord
	err := row.Scan(
		&rec.TradeID,
		&rec.Symbol,
		&rec.Direction,
		&rec.Strategy,
		&rec.Size,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.EntryTime,
		&rec.ExitTime,
		&rec.RealizedPnl,
		&rec.Reason,
	)
	return rec, err
}
