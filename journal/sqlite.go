package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordSignal(s SignalRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(symbol, strategy, direction, confidence, entry_price, stop_loss, take_profit, reason, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Symbol, s.Strategy, s.Direction, s.Confidence,
		s.EntryPrice, s.StopLoss, s.TakeProfit, s.Reason, s.Time,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, direction, strategy, size, entry_price, exit_price, entry_time, exit_time, realized_pnl, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Symbol, t.Direction, t.Strategy, t.Size,
		t.EntryPrice, t.ExitPrice, t.EntryTime, t.ExitTime,
		t.RealizedPnl, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (time, balance, daily_pnl)
		VALUES (?, ?, ?)`,
		e.Time, e.Balance, e.DailyPnl,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
