package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends signals, trades and equity snapshots to three CSV files.
type CSVJournal struct {
	signals *csv.Writer
	trades  *csv.Writer
	equity  *csv.Writer
	files   []*os.File
}

func NewCSV(signalsPath, tradesPath, equityPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	open := func(path string, header []string) (*csv.Writer, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)

		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		return w, w.Error()
	}

	var err error
	if j.signals, err = open(signalsPath, []string{
		"time", "symbol", "strategy", "direction", "confidence",
		"entry_price", "stop_loss", "take_profit", "reason",
	}); err != nil {
		j.Close()
		return nil, err
	}
	if j.trades, err = open(tradesPath, []string{
		"trade_id", "symbol", "direction", "strategy", "size",
		"entry_price", "exit_price", "entry_time", "exit_time",
		"realized_pnl", "reason",
	}); err != nil {
		j.Close()
		return nil, err
	}
	if j.equity, err = open(equityPath, []string{"time", "balance", "daily_pnl"}); err != nil {
		j.Close()
		return nil, err
	}

	return j, nil
}

func (j *CSVJournal) RecordSignal(s SignalRecord) error {
	if err := j.signals.Write([]string{
		s.Time.Format(time.RFC3339),
		s.Symbol,
		s.Strategy,
		s.Direction,
		f(s.Confidence),
		f(s.EntryPrice),
		f(s.StopLoss),
		f(s.TakeProfit),
		s.Reason,
	}); err != nil {
		return err
	}
	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	if err := j.trades.Write([]string{
		t.TradeID,
		t.Symbol,
		t.Direction,
		t.Strategy,
		f(t.Size),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		f(t.RealizedPnl),
		t.Reason,
	}); err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	if err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		f(e.Balance),
		f(e.DailyPnl),
	}); err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	var first error
	for _, w := range []*csv.Writer{j.signals, j.trades, j.equity} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil && first == nil {
			first = err
		}
	}
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
