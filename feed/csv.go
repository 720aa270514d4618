package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/fxrobot/market"
)

// LoadCandlesCSV reads candle rows from a CSV file:
//
//	time,open,high,low,close,volume
//
// where time is RFC3339 or RFC3339Nano and volume may be omitted. A header
// row ("time,...") is allowed; empty rows are skipped. Files ending in .xz
// are decompressed transparently.
func LoadCandlesCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz %s: %w", path, err)
		}
		src = xr
	}

	return readCandles(src)
}

func readCandles(src io.Reader) ([]market.Candle, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	var (
		candles  []market.Candle
		sawFirst bool
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			return candles, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		c, err := parseCandleRow(row)
		if err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
}

func parseCandleRow(row []string) (market.Candle, error) {
	if len(row) < 5 {
		return market.Candle{}, fmt.Errorf("short candle row: %q", row)
	}

	ts, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return market.Candle{}, fmt.Errorf("bad candle time %q: %w", row[0], err)
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("bad candle field %q: %w", row[i+1], err)
		}
		vals[i] = v
	}

	c := market.Candle{
		Time:  ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}

	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
		c.Volume = v
	}

	return c, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
