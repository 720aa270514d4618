package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrobot/engine"
	"github.com/rustyeddy/fxrobot/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics from a journal database",
	Long: `Summarize closed trades recorded in a SQLite journal database and list
the most recent ones.

Example:
  fxrobot stats --db ./fxrobot.sqlite
  fxrobot stats --db ./fxrobot.sqlite --symbol EURUSD --limit 20`,
	RunE: runStats,
}

var (
	statsDBPath string
	statsSymbol string
	statsLimit  int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsDBPath, "db", "d", "./fxrobot.sqlite", "path to SQLite journal DB")
	statsCmd.Flags().StringVarP(&statsSymbol, "symbol", "s", "", "only show trades for this symbol")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10, "number of recent trades to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(statsDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	summary, err := j.Summarize()
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("PERFORMANCE SUMMARY")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Total Trades", summary.TotalTrades},
		{"Winning Trades", summary.WinningTrades},
		{"Losing Trades", summary.LosingTrades},
		{"Win Rate", fmt.Sprintf("%.1f%%", summary.WinRatePct())},
		{"Total P/L", fmt.Sprintf("%.2f", summary.TotalPnl)},
	})
	t.Render()

	trades, err := j.ListTrades(statsSymbol, statsLimit)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Println("No closed trades recorded.")
		return nil
	}

	rt := table.NewWriter()
	rt.SetOutputMirror(os.Stdout)
	rt.SetTitle("RECENT TRADES")
	rt.SetStyle(table.StyleRounded)
	rt.AppendHeader(table.Row{"ID", "Symbol", "Dir", "Strategy", "Entry", "Exit", "P/L", "Reason"})
	for _, tr := range trades {
		rt.AppendRow(table.Row{
			tr.TradeID, tr.Symbol, tr.Direction, tr.Strategy,
			fmt.Sprintf("%.5f", tr.EntryPrice),
			fmt.Sprintf("%.5f", tr.ExitPrice),
			fmt.Sprintf("%.2f", tr.RealizedPnl),
			tr.Reason,
		})
	}
	rt.Render()
	return nil
}

// renderStats prints the live engine statistics at the end of a run.
func renderStats(s engine.PerformanceStats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("SESSION RESULTS")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Total Trades", s.TotalTrades},
		{"Winning Trades", s.WinningTrades},
		{"Losing Trades", s.LosingTrades},
		{"Win Rate", fmt.Sprintf("%.1f%%", s.WinRatePct)},
		{"Total P/L", fmt.Sprintf("%.2f", s.TotalPnl)},
		{"Account Balance", fmt.Sprintf("%.2f", s.AccountBalance)},
		{"Open Trades", s.ActiveTradeCount},
	})
	t.Render()
}
