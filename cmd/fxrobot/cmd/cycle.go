package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrobot/config"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Execute a single decision cycle",
	Long: `Execute one decision cycle against the first bar of the configured
candle data and print the resulting signals and trades.

Useful for inspecting what the strategies would do without running the full
loop.

Example:
  fxrobot cycle -f examples/configs/robot.yaml`,
	RunE: runCycle,
}

var cycleConfigPath string

func init() {
	rootCmd.AddCommand(cycleCmd)

	cycleCmd.Flags().StringVarP(&cycleConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	cycleCmd.MarkFlagRequired("config")
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(cycleConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	eng, _, j, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	report := eng.RunCycle(cmd.Context())

	fmt.Printf("Cycle complete: %d signals, %d trades opened, %d trades closed\n",
		report.SignalsGenerated, report.TradesOpened, report.TradesClosed)

	open := eng.OpenTrades()
	if len(open) == 0 {
		fmt.Println("No open trades.")
		return nil
	}

	fmt.Println("\nOpen trades:")
	for _, t := range open {
		fmt.Printf("  %s  %s %s  size %.0f  entry %.5f  stop %.5f",
			t.ID, t.Symbol, t.Direction, t.Size, t.EntryPrice, t.StopLoss)
		if t.TakeProfit != nil {
			fmt.Printf("  take %.5f", *t.TakeProfit)
		}
		fmt.Printf("  (%s)\n", t.Strategy)
	}
	return nil
}
