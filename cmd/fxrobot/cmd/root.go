package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrobot/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "fxrobot",
	Short: "An automated FX trading decision engine",
	Long: `Fxrobot runs technical-analysis strategies over candle history and turns
their signals into risk-checked simulated trades.

It provides tools for:
  - Running the trading loop over recorded candle data
  - Executing a single decision cycle for inspection
  - Querying the trade journal and performance statistics
  - Risk-based position sizing with a daily loss circuit breaker

Complete documentation is available at https://github.com/rustyeddy/fxrobot`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
