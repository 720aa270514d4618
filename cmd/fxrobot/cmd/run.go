package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrobot/config"
	"github.com/rustyeddy/fxrobot/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading loop from a config file",
	Long: `Run the trading loop using settings from a configuration file.

The config file names the symbols, strategies, risk policy, candle data files
and journal backend. Each cycle monitors open trades for exits, evaluates
every strategy on every symbol, and opens trades for the signals that clear
risk. The loop ends when the replay data is exhausted or on interrupt.

Example:
  fxrobot run -f examples/configs/robot.yaml`,
	RunE: runRun,
}

var (
	runConfigPath string
	runFast       bool
	runMaxCycles  int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().BoolVar(&runFast, "fast", false, "do not wait between cycles (replay as fast as possible)")
	runCmd.Flags().IntVar(&runMaxCycles, "max-cycles", 0, "stop after this many cycles (0 = until data runs out)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	interval, err := cfg.CycleInterval()
	if err != nil {
		return err
	}

	eng, replay, j, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info().Str("addr", cfg.Metrics.Listen).Msg("metrics listener started")
			if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Strs("symbols", cfg.Symbols).
		Str("interval", interval.String()).
		Int("data_files", len(cfg.Feed.Data)).
		Msg("trading loop started")

	cycles := 0
	for {
		report := eng.RunCycle(ctx)
		cycles++

		metrics.RecordCycle(report.SignalsGenerated, report.TradesOpened, report.TradesClosed)
		metrics.RecordAccount(eng.Stats().AccountBalance, eng.DailyPnl(), len(eng.OpenTrades()))

		log.Info().
			Int("cycle", cycles).
			Int("signals", report.SignalsGenerated).
			Int("opened", report.TradesOpened).
			Int("closed", report.TradesClosed).
			Msg("cycle complete")

		if runMaxCycles > 0 && cycles >= runMaxCycles {
			log.Info().Int("cycles", cycles).Msg("cycle limit reached")
			break
		}
		if !replay.Advance() {
			log.Info().Int("cycles", cycles).Msg("replay data exhausted")
			break
		}
		if !runFast {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
		if ctx.Err() != nil {
			log.Info().Msg("interrupted, shutting down")
			break
		}
	}

	renderStats(eng.Stats())
	return nil
}
