// Package metrics exposes Prometheus metrics for the robot. The core engine
// stays I/O-free; the cycle driver records each CycleReport here and decides
// whether to serve the registry over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fxrobot_cycles_total",
		Help: "Trading cycles executed",
	})

	signalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fxrobot_signals_total",
		Help: "Actionable signals generated",
	})

	tradesOpenedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fxrobot_trades_opened_total",
		Help: "Trades opened",
	})

	tradesClosedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fxrobot_trades_closed_total",
		Help: "Trades closed",
	})

	accountBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fxrobot_account_balance",
		Help: "Current account balance",
	})

	dailyPnl = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fxrobot_daily_pnl",
		Help: "Realized P/L since the last daily reset",
	})

	openTrades = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fxrobot_open_trades",
		Help: "Currently open trades",
	})
)

func init() {
	prometheus.MustRegister(
		cyclesTotal,
		signalsTotal,
		tradesOpenedTotal,
		tradesClosedTotal,
		accountBalance,
		dailyPnl,
		openTrades,
	)
}

// RecordCycle folds one cycle's counts into the counters.
func RecordCycle(signals, opened, closed int) {
	cyclesTotal.Inc()
	signalsTotal.Add(float64(signals))
	tradesOpenedTotal.Add(float64(opened))
	tradesClosedTotal.Add(float64(closed))
}

// RecordAccount updates the account gauges.
func RecordAccount(balance, daily float64, open int) {
	accountBalance.Set(balance)
	dailyPnl.Set(daily)
	openTrades.Set(float64(open))
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
