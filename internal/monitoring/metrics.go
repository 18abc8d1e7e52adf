package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_engine_trades_total",
			Help: "Total number of orders executed",
		},
		[]string{"symbol", "side"},
	)

	tradeVolume = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trade_engine_trade_volume",
			Help:    "Distribution of executed order volumes in lots",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_engine_rejections_total",
			Help: "Total number of orders rejected by the broker",
		},
		[]string{"symbol"},
	)

	trailingAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_engine_trailing_adjustments_total",
			Help: "Total number of applied trailing stop-loss updates",
		},
		[]string{"symbol"},
	)

	openPositions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trade_engine_open_positions",
			Help: "Number of open positions per symbol",
		},
		[]string{"symbol"},
	)

	positionProfit = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trade_engine_position_profit",
			Help: "Floating profit per symbol in account currency",
		},
		[]string{"symbol"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_engine_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(tradesTotal)
	prometheus.MustRegister(tradeVolume)
	prometheus.MustRegister(rejectionsTotal)
	prometheus.MustRegister(trailingAdjustments)
	prometheus.MustRegister(openPositions)
	prometheus.MustRegister(positionProfit)
	prometheus.MustRegister(errorsTotal)
}

// Handler returns the Prometheus metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTrade records an executed order.
func RecordTrade(symbol, side string, volume float64) {
	tradesTotal.WithLabelValues(symbol, side).Inc()
	tradeVolume.WithLabelValues(symbol).Observe(volume)
}

// RecordRejection records a broker rejection.
func RecordRejection(symbol string) {
	rejectionsTotal.WithLabelValues(symbol).Inc()
}

// RecordTrailingAdjustment records an applied stop-loss update.
func RecordTrailingAdjustment(symbol string) {
	trailingAdjustments.WithLabelValues(symbol).Inc()
}

// UpdateOpenPositions updates the open-position gauge for a symbol. The
// empty symbol (all instruments) is reported as "all".
func UpdateOpenPositions(symbol string, count int) {
	if symbol == "" {
		symbol = "all"
	}
	openPositions.WithLabelValues(symbol).Set(float64(count))
}

// UpdatePositionProfit updates the floating profit gauge for a symbol.
func UpdatePositionProfit(symbol string, profit float64) {
	positionProfit.WithLabelValues(symbol).Set(profit)
}

// RecordError records an error by taxonomy category.
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}
