// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradecalc_evaluations_total",
			Help: "Total number of successful grade evaluations",
		},
		[]string{"status"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradecalc_validation_failures_total",
			Help: "Rejected input fields",
		},
		[]string{"field"},
	)

	AverageHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gradecalc_average",
			Help:    "Distribution of computed weighted averages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradecalc_store_operations_total",
			Help: "Persistence operations by key and outcome",
		},
		[]string{"key", "op", "result"},
	)

	StoreWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gradecalc_store_write_duration_seconds",
			Help:    "Persistence write duration in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"key"},
	)

	HistoryLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gradecalc_history_length",
			Help: "Entries in the persisted history after the last write",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

const (
	ResultOK      = "ok"
	ResultMissing = "missing"
	ResultCorrupt = "corrupt"
	ResultError   = "error"
	OpRead        = "read"
	OpWrite       = "write"
	OpDelete      = "delete"
)
