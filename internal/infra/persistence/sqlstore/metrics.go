package sqlstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	statementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelregistry",
			Subsystem: "store",
			Name:      "statements_total",
			Help:      "Total number of SQL statements executed by the store",
		},
		[]string{"op", "status"},
	)

	statementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelregistry",
			Subsystem: "store",
			Name:      "statement_duration_seconds",
			Help:      "Duration of SQL statements in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(statementsTotal, statementDuration)
}

// Statement status labels.
const (
	statusOK       = "ok"
	statusError    = "error"
	statusConflict = "conflict"
)

func observe(op string, start time.Time, status string) {
	statementsTotal.WithLabelValues(op, status).Inc()
	statementDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
