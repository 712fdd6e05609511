// Package metrics provides Prometheus metrics for the document store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docstore"

var (
	// Operations counts completed collection operations.
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total collection operations",
		},
		[]string{"operation", "status"}, // status: success/error
	)

	// OperationLatency tracks operation latency.
	OperationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_seconds",
			Help:      "Collection operation latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Pushdown counts filter compilation outcomes.
	Pushdown = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushdown_total",
			Help:      "Filter pushdown outcomes",
		},
		[]string{"outcome"}, // outcome: compiled/fallback
	)
)
