// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operations counts seating area operations by name and outcome kind
	// ("ok" or an error kind).
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seating_areas",
		Name:      "operations_total",
		Help:      "Seating area operations by operation and result.",
	}, []string{"operation", "result"})

	// OperationDuration observes how long each operation took, sync included.
	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "seating_areas",
		Name:      "operation_duration_seconds",
		Help:      "Duration of seating area operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// SnapshotEntriesSynced counts booking table entries rewritten by the
	// snapshot sync.
	SnapshotEntriesSynced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seating_areas",
		Name:      "booking_snapshot_entries_synced_total",
		Help:      "Booking table entries whose area snapshot was rewritten.",
	})

	// RateLimited counts requests rejected by the write rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seating_areas",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by route.",
	}, []string{"route"})

	// CacheLookups counts read cache lookups by result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seating_areas",
		Name:      "cache_lookups_total",
		Help:      "Response cache lookups by result.",
	}, []string{"result"})
)
