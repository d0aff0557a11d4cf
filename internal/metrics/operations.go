package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation and resource Prometheus metrics.
var (
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "articlekit",
			Name:      "operation_duration_seconds",
			Help:      "Duration of summarize, find_similar and suggest_category calls",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articlekit",
			Name:      "fallbacks_total",
			Help:      "Internal failures converted to a fallback result",
		},
		[]string{"operation"},
	)

	StopwordSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articlekit",
			Name:      "stopword_loads_total",
			Help:      "Stopword lists loaded, by source",
		},
		[]string{"source"}, // "cache" / "bundled" / "remote"
	)

	ResourceCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articlekit",
			Name:      "resource_cache_total",
			Help:      "Resource cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ResourceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articlekit",
			Name:      "resource_fetch_total",
			Help:      "Remote resource fetch attempts",
		},
		[]string{"status"}, // "success" / "retry" / "error"
	)

	ResourceFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "articlekit",
			Name:      "resource_fetch_duration_seconds",
			Help:      "Remote resource fetch duration in seconds, retries included",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

var registerOnce sync.Once

// RegisterOperationMetrics registers the operation and resource metrics.
// Safe to call more than once; called from main and from tests.
func RegisterOperationMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(OperationDuration)
		prometheus.MustRegister(FallbacksTotal)
		prometheus.MustRegister(StopwordSourceTotal)
		prometheus.MustRegister(ResourceCacheTotal)
		prometheus.MustRegister(ResourceFetchTotal)
		prometheus.MustRegister(ResourceFetchDuration)
	})
}
