package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"libscribe-hq/libscribe/pkg/config"
)

// ResolveMetrics tracks resolver calls and catalog indexing.
//
// Metrics:
//   - libscribe_resolutions_total: Resolver calls by mode
//   - libscribe_resolve_duration_seconds: Resolver call duration
//   - libscribe_index_runs_total: Catalog indexing runs
//   - libscribe_indexed_libraries_total: Libraries indexed by outcome
//   - libscribe_index_duration_seconds: Duration of an indexing run
type ResolveMetrics struct {
	resolutions     *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	indexRuns       prometheus.Counter
	indexed         *prometheus.CounterVec
	indexDuration   prometheus.Histogram
}

// NewResolveMetrics creates and registers resolver and catalog metrics.
func NewResolveMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolveMetrics {
	rm := &ResolveMetrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolutions_total",
				Help:      "Total number of resolver calls",
			},
			[]string{"mode"},
		),

		resolveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolve_duration_seconds",
				Help:      "Duration of a resolver call in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to 262ms
			},
			[]string{"mode"},
		),

		indexRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "index_runs_total",
				Help:      "Total number of catalog indexing runs",
			},
		),

		indexed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "indexed_libraries_total",
				Help:      "Total number of libraries processed by the indexer",
			},
			[]string{"status"},
		),

		indexDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "index_duration_seconds",
				Help:      "Duration of a catalog indexing run in seconds",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
	}

	registry.MustRegister(
		rm.resolutions,
		rm.resolveDuration,
		rm.indexRuns,
		rm.indexed,
		rm.indexDuration,
	)

	return rm
}

// RecordResolve records one resolver call.
func (rm *ResolveMetrics) RecordResolve(mode string, d time.Duration) {
	rm.resolutions.WithLabelValues(mode).Inc()
	rm.resolveDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordIndex records one indexing run.
func (rm *ResolveMetrics) RecordIndex(indexed, failed int, d time.Duration) {
	rm.indexRuns.Inc()
	rm.indexed.WithLabelValues("ok").Add(float64(indexed))
	rm.indexed.WithLabelValues("failed").Add(float64(failed))
	rm.indexDuration.Observe(d.Seconds())
}
