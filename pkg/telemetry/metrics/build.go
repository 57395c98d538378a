package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/library"
)

// BuildMetrics tracks library loads and lint runs.
//
// Metrics:
//   - libscribe_library_builds_total: Library loads by library and status
//   - libscribe_library_build_duration_seconds: Time spent loading a library
//   - libscribe_library_declarations: Declarations in the last build, by kind
//   - libscribe_lint_findings_total: Validator findings by library
//   - libscribe_lint_runs_total: Validator runs by library and status
type BuildMetrics struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	declarations  *prometheus.GaugeVec
	lintFindings  *prometheus.CounterVec
	lintRuns      *prometheus.CounterVec
}

// NewBuildMetrics creates and registers build metrics with the provided registry.
func NewBuildMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BuildMetrics {
	bm := &BuildMetrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_builds_total",
				Help:      "Total number of library loads",
			},
			[]string{"library", "status"},
		),

		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_build_duration_seconds",
				Help:      "Duration of loading a library folder in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"library"},
		),

		declarations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_declarations",
				Help:      "Number of declarations in the most recent build",
			},
			[]string{"library", "kind"},
		),

		lintFindings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_findings_total",
				Help:      "Total number of validator findings",
			},
			[]string{"library"},
		),

		lintRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_runs_total",
				Help:      "Total number of validator runs",
			},
			[]string{"library", "status"},
		),
	}

	registry.MustRegister(
		bm.buildsTotal,
		bm.buildDuration,
		bm.declarations,
		bm.lintFindings,
		bm.lintRuns,
	)

	return bm
}

// RecordBuild records a finished load under the given library label.
func (bm *BuildMetrics) RecordBuild(lib string, report *library.Report) {
	bm.buildsTotal.WithLabelValues(lib, status(report.HasFailures())).Inc()
	bm.buildDuration.WithLabelValues(lib).Observe(report.Duration.Seconds())

	s := report.Stats
	bm.declarations.WithLabelValues(lib, "function").Set(float64(s.Functions))
	bm.declarations.WithLabelValues(lib, "function_block").Set(float64(s.FunctionBlocks))
	bm.declarations.WithLabelValues(lib, "structure").Set(float64(s.Structures))
	bm.declarations.WithLabelValues(lib, "enumeration").Set(float64(s.Enumerations))
	bm.declarations.WithLabelValues(lib, "constant").Set(float64(s.Constants))
}

// RecordLint records one validator run.
func (bm *BuildMetrics) RecordLint(lib string, findings int, failed bool) {
	bm.lintRuns.WithLabelValues(lib, status(failed)).Inc()
	if findings > 0 {
		bm.lintFindings.WithLabelValues(lib).Add(float64(findings))
	}
}

func status(failed bool) string {
	if failed {
		return "failed"
	}
	return "ok"
}
