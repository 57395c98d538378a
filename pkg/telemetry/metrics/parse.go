package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/iec/parser"
)

// ParseMetrics tracks per-file parsing.
//
// Metrics:
//   - libscribe_files_parsed_total: Parsed files by kind
//   - libscribe_file_parse_duration_seconds: Time spent parsing one file
//   - libscribe_units_failed_total: Declaration units that produced nothing
//   - libscribe_parse_findings_total: Parser findings by type and severity
type ParseMetrics struct {
	filesTotal    *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	failedUnits   *prometheus.CounterVec
	findingsTotal *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_parsed_total",
				Help:      "Total number of parsed declaration files",
			},
			[]string{"kind"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "file_parse_duration_seconds",
				Help:      "Duration of parsing one declaration file in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
			[]string{"kind"},
		),

		failedUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "units_failed_total",
				Help:      "Total number of declaration units that could not be parsed",
			},
			[]string{"kind"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_findings_total",
				Help:      "Total number of parser findings",
			},
			[]string{"type", "severity"},
		),
	}

	registry.MustRegister(
		pm.filesTotal,
		pm.parseDuration,
		pm.failedUnits,
		pm.findingsTotal,
	)

	return pm
}

// RecordFile records the outcome of parsing one file.
func (pm *ParseMetrics) RecordFile(result *parser.FileResult, d time.Duration) {
	kind := kindLabel(result.Kind)
	pm.filesTotal.WithLabelValues(kind).Inc()
	pm.parseDuration.WithLabelValues(kind).Observe(d.Seconds())
	if result.Failed > 0 {
		pm.failedUnits.WithLabelValues(kind).Add(float64(result.Failed))
	}
	if result.Warnings == nil {
		return
	}
	for _, finding := range result.Warnings.Errors {
		pm.findingsTotal.WithLabelValues(string(finding.Type), string(finding.Severity)).Inc()
	}
}

func kindLabel(kind parser.FileKind) string {
	if kind == parser.FileUnknown {
		return "unknown"
	}
	return strings.TrimPrefix(string(kind), ".")
}
