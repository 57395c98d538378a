package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/iec/parser"
	"libscribe-hq/libscribe/pkg/library"
)

// otherLibrary replaces library labels once the cardinality limit is hit.
const otherLibrary = "other"

// Collector owns the Prometheus metrics of a libscribe process. It
// implements library.Observer so a Loader reports into it directly.
//
// All Record methods are no-ops when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics   *ParseMetrics
	buildMetrics   *BuildMetrics
	resolveMetrics *ResolveMetrics

	libraries *CardinalityLimiter
}

var _ library.Observer = (*Collector)(nil)

// NewCollector creates a collector registering into registry. A nil
// registry creates a private one.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "libscribe"}
//	collector := metrics.NewCollector(cfg, nil)
//	loader.WithObserver(collector)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		parseMetrics:   NewParseMetrics(cfg, registry),
		buildMetrics:   NewBuildMetrics(cfg, registry),
		resolveMetrics: NewResolveMetrics(cfg, registry),
		libraries:      NewCardinalityLimiter(1000),
	}
}

// FileParsed records one parsed declaration file.
func (c *Collector) FileParsed(result *parser.FileResult, d time.Duration) {
	if !c.config.Enabled || result == nil {
		return
	}
	c.parseMetrics.RecordFile(result, d)
}

// LibraryLoaded records a finished library load.
func (c *Collector) LibraryLoaded(report *library.Report) {
	if !c.config.Enabled || report == nil {
		return
	}
	c.buildMetrics.RecordBuild(c.libraryLabel(report.Library), report)
}

// RecordLint records the findings of a validator run.
func (c *Collector) RecordLint(lib string, findings int, failed bool) {
	if !c.config.Enabled {
		return
	}
	c.buildMetrics.RecordLint(c.libraryLabel(lib), findings, failed)
}

// RecordResolve records one resolver call. Mode is "text" or "type".
func (c *Collector) RecordResolve(mode string, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.resolveMetrics.RecordResolve(mode, d)
}

// RecordIndex records a catalog indexing run.
func (c *Collector) RecordIndex(indexed, failed int, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.resolveMetrics.RecordIndex(indexed, failed, d)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) libraryLabel(name string) string {
	if c.libraries.Allow(fmt.Sprintf("library:%s", name)) {
		return name
	}
	return otherLibrary
}

// CardinalityLimiter bounds the number of distinct label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already known or still fits below the
// limit, recording it in the latter case.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
