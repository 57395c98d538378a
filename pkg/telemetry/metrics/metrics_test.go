package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/parser"
	"libscribe-hq/libscribe/pkg/library"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "metrics",
	}
}

func fileResult(kind parser.FileKind, failed int, findings ...errors.ErrorType) *parser.FileResult {
	warnings := errors.NewErrorList()
	for _, typ := range findings {
		warnings.AddWarning(typ, "finding", ast.Location{})
	}
	return &parser.FileResult{
		Path:     "AxisLib/AxisLib" + string(kind),
		Kind:     kind,
		Warnings: warnings,
		Units:    3,
		Failed:   failed,
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	defaults := NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	if defaults.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", defaults.config.Namespace, config.DefaultMetricsNamespace)
	}
}

func TestCollector_FileParsed(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.FileParsed(fileResult(parser.FileFunctions, 0), time.Millisecond)
	collector.FileParsed(fileResult(parser.FileTypes, 2, errors.ErrorTypeMalformed, errors.ErrorTypeMalformed), time.Millisecond)
	collector.FileParsed(fileResult(parser.FileTypes, 0, errors.ErrorTypeEncoding), time.Millisecond)

	pm := collector.parseMetrics
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"fun files", testutil.ToFloat64(pm.filesTotal.WithLabelValues("fun")), 1},
		{"typ files", testutil.ToFloat64(pm.filesTotal.WithLabelValues("typ")), 2},
		{"failed typ units", testutil.ToFloat64(pm.failedUnits.WithLabelValues("typ")), 2},
		{"malformed warnings", testutil.ToFloat64(pm.findingsTotal.WithLabelValues("malformed", "warning")), 2},
		{"encoding warnings", testutil.ToFloat64(pm.findingsTotal.WithLabelValues("encoding", "warning")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(pm.parseDuration); n != 2 {
		t.Errorf("parse duration series = %d, want 2", n)
	}
}

func TestCollector_LibraryLoaded(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	failing := errors.NewErrorList()
	failing.AddError(errors.ErrorTypeStructural, "unterminated", ast.Location{})

	collector.LibraryLoaded(&library.Report{
		Library:  "AxisLib",
		Stats:    ast.Stats{Functions: 3, FunctionBlocks: 1, Structures: 2},
		Duration: 20 * time.Millisecond,
		Warnings: errors.NewErrorList(),
	})
	collector.LibraryLoaded(&library.Report{
		Library:  "AxisLib",
		Stats:    ast.Stats{Functions: 4},
		Duration: 10 * time.Millisecond,
		Warnings: failing,
	})

	bm := collector.buildMetrics
	if got := testutil.ToFloat64(bm.buildsTotal.WithLabelValues("AxisLib", "ok")); got != 1 {
		t.Errorf("ok builds = %v, want 1", got)
	}
	if got := testutil.ToFloat64(bm.buildsTotal.WithLabelValues("AxisLib", "failed")); got != 1 {
		t.Errorf("failed builds = %v, want 1", got)
	}
	if got := testutil.ToFloat64(bm.declarations.WithLabelValues("AxisLib", "function")); got != 4 {
		t.Errorf("functions gauge = %v, want 4 (last build)", got)
	}
	if got := testutil.ToFloat64(bm.declarations.WithLabelValues("AxisLib", "structure")); got != 0 {
		t.Errorf("structures gauge = %v, want 0", got)
	}
}

func TestCollector_LintResolveIndex(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordLint("BaseLib", 3, true)
	collector.RecordLint("BaseLib", 0, false)
	collector.RecordResolve("text", time.Microsecond)
	collector.RecordResolve("type", time.Microsecond)
	collector.RecordResolve("text", time.Microsecond)
	collector.RecordIndex(5, 1, time.Second)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"lint findings", testutil.ToFloat64(collector.buildMetrics.lintFindings.WithLabelValues("BaseLib")), 3},
		{"failed lint runs", testutil.ToFloat64(collector.buildMetrics.lintRuns.WithLabelValues("BaseLib", "failed")), 1},
		{"ok lint runs", testutil.ToFloat64(collector.buildMetrics.lintRuns.WithLabelValues("BaseLib", "ok")), 1},
		{"text resolutions", testutil.ToFloat64(collector.resolveMetrics.resolutions.WithLabelValues("text")), 2},
		{"type resolutions", testutil.ToFloat64(collector.resolveMetrics.resolutions.WithLabelValues("type")), 1},
		{"index runs", testutil.ToFloat64(collector.resolveMetrics.indexRuns), 1},
		{"indexed ok", testutil.ToFloat64(collector.resolveMetrics.indexed.WithLabelValues("ok")), 5},
		{"indexed failed", testutil.ToFloat64(collector.resolveMetrics.indexed.WithLabelValues("failed")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.FileParsed(fileResult(parser.FileFunctions, 0), time.Millisecond)
	collector.LibraryLoaded(&library.Report{Library: "AxisLib", Warnings: errors.NewErrorList()})
	collector.RecordLint("AxisLib", 1, true)
	collector.RecordResolve("text", time.Millisecond)

	if got := testutil.ToFloat64(collector.parseMetrics.filesTotal.WithLabelValues("fun")); got != 0 {
		t.Errorf("files parsed = %v with metrics disabled", got)
	}
	if n := testutil.CollectAndCount(collector.buildMetrics.buildsTotal); n != 0 {
		t.Errorf("build series = %d with metrics disabled", n)
	}
}

func TestCollector_LibraryCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.libraries = NewCardinalityLimiter(1)

	if got := collector.libraryLabel("AxisLib"); got != "AxisLib" {
		t.Errorf("first label = %q", got)
	}
	if got := collector.libraryLabel("BaseLib"); got != otherLibrary {
		t.Errorf("label over limit = %q, want %q", got, otherLibrary)
	}
	if got := collector.libraryLabel("AxisLib"); got != "AxisLib" {
		t.Errorf("known label = %q", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(3)

	for _, label := range []string{"a", "b", "c"} {
		if !limiter.Allow(label) {
			t.Errorf("Allow(%q) = false below the limit", label)
		}
	}
	if limiter.Allow("d") {
		t.Error("Allow(d) = true above the limit")
	}
	if !limiter.Allow("a") {
		t.Error("Allow(a) = false for a known label")
	}
	if limiter.Count() != 3 {
		t.Errorf("Count() = %d, want 3", limiter.Count())
	}
}

func TestCollector_WriteToTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordResolve("text", time.Millisecond)

	path := filepath.Join(t.TempDir(), "textfile", "libscribe.prom")
	if err := collector.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `test_metrics_resolutions_total{mode="text"} 1`) {
		t.Errorf("textfile missing resolutions counter:\n%s", data)
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				collector.FileParsed(fileResult(parser.FileVariables, 0), time.Microsecond)
				collector.RecordResolve("type", time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(collector.parseMetrics.filesTotal.WithLabelValues("var")); got != 1000 {
		t.Errorf("var files = %v, want 1000", got)
	}
}
