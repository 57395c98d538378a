package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"libscribe-hq/libscribe/pkg/catalog"
	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/parser"
	"libscribe-hq/libscribe/pkg/iec/resolver"
	"libscribe-hq/libscribe/pkg/iec/validator"
	"libscribe-hq/libscribe/pkg/library"
	"libscribe-hq/libscribe/pkg/telemetry/logging"
	"libscribe-hq/libscribe/pkg/telemetry/metrics"
)

// current is set by setup before any command runs.
var current *app

// app bundles the configuration and logger shared by all commands.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
}

func newApp(cfg *config.Config, logger *logging.Logger) *app {
	return &app{cfg: cfg, logger: logger}
}

func (a *app) newParser() (*parser.Parser, error) {
	policy, err := parser.ParseDuplicatePolicy(a.cfg.Parser.Duplicates)
	if err != nil {
		return nil, cli.NewConfigError("parser.duplicates", err.Error())
	}
	return parser.NewParser().
		WithDuplicatePolicy(policy).
		WithMaxFileSize(a.cfg.Parser.MaxFileSize), nil
}

// newLoader returns a loader reporting into collector when it is not nil.
func (a *app) newLoader(collector *metrics.Collector) (*library.Loader, error) {
	p, err := a.newParser()
	if err != nil {
		return nil, err
	}
	loader := library.NewLoader(
		&library.LoaderConfig{Concurrency: a.cfg.Parser.Concurrency},
		p,
		a.logger.Slog(),
	)
	if collector != nil {
		loader.WithObserver(collector)
	}
	return loader, nil
}

// newCollector returns a metrics collector. A metrics file requested on
// the command line enables collection even when the config does not.
func (a *app) newCollector(metricsFile string) *metrics.Collector {
	cfg := a.cfg.Telemetry.Metrics
	if metricsFile != "" {
		cfg.Enabled = true
	}
	return metrics.NewCollector(&cfg, nil)
}

// flushMetrics writes collected metrics to the flag path or, failing that,
// the configured textfile path.
func (a *app) flushMetrics(command string, collector *metrics.Collector, metricsFile string) error {
	path := metricsFile
	if path == "" && a.cfg.Telemetry.Metrics.Enabled {
		path = a.cfg.Telemetry.Metrics.TextfilePath
	}
	if path == "" {
		return nil
	}
	if err := collector.WriteToTextfile(path); err != nil {
		return cli.NewCommandError(command, cli.ExitOutput, err)
	}
	a.logger.Debug("metrics written", "path", path)
	return nil
}

// openStore opens the configured catalog store.
func (a *app) openStore() (catalog.Store, error) {
	c := a.cfg.Catalog
	if c.Driver == "memory" {
		return catalog.NewMemoryStore(), nil
	}
	if dir := filepath.Dir(c.Path); dir != "." && c.Path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	return catalog.NewSQLiteStore(&catalog.SQLiteConfig{
		Driver:      c.Driver,
		Path:        c.Path,
		WALMode:     true,
		BusyTimeout: c.BusyTimeout,
	}, a.logger.Slog())
}

// linker returns a catalog linker for lib when the catalog is enabled, and
// nil otherwise. The returned function closes the store.
func (a *app) linker(ctx context.Context, lib *ast.Library) (*catalog.Linker, func(), error) {
	if !a.cfg.Catalog.Enabled {
		return nil, func() {}, nil
	}
	store, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("failed to close catalog", "error", err)
		}
	}
	return catalog.NewLinker(ctx, store, lib, a.logger.Slog()), closeStore, nil
}

// newValidator returns a validator that treats names found by linker as
// declared.
func newValidator(linker *catalog.Linker) *validator.Validator {
	if linker == nil {
		return validator.NewValidator()
	}
	return validator.NewValidator(validator.WithExternal(linker.Known))
}

// newMarker parses a --marker value.
func (a *app) newMarker(name, linkRoot string) (resolver.Marker, error) {
	switch strings.ToLower(name) {
	case "", "token":
		return resolver.TokenMarker{}, nil
	case "html":
		if linkRoot == "" {
			linkRoot = a.cfg.Resolver.LinkRoot
		}
		return resolver.HTMLMarker{Root: linkRoot, ExternalRoot: a.cfg.Resolver.ExternalRoot}, nil
	default:
		return nil, cli.NewConfigError("marker", fmt.Sprintf("unknown marker %q (want token or html)", name))
	}
}

// output writes result in the requested format.
func output(command string, w io.Writer, format string, result any) error {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(f, cli.NewStyles(w)).FormatTo(w, result); err != nil {
		return cli.NewCommandError(command, cli.ExitOutput, err)
	}
	return nil
}
