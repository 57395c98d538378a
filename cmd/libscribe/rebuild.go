package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"libscribe-hq/libscribe/pkg/catalog"
	"libscribe-hq/libscribe/pkg/cli"
	iecerrors "libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/library"
	"libscribe-hq/libscribe/pkg/telemetry/logging"
	"libscribe-hq/libscribe/pkg/telemetry/metrics"
)

// rebuilder loads and lints changed library folders for the long-running
// commands, storing them in the catalog when one is open.
type rebuilder struct {
	app       *app
	loader    *library.Loader
	store     catalog.Store
	collector *metrics.Collector
	out       io.Writer
	styles    *cli.Styles
}

// rebuild processes dirs and returns the number that failed to load.
func (rb *rebuilder) rebuild(ctx context.Context, dirs []string) int {
	failed := 0
	for _, dir := range dirs {
		if ctx.Err() != nil {
			return failed
		}
		if err := rb.one(ctx, dir); err != nil {
			failed++
			rb.app.logger.Error("library rebuild failed", "path", dir, "error", err)
			fmt.Fprintf(rb.out, "%s %s: %v\n", rb.styles.Error.Render("✗"), dir, err)
		}
	}
	return failed
}

func (rb *rebuilder) one(ctx context.Context, dir string) error {
	lib, report, err := rb.loader.Load(ctx, dir)
	if err != nil {
		return err
	}
	ctx = logging.WithBuildID(logging.WithLibrary(ctx, lib.Name), report.BuildID.String())

	if rb.store != nil {
		entry := catalog.NewEntry(lib, report.Root, report.BuildID.String(), time.Now())
		if err := rb.store.Put(ctx, entry); err != nil {
			return fmt.Errorf("store %s: %w", lib.Name, err)
		}
	}

	var linker *catalog.Linker
	if rb.store != nil {
		linker = catalog.NewLinker(ctx, rb.store, lib, rb.app.logger.Slog())
	}
	findings := iecerrors.NewErrorList()
	findings.Merge(report.Warnings)
	findings.Merge(newValidator(linker).Validate(lib))

	errs := len(findings.BySeverity(iecerrors.SeverityError))
	warns := len(findings.BySeverity(iecerrors.SeverityWarning))
	rb.collector.RecordLint(lib.Name, findings.Count(), errs > 0)
	rb.app.logger.InfoContext(ctx, "library rebuilt",
		"declarations", lib.Declarations.Count(),
		"errors", errs,
		"warnings", warns,
		"duration", report.Duration.Round(time.Microsecond))

	mark := rb.styles.OK.Render("✓")
	switch {
	case errs > 0:
		mark = rb.styles.Error.Render("✗")
	case warns > 0:
		mark = rb.styles.Warning.Render("⚠")
	}
	fmt.Fprintf(rb.out, "%s %s %s: %d declarations, %d error(s), %d warning(s)\n",
		mark, lib.Name, lib.Version, lib.Declarations.Count(), errs, warns)
	return nil
}

// newRebuilder wires a rebuilder from the configuration. The returned
// function flushes metrics and closes the catalog.
func (a *app) newRebuilder(out io.Writer) (*rebuilder, func(), error) {
	collector := a.newCollector("")
	loader, err := a.newLoader(collector)
	if err != nil {
		return nil, nil, err
	}
	rb := &rebuilder{
		app:       a,
		loader:    loader,
		collector: collector,
		out:       out,
		styles:    cli.NewStyles(out),
	}
	if a.cfg.Catalog.Enabled {
		store, err := a.openStore()
		if err != nil {
			return nil, nil, err
		}
		rb.store = store
	}
	done := func() {
		if err := a.flushMetrics("rebuild", collector, ""); err != nil {
			a.logger.Warn("failed to write metrics", "error", err)
		}
		if rb.store != nil {
			if err := rb.store.Close(); err != nil {
				a.logger.Warn("failed to close catalog", "error", err)
			}
		}
	}
	return rb, done, nil
}
