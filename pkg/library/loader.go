package library

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/parser"
)

// Observer is notified about parsed files and finished loads. The metrics
// package provides an implementation.
type Observer interface {
	FileParsed(result *parser.FileResult, d time.Duration)
	LibraryLoaded(report *Report)
}

// FileSummary describes one parsed declaration file.
type FileSummary struct {
	Path     string          `json:"path" yaml:"path"`
	Kind     parser.FileKind `json:"kind" yaml:"kind"`
	Units    int             `json:"units" yaml:"units"`
	Failed   int             `json:"failed" yaml:"failed"`
	Warnings int             `json:"warnings" yaml:"warnings"`
}

// Report is the outcome of one Load.
type Report struct {
	BuildID  uuid.UUID         `json:"build_id" yaml:"build_id"`
	Library  string            `json:"library" yaml:"library"`
	Root     string            `json:"root" yaml:"root"`
	Files    []FileSummary     `json:"files" yaml:"files"`
	Warnings *errors.ErrorList `json:"-" yaml:"-"`
	Stats    ast.Stats         `json:"stats" yaml:"stats"`
	Started  time.Time         `json:"started" yaml:"started"`
	Duration time.Duration     `json:"duration" yaml:"duration"`
}

// HasFailures reports whether any file produced an error-severity finding.
func (r *Report) HasFailures() bool {
	return r.Warnings != nil && r.Warnings.HasFailures()
}

// LoaderConfig contains configuration for the Loader.
type LoaderConfig struct {
	// Concurrency is the number of files parsed at once (default: GOMAXPROCS)
	Concurrency int
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{Concurrency: runtime.GOMAXPROCS(0)}
}

// Loader loads library folders.
type Loader struct {
	config   *LoaderConfig
	parser   *parser.Parser
	logger   *slog.Logger
	observer Observer
}

// NewLoader creates a loader. Nil arguments select defaults.
func NewLoader(config *LoaderConfig, p *parser.Parser, logger *slog.Logger) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if p == nil {
		p = parser.NewParser()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{config: config, parser: p, logger: logger}
}

// WithObserver sets the observer notified after each file and load.
func (l *Loader) WithObserver(o Observer) *Loader {
	l.observer = o
	return l
}

type fileOutcome struct {
	result   *parser.FileResult
	problem  *errors.Error
	duration time.Duration
}

// Load discovers, decodes and parses the library folder dir and returns the
// frozen Library with a report of everything that went wrong on the way.
// Only discovery failures and cancellation of ctx return an error.
func (l *Loader) Load(ctx context.Context, dir string) (*ast.Library, *Report, error) {
	start := time.Now()

	layout, err := Discover(dir)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		BuildID:  uuid.New(),
		Library:  layout.Name,
		Root:     layout.Root,
		Warnings: errors.NewErrorList(),
		Started:  start,
	}
	logger := l.logger.With("library", layout.Name, "build_id", report.BuildID.String())
	logger.Debug("discovered library files",
		"types", len(layout.Types),
		"variables", len(layout.Variables),
		"descriptor", layout.Descriptor != "")

	files := layout.Files()
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.Concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = l.loadFile(layout.Root, path, i == 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", layout.Name, err)
	}

	builder := NewBuilder(layout.Name)
	for _, o := range outcomes {
		if o.problem != nil {
			report.Warnings.Add(o.problem)
		}
		if o.result == nil {
			continue
		}
		builder.AddFile(o.result)
		report.Warnings.Merge(o.result.Warnings)
		report.Files = append(report.Files, FileSummary{
			Path:     o.result.Path,
			Kind:     o.result.Kind,
			Units:    o.result.Units,
			Failed:   o.result.Failed,
			Warnings: o.result.Warnings.Count(),
		})
		if l.observer != nil {
			l.observer.FileParsed(o.result, o.duration)
		}
	}

	if layout.Descriptor != "" {
		md, err := ParseMetadataFile(layout.Descriptor)
		if err != nil {
			report.Warnings.Add(downgrade(err, displayPath(layout.Root, layout.Descriptor)))
		} else {
			builder.ApplyMetadata(md)
		}
	}

	lib := builder.Build()
	report.Library = lib.Name
	report.Stats = lib.Stats()
	report.Duration = time.Since(start)

	logFindings(logger, report.Warnings)
	logger.Info("library loaded",
		"version", lib.Version,
		"declarations", lib.Declarations.Count(),
		"warnings", report.Warnings.Count(),
		"duration", report.Duration)

	if l.observer != nil {
		l.observer.LibraryLoaded(report)
	}
	return lib, report, nil
}

// loadFile reads, decodes and parses one file. Function files must be
// UTF-8; other files fall back to Windows-1252.
func (l *Loader) loadFile(root, path string, strict bool) fileOutcome {
	start := time.Now()
	name := displayPath(root, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{problem: errors.Errorf(errors.ErrorTypeIO, ast.Location{File: name},
			"cannot read file: %v", err)}
	}

	var (
		text    string
		problem *errors.Error
	)
	if strict {
		text, problem = decodeStrict(name, data)
		if problem != nil {
			return fileOutcome{problem: problem}
		}
	} else {
		text, problem = decodeLenient(name, data)
	}

	result, err := l.parser.ParseFile(name, text)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return fileOutcome{problem: e}
		}
		return fileOutcome{problem: errors.Errorf(errors.ErrorTypeIO, ast.Location{File: name}, "%v", err)}
	}
	return fileOutcome{result: result, problem: problem, duration: time.Since(start)}
}

// downgrade turns a descriptor failure into a warning; the library keeps
// its defaults.
func downgrade(err error, path string) *errors.Error {
	e, ok := err.(*errors.Error)
	if !ok {
		e = errors.Errorf(errors.ErrorTypeMetadata, ast.Location{}, "%v", err)
	}
	e.Severity = errors.SeverityWarning
	e.Location.File = path
	return e
}

func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func logFindings(logger *slog.Logger, findings *errors.ErrorList) {
	for _, e := range findings.Errors {
		attrs := []any{
			"type", string(e.Type),
			"file", e.Location.File,
			"line", e.Location.Line,
		}
		if e.IsWarning() {
			logger.Warn(e.Message, attrs...)
		} else {
			logger.Error(e.Message, attrs...)
		}
	}
}
