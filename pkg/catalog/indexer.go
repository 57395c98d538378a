package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"libscribe-hq/libscribe/pkg/library"
)

// Indexer loads library folders and stores their symbols.
type Indexer struct {
	store  Store
	loader *library.Loader
	logger *slog.Logger
}

// NewIndexer creates an indexer writing to store.
func NewIndexer(store Store, loader *library.Loader, logger *slog.Logger) *Indexer {
	if loader == nil {
		loader = library.NewLoader(nil, nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{store: store, loader: loader, logger: logger.With("component", "catalog.indexer")}
}

// Index loads the library folder dir and replaces its catalog entry.
func (ix *Indexer) Index(ctx context.Context, dir string) (*Entry, *library.Report, error) {
	lib, report, err := ix.loader.Load(ctx, dir)
	if err != nil {
		return nil, nil, err
	}

	entry := NewEntry(lib, report.Root, report.BuildID.String(), time.Now())
	if err := ix.store.Put(ctx, entry); err != nil {
		return nil, report, fmt.Errorf("store %s: %w", lib.Name, err)
	}
	ix.logger.Info("library indexed",
		"library", lib.Name,
		"version", lib.Version,
		"symbols", len(entry.Symbols),
		"build_id", entry.Library.BuildID)
	return entry, report, nil
}

// IndexResult summarizes an IndexAll run.
type IndexResult struct {
	Indexed []string
	Failed  map[string]error
}

// IndexAll indexes every library folder found below roots. A failing
// library does not stop the others; only cancellation of ctx does.
func (ix *Indexer) IndexAll(ctx context.Context, roots []string) (*IndexResult, error) {
	result := &IndexResult{Failed: make(map[string]error)}

	for _, root := range roots {
		dirs, err := FindLibraries(root)
		if err != nil {
			result.Failed[root] = err
			continue
		}
		for _, dir := range dirs {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			entry, _, err := ix.Index(ctx, dir)
			if err != nil {
				ix.logger.Warn("library not indexed", "path", dir, "error", err)
				result.Failed[dir] = err
				continue
			}
			result.Indexed = append(result.Indexed, entry.Library.Name)
		}
	}
	return result, nil
}

// FindLibraries returns the library folders at or below root, sorted. A
// folder is a library folder when it directly contains a *.fun file; its
// subfolders are not searched further. Hidden folders are skipped.
func FindLibraries(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".fun") {
				dirs = append(dirs, path)
				return filepath.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", root, err)
	}
	sort.Strings(dirs)
	return dirs, nil
}
