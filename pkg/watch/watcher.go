package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"libscribe-hq/libscribe/pkg/library"
)

// Config configures a Watcher.
type Config struct {
	// Root is the directory watched recursively
	Root string

	// Debounce is the quiet period before a batch is delivered (default: 100ms)
	Debounce time.Duration

	// Extensions are the file suffixes that count as changes, compared
	// case-insensitively
	Extensions []string

	// SkipHidden ignores dot files and dot directories
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   100 * time.Millisecond,
		Extensions: []string{".fun", ".typ", ".var", ".lby"},
		SkipHidden: true,
	}
}

// ChangeFunc receives the changed files of one debounced batch.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher reports changes to library files below a root directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  *Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. Watch must be called to start it.
func New(config *Config, logger *slog.Logger) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: fsw,
		logger:  logger.With("component", "watcher"),
		config:  config,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, passing each
// debounced batch of changed files to onChange. Errors from onChange are
// logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	if err := w.addTree(w.config.Root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.config.Root, err)
	}

	debounce := NewDebouncer(w.config.Debounce, func(changed []string) {
		w.logger.Info("library files changed", "count", len(changed))
		if err := onChange(ctx, changed); err != nil {
			w.logger.Error("change handler failed", "error", err)
		}
	})
	defer debounce.Stop()

	w.logger.Info("watching library files",
		"root", w.config.Root,
		"debounce_ms", w.config.Debounce.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) && w.isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
				continue
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			debounce.Add(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Stop ends Watch and releases the fsnotify watcher. It is safe to call
// when Watch was never started.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.config.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	return !w.config.SkipHidden || !strings.HasPrefix(filepath.Base(path), ".")
}

// relevant reports whether event changes a watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if w.config.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	for _, want := range w.config.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// AffectedLibraries maps changed files below root to their library
// folders, sorted and without repeats.
func AffectedLibraries(root string, changed []string) []string {
	seen := make(map[string]bool)
	var libs []string
	for _, path := range changed {
		dir, ok := library.Owner(root, path)
		if ok && !seen[dir] {
			seen[dir] = true
			libs = append(libs, dir)
		}
	}
	sort.Strings(libs)
	return libs
}
