package git

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ChangeFunc is called after a pull that touched at least one library
// folder. result.Libraries lists them.
type ChangeFunc func(ctx context.Context, result *PullResult) error

// PollerMetrics tracks poll outcomes.
type PollerMetrics struct {
	Polls          int64
	Changes        int64
	SkippedChanges int64 // commits that touched no library file
	FailedPolls    int64
	FailedChanges  int64
	LastChange     time.Time
}

// Poller pulls the repository on an interval and reports library changes.
//
//	poller := git.NewPoller(repo, 5*time.Minute, reindex, logger)
//	if err := poller.Start(ctx); err != nil {
//	    return err
//	}
//	defer poller.Stop()
type Poller struct {
	repo     *Repository
	interval time.Duration
	onChange ChangeFunc
	logger   *slog.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
	metrics PollerMetrics
}

// NewPoller returns a stopped poller.
func NewPoller(repo *Repository, interval time.Duration, onChange ChangeFunc, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		repo:     repo,
		interval: interval,
		onChange: onChange,
		logger:   logger.With("component", "git_poller"),
	}
}

// Start begins polling in the background. It stops when ctx is cancelled
// or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", p.interval)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("poller already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})

	go p.loop(ctx, p.stopCh, p.done)

	p.logger.Info("poller started", "interval", p.interval)
	return nil
}

func (p *Poller) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped by context cancellation")
			return
		case <-stop:
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			if _, err := p.Check(ctx); err != nil {
				p.logger.Error("poll failed", "error", err)
			}
		}
	}
}

// Stop signals the loop and waits for it to exit. It is a no-op when the
// poller is not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stop, done := p.stopCh, p.done
	p.running = false
	p.mu.Unlock()

	close(stop)
	<-done
}

// IsRunning reports whether the poll loop is active.
func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Check pulls once and invokes the change callback when a library folder
// changed.
func (p *Poller) Check(ctx context.Context) (*PullResult, error) {
	p.count(func(m *PollerMetrics) { m.Polls++ })

	result, err := p.repo.Pull(ctx)
	if err != nil {
		p.count(func(m *PollerMetrics) { m.FailedPolls++ })
		return nil, err
	}
	if !result.HadChanges {
		return result, nil
	}
	if len(result.Libraries) == 0 {
		p.count(func(m *PollerMetrics) { m.SkippedChanges++ })
		p.logger.Info("no library files changed", "to_sha", short(result.ToSHA))
		return result, nil
	}

	p.count(func(m *PollerMetrics) {
		m.Changes++
		m.LastChange = time.Now()
	})
	if p.onChange != nil {
		if err := p.onChange(ctx, result); err != nil {
			p.count(func(m *PollerMetrics) { m.FailedChanges++ })
			return result, fmt.Errorf("handle change %s: %w", short(result.ToSHA), err)
		}
	}
	return result, nil
}

func (p *Poller) count(f func(*PollerMetrics)) {
	p.mu.Lock()
	f(&p.metrics)
	p.mu.Unlock()
}

// Metrics returns a copy of the poll counters.
func (p *Poller) Metrics() PollerMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.metrics
}
