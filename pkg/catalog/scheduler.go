package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler re-indexes library roots on a cron schedule.
type Scheduler struct {
	indexer  *Indexer
	roots    []string
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler that indexes roots according to
// schedule, a standard five-field cron expression. A nil logger uses
// slog.Default.
func NewScheduler(indexer *Indexer, roots []string, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		indexer:  indexer,
		roots:    roots,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "catalog.scheduler"),
	}
}

// Start schedules indexing runs until ctx is cancelled or Stop is called.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "*/15 * * * *" - Every 15 minutes
//
// If the schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("index schedule not configured, skipping scheduler")
		return nil
	}
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunNow(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule indexing: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("index scheduler started", "schedule", s.schedule, "roots", len(s.roots))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// RunNow indexes all roots once.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.logger.Info("starting scheduled indexing")

	result, err := s.indexer.IndexAll(ctx, s.roots)
	if err != nil {
		s.logger.Error("scheduled indexing aborted", "error", err)
		return
	}
	s.logger.Info("scheduled indexing completed",
		"indexed", len(result.Indexed),
		"failed", len(result.Failed))
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("index scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled indexing time, or nil.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
