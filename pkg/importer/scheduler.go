package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mapforge/strata/pkg/telemetry/logging"
)

// Scheduler runs full rescans on a cron schedule. Watch mode pairs it with
// the file watcher to catch changes fsnotify misses, such as edits on
// network mounts that never emit events.
type Scheduler struct {
	schedule string
	job      func() error
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that runs job per the cron expression in
// schedule. An empty schedule disables it.
func NewScheduler(schedule string, job func() error, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(),
		logger:   logging.Component(logger, "importer.scheduler"),
	}
}

// Start begins scheduled rescans and returns immediately. The scheduler
// stops itself when ctx is cancelled.
//
// Common expressions:
//   - "*/5 * * * *" - every five minutes
//   - "0 * * * *"   - hourly
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if s.schedule == "" {
		s.logger.Info("rescan schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runRescan); err != nil {
		return fmt.Errorf("failed to schedule rescan: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rescan scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runRescan executes one scheduled rescan.
func (s *Scheduler) runRescan() {
	s.logger.Info("starting scheduled rescan")

	if err := s.job(); err != nil {
		s.logger.Error("scheduled rescan failed", "error", err)
		return
	}

	s.logger.Debug("scheduled rescan completed")
}

// Stop stops the scheduler and waits for a running rescan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("rescan scheduler stopped")
	}
}

// IsRunning reports whether the scheduler has been started and not stopped.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled rescan time, nil when nothing is
// scheduled.
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
