package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

// Scheduler periodically refreshes the engine's catalog snapshot.
type Scheduler struct {
	cron           *cron.Cron
	engine         *Engine
	log            *slog.Logger
	refreshEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that refreshes eng every interval.
func NewScheduler(eng *Engine, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive (got %s)", interval)
	}
	if log == nil {
		log = slog.Default()
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runRefresh)
	if err != nil {
		return nil, fmt.Errorf("scheduling refresh: %w", err)
	}
	s.refreshEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next refresh time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	entry := s.cron.Entry(s.refreshEntryID)
	if entry.Next.IsZero() {
		return
	}
	metrics.SchedulerNextRefreshTimestamp.Set(float64(entry.Next.Unix()))
}

func (s *Scheduler) runRefresh() {
	ctx := context.Background()
	s.log.Info("scheduled refresh starting")
	if _, err := s.engine.Refresh(ctx); err != nil {
		metrics.SchedulerRefreshFailuresTotal.Inc()
		s.log.Error("scheduled refresh failed", "error", err)
	}
	s.SyncNextRunTimestamps()
}
