package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// Scheduler purges every cached document and prewarms the current snapshot
// on a cron schedule, after the upstream pipeline publishes the day's data.
type Scheduler struct {
	engine    *cron.Cron
	refresher *Refresher
	current   func() domain.Snapshot
	logger    *slog.Logger
}

// NewScheduler creates a scheduler for a standard cron spec, optionally
// prefixed with CRON_TZ=<zone>.
func NewScheduler(spec string, refresher *Refresher, current func() domain.Snapshot, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		engine:    cron.New(),
		refresher: refresher,
		current:   current,
		logger:    logger,
	}
	if _, err := s.engine.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("add refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce performs one scheduled refresh.
func (s *Scheduler) RunOnce(ctx context.Context) {
	_ = s.refresher.Refresh(ctx, TriggerSchedule, s.current(), "")
}

// Run starts the cron engine and blocks until ctx is cancelled, then waits
// for a running refresh to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.engine.Start()
	entries := s.engine.Entries()
	if len(entries) > 0 {
		s.logger.Info("refresh scheduler started", "next", entries[0].Next)
	}

	<-ctx.Done()
	<-s.engine.Stop().Done()
	s.logger.Info("refresh scheduler stopped")
	return nil
}
