// Package refresh keeps cached snapshot documents current: a daily cron
// purge and prewarm, and a consumer of snapshot notices published by the
// upstream pipeline.
package refresh

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// Triggers label refresh runs in metrics and logs.
const (
	TriggerSchedule = "schedule"
	TriggerNotice   = "notice"
)

// Invalidator drops cached documents under a path prefix.
type Invalidator interface {
	Invalidate(prefix string) int
}

// Prewarmer fetches the documents of a snapshot ahead of page loads.
type Prewarmer interface {
	Prewarm(ctx context.Context, snap domain.Snapshot) error
}

// Refresher invalidates and prewarms snapshot documents.
type Refresher struct {
	cache   Invalidator
	warm    Prewarmer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRefresher creates a Refresher. cache may be nil when caching is disabled.
func NewRefresher(cache Invalidator, warm Prewarmer, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{cache: cache, warm: warm, logger: logger, metrics: metrics}
}

// Refresh drops cached documents under each prefix, then prewarms snap.
func (r *Refresher) Refresh(ctx context.Context, trigger string, snap domain.Snapshot, prefixes ...string) error {
	dropped := 0
	if r.cache != nil {
		for _, p := range prefixes {
			dropped += r.cache.Invalidate(p)
		}
	}

	if err := r.warm.Prewarm(ctx, snap); err != nil {
		r.metrics.RefreshRuns.WithLabelValues(trigger, "error").Inc()
		r.logger.Warn("snapshot refresh failed", "trigger", trigger, "date", snap.Date.String(), "error", err)
		return err
	}

	r.metrics.RefreshRuns.WithLabelValues(trigger, "success").Inc()
	r.logger.Info("snapshot refreshed", "trigger", trigger, "date", snap.Date.String(), "invalidated", dropped)
	return nil
}
