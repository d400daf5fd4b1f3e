package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// NoticeReader reads the next snapshot notice.
type NoticeReader interface {
	ReadNotice(ctx context.Context) (domain.RawNotice, error)
}

// Consumer applies snapshot notices as they arrive.
type Consumer struct {
	reader    NoticeReader
	refresher *Refresher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewConsumer creates a notice consumer.
func NewConsumer(reader NoticeReader, refresher *Refresher, logger *slog.Logger, metrics *observability.Metrics) *Consumer {
	return &Consumer{reader: reader, refresher: refresher, logger: logger, metrics: metrics}
}

// Run consumes notices until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("notice consumer started")
	c.metrics.ConsumerRunning.Set(1)
	defer c.metrics.ConsumerRunning.Set(0)

	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("notice consumer stopping", "reason", ctx.Err())
			return nil
		default:
		}

		raw, err := c.reader.ReadNotice(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("read notice failed", "error", err, "backoff", backoff)
			if !retry.SleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff

		c.metrics.NoticesConsumed.Inc()
		c.handle(ctx, raw)
	}
}

// handle applies one notice and commits it. Malformed notices are skipped
// and committed so they are not redelivered.
func (c *Consumer) handle(ctx context.Context, raw domain.RawNotice) {
	notice, err := domain.DecodeNotice(raw.Value)
	if err != nil {
		c.logger.Warn("decode notice failed, skipping message",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		c.metrics.NoticeErrors.Inc()
		c.commit(ctx, raw)
		return
	}

	snap := domain.Snapshot{Date: notice.Date}
	// A failed prewarm is already logged; the documents are fetched again on
	// the next page load.
	_ = c.refresher.Refresh(ctx, TriggerNotice, snap, notice.Paths()...)
	c.commit(ctx, raw)
}

func (c *Consumer) commit(ctx context.Context, raw domain.RawNotice) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		c.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
