// Package loader fetches and decodes the documents behind each dashboard
// view. Every document is fetched independently; a failure is recorded in
// the section it belongs to and never prevents other sections from loading.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// ErrNoSummary is returned when the region summaries document has no entry
// for a region.
var ErrNoSummary = errors.New("no summary for region")

// prewarmConcurrency bounds concurrent region document fetches.
const prewarmConcurrency = 4

// Source fetches snapshot documents by slash-separated path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Options selects the snapshot a Loader reads.
type Options struct {
	// DateKey pins every load to one snapshot. When empty the key is the
	// current day in Location.
	DateKey  domain.DateKey
	Location *time.Location

	// Clock supplies "today"; defaults to the real clock.
	Clock clockwork.Clock
}

// Loader fetches snapshot documents for the current date key.
type Loader struct {
	source  Source
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Loader reading from source.
func New(source Source, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Loader{source: source, opts: opts, logger: logger, metrics: metrics}
}

// Snapshot returns the snapshot for the fixed date key, or for today.
func (l *Loader) Snapshot() domain.Snapshot {
	if l.opts.DateKey != "" {
		return domain.Snapshot{Date: l.opts.DateKey}
	}
	return domain.Snapshot{Date: domain.DateKeyFor(l.opts.Clock.Now(), l.opts.Location)}
}

// Raw returns the bytes of any document under the data root.
func (l *Loader) Raw(ctx context.Context, path string) ([]byte, error) {
	return fetchDoc(ctx, l, "raw", path, "", func(b []byte) ([]byte, error) { return b, nil })
}

// fetchDoc fetches and decodes one document, recording its outcome.
func fetchDoc[T any](ctx context.Context, l *Loader, doc, path, region string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	data, err := l.source.Fetch(ctx, path)
	if err == nil {
		v, decErr := decode(data)
		if decErr == nil {
			l.metrics.DocumentFetches.WithLabelValues(doc, "success").Inc()
			return v, nil
		}
		err = decErr
	}

	l.metrics.DocumentFetches.WithLabelValues(doc, outcome(err)).Inc()
	attrs := []any{"document", doc, "path", path, "error", err}
	if region != "" {
		attrs = append(attrs, "region", region)
	}
	l.logger.Warn("snapshot document unavailable", attrs...)
	return zero, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMalformed):
		return "malformed"
	default:
		return "error"
	}
}

// RegionNames fetches the region key. A missing or malformed key yields an
// empty RegionNames, so every region displays as "Region <id>".
func (l *Loader) RegionNames(ctx context.Context, snap domain.Snapshot) domain.RegionNames {
	names, err := fetchDoc(ctx, l, "region_key", snap.RegionKey(), "", domain.DecodeRegionNames)
	if err != nil {
		return domain.RegionNames{}
	}
	return names
}

// RegionIncidents fetches and normalizes one region's incident table.
func (l *Loader) RegionIncidents(ctx context.Context, snap domain.Snapshot, id string) ([]domain.Incident, error) {
	recs, err := fetchDoc(ctx, l, "region", snap.Region(id), id, domain.DecodeRegional)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll(recs), nil
}

// NationalIncidents fetches and normalizes the GACC rollup table.
func (l *Loader) NationalIncidents(ctx context.Context, snap domain.Snapshot) ([]domain.Incident, error) {
	recs, err := fetchDoc(ctx, l, "fire_summary", snap.FireSummary(), "", domain.DecodeNational)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll(recs), nil
}

// RegionSummary returns the predictive summary text for a region display
// name, or ErrNoSummary when the document has no entry for it.
func (l *Loader) RegionSummary(ctx context.Context, snap domain.Snapshot, name string) (string, error) {
	summaries, err := fetchDoc(ctx, l, "region_summaries", snap.RegionSummaries(), "", domain.DecodeRegionSummaries)
	if err != nil {
		return "", err
	}
	lines, ok := summaries.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoSummary, name)
	}
	return domain.FormatSummaryLines(lines), nil
}

// PredictiveSummary returns the national predictive services discussion.
func (l *Loader) PredictiveSummary(ctx context.Context, snap domain.Snapshot) (string, error) {
	return fetchDoc(ctx, l, "predictive_summary", snap.PredictiveSummary(), "", func(b []byte) (string, error) {
		return strings.TrimSpace(string(b)), nil
	})
}

// DailySummary returns the daily summary with IMSR boilerplate removed.
func (l *Loader) DailySummary(ctx context.Context, snap domain.Snapshot) (domain.DailySummary, error) {
	s, err := fetchDoc(ctx, l, "daily_summary", snap.DailySummary(), "", domain.DecodeDailySummary)
	if err != nil {
		return domain.DailySummary{}, err
	}
	s.Summary = domain.CleanSummary(s.Summary)
	return s, nil
}

// CheckReadiness reports ready once the current region key can be read.
func (l *Loader) CheckReadiness(ctx context.Context) error {
	snap := l.Snapshot()
	if _, err := l.source.Fetch(ctx, snap.RegionKey()); err != nil {
		return fmt.Errorf("snapshot %s: %w", snap.Date, err)
	}
	return nil
}

// Prewarm fetches every chartable document of a snapshot so later page loads
// are served from cache. Only a missing region key fails the prewarm; other
// documents may legitimately be absent and are just logged.
func (l *Loader) Prewarm(ctx context.Context, snap domain.Snapshot) error {
	names, err := fetchDoc(ctx, l, "region_key", snap.RegionKey(), "", domain.DecodeRegionNames)
	if err != nil {
		return fmt.Errorf("prewarm %s: %w", snap.Date, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prewarmConcurrency)
	g.Go(func() error {
		_, _ = l.NationalIncidents(ctx, snap)
		return nil
	})
	g.Go(func() error {
		_, _ = l.DailySummary(ctx, snap)
		return nil
	})
	g.Go(func() error {
		_, _ = fetchDoc(ctx, l, "region_summaries", snap.RegionSummaries(), "", domain.DecodeRegionSummaries)
		return nil
	})
	for _, id := range names.IDs() {
		g.Go(func() error {
			_, _ = l.RegionIncidents(ctx, snap, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	l.logger.Info("snapshot prewarmed", "date", snap.Date.String(), "regions", names.Len())
	return nil
}
