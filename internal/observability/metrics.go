package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wildfire_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Snapshot document metrics.
	DocumentFetches       *prometheus.CounterVec   // labels: document, outcome={success,not_found,malformed,error}
	DocumentFetchDuration *prometheus.HistogramVec // labels: source={http,dir}
	DocumentCache         *prometheus.CounterVec   // labels: result={hit,miss}
	CacheInvalidations    prometheus.Counter

	// Rendering metrics.
	Renders        *prometheus.CounterVec // labels: view={regional,national,overview}, format={html,svg,png,live}
	RenderDuration prometheus.Histogram
	LiveSessions   prometheus.Gauge

	// Refresh metrics.
	RefreshRuns     *prometheus.CounterVec // labels: trigger={schedule,notice}, outcome={success,error}
	NoticesConsumed prometheus.Counter
	NoticeErrors    prometheus.Counter
	ConsumerRunning prometheus.Gauge
	WatcherEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DocumentFetches,
		m.DocumentFetchDuration,
		m.DocumentCache,
		m.CacheInvalidations,
		m.Renders,
		m.RenderDuration,
		m.LiveSessions,
		m.RefreshRuns,
		m.NoticesConsumed,
		m.NoticeErrors,
		m.ConsumerRunning,
		m.WatcherEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DocumentFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_fetches_total",
			Help:      "Snapshot document fetches by document type and outcome.",
		}, []string{"document", "outcome"}),
		DocumentFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_fetch_duration_seconds",
			Help:      "Snapshot source read duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		DocumentCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_total",
			Help:      "Document cache lookups by result.",
		}, []string{"result"}),
		CacheInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_invalidations_total",
			Help:      "Cached documents dropped by purges, notices, and file changes.",
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Completed render passes by view and output format.",
		}, []string{"view", "format"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of composing and committing one board.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live dashboard sessions.",
		}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Snapshot refreshes by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		NoticesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_consumed_total",
			Help:      "Snapshot notices read from Kafka.",
		}),
		NoticeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notice_errors_total",
			Help:      "Snapshot notices skipped because they could not be decoded.",
		}),
		ConsumerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notice_consumer_running",
			Help:      "1 when the notice consumer is active, 0 when shut down.",
		}),
		WatcherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "data_watcher_enabled",
			Help:      "1 when the snapshot directory is watched for changes, 0 otherwise.",
		}),
	}
}
