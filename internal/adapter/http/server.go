// Package http serves the dashboard pages, board exports, snapshot
// artifacts, live board sessions, and the health, readiness and metrics
// endpoints.
package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/svgcanvas"
	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/loader"
	obs "github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// defaultWidth is the viewport width assumed when a request does not say.
const defaultWidth = 1024

// defaultLiveGrace bounds how long an opened live session waits for its
// event stream subscriber.
const defaultLiveGrace = 30 * time.Second

// Loader loads the data behind each view.
type Loader interface {
	Region(ctx context.Context, id string) loader.RegionView
	National(ctx context.Context) loader.NationalView
	Overview(ctx context.Context) loader.OverviewView
	LoadView(ctx context.Context, r dashboard.Route) (dashboard.View, error)
	Raw(ctx context.Context, path string) ([]byte, error)
	CheckReadiness(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Addr            string
	Debounce        time.Duration
	LiveGrace       time.Duration
	ExportWidth     int
	ExportHeight    int
	DisplayLocation *time.Location
	Clock           clockwork.Clock
}

// Server is the dashboard HTTP server.
type Server struct {
	httpServer *http.Server
	loader     Loader
	exporter   svgcanvas.Exporter
	pages      *pages
	hub        *hub
	sessions   *dashboard.Sessions
	displayLoc *time.Location
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *obs.Metrics
}

// NewServer builds the server and its routes.
func NewServer(opts Options, ld Loader, logger *slog.Logger, metrics *obs.Metrics) *Server {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.DisplayLocation == nil {
		opts.DisplayLocation = time.UTC
	}
	if opts.LiveGrace <= 0 {
		opts.LiveGrace = defaultLiveGrace
	}
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        opts.Addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// No write timeout: live event streams stay open.
			IdleTimeout: 60 * time.Second,
		},
		loader:     ld,
		exporter:   svgcanvas.NewExporter(opts.ExportWidth, opts.ExportHeight),
		pages:      newPages(),
		displayLoc: opts.DisplayLocation,
		clock:      opts.Clock,
		logger:     logger,
		metrics:    metrics,
	}
	s.hub = newHub(opts.Clock, opts.LiveGrace, logger, metrics)
	s.sessions = dashboard.NewSessions(ld, s.hub, opts.Debounce, opts.Clock, logger, metrics)
	s.hub.attach(s.sessions)

	mux.HandleFunc("GET /healthz", observability.LivenessHandler())
	mux.HandleFunc("GET /readyz", observability.ReadinessHandler(ld))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", s.handleOverview)
	mux.HandleFunc("GET /region/{regionId}", s.handleRegion)
	mux.HandleFunc("GET /national", s.handleNational)
	mux.HandleFunc("GET /region/{regionId}/{file}", s.handleRegionExport)
	mux.HandleFunc("GET /national/{file}", s.handleNationalExport)
	mux.HandleFunc("GET /data/{path...}", s.handleData)

	mux.HandleFunc("POST /live", s.handleLiveOpen)
	mux.HandleFunc("GET /live/events", s.handleLiveEvents)
	mux.HandleFunc("POST /live/{id}/viewport", s.handleLiveViewport)
	mux.HandleFunc("POST /live/{id}/navigate", s.handleLiveNavigate)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown ends every live session and drains connections within the
// given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.CloseAll()
	s.hub.close()
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// Sessions returns the live session registry.
func (s *Server) Sessions() *dashboard.Sessions {
	return s.sessions
}

// widthParam reads the ?width= viewport width, defaulting when absent or
// not a positive finite number.
func widthParam(r *http.Request) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil || !validWidth(v) {
		return defaultWidth
	}
	return v
}

func validWidth(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func httpError(w http.ResponseWriter, status int, err error) {
	observability.WriteJSON(w, status, map[string]string{"error": err.Error()})
}

var errUnknownExport = errors.New("unknown export format")
