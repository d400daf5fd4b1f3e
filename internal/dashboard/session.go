package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("session not found")

// View is the data behind one board.
type View struct {
	Kind      Kind
	Title     string
	Incidents []domain.Incident
}

// ViewLoader loads the view for a route.
type ViewLoader interface {
	LoadView(ctx context.Context, r Route) (View, error)
}

// Frame is one update delivered to a live viewer. Err is ErrNoData for an
// empty view, or the load error when the view could not be fetched.
type Frame struct {
	Route Route
	Board Board
	Err   error
}

// Publisher delivers frames to the viewer of a session.
type Publisher interface {
	Publish(sessionID string, f Frame)
}

// Session is one live viewer: a route, a viewport width, and the container
// redrawing its board.
type Session struct {
	ID string

	loader    ViewLoader
	publisher Publisher
	logger    *slog.Logger
	gens      Generations
	container *Container

	mu    sync.Mutex
	route Route
}

func newSession(id string, width float64, loader ViewLoader, pub Publisher, debounce time.Duration, clock clockwork.Clock, logger *slog.Logger) *Session {
	s := &Session{
		ID:        id,
		loader:    loader,
		publisher: pub,
		logger:    logger.With("session", id),
	}
	s.container = NewContainer(width, debounce, clock, s.render)
	return s
}

func (s *Session) render(b Board, err error) {
	s.publisher.Publish(s.ID, Frame{Route: s.Route(), Board: b, Err: err})
}

// Navigate loads route and replaces the board. A navigation that finishes
// after a newer one started is discarded; it returns false in that case.
func (s *Session) Navigate(ctx context.Context, route Route) (bool, error) {
	token := s.gens.Begin()
	view, err := s.loader.LoadView(ctx, route)

	applied := s.gens.Apply(token, func() {
		s.mu.Lock()
		s.route = route
		s.mu.Unlock()

		if err != nil {
			s.publisher.Publish(s.ID, Frame{Route: route, Err: err})
			return
		}
		s.container.SetData(view.Kind, view.Title, view.Incidents)
	})
	if !applied {
		s.logger.Debug("discarding stale navigation", "route", route.Path())
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("load %s: %w", route.Path(), err)
	}
	return true, nil
}

// Resize reports a new viewport width; the board redraws after the debounce.
func (s *Session) Resize(width float64) {
	s.container.Resize(width)
}

// Route returns the session's current route.
func (s *Session) Route() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// Board returns the latest render pass.
func (s *Session) Board() (Board, error) {
	return s.container.Board()
}

func (s *Session) close() {
	s.container.Stop()
}

// Sessions tracks open live sessions.
type Sessions struct {
	loader    ViewLoader
	publisher Publisher
	debounce  time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions creates an empty session registry.
func NewSessions(loader ViewLoader, pub Publisher, debounce time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Sessions {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Sessions{
		loader:    loader,
		publisher: pub,
		debounce:  debounce,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		sessions:  make(map[string]*Session),
	}
}

// Open registers a new session at the given width. The caller navigates it
// to its first route.
func (r *Sessions) Open(width float64) *Session {
	s := newSession(uuid.NewString(), width, r.loader, r.publisher, r.debounce, r.clock, r.logger)

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.metrics.LiveSessions.Set(float64(n))
	r.logger.Info("live session opened", "session", s.ID, "width", width)
	return s
}

// Get returns an open session.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close stops and forgets a session. Closing an unknown id is a no-op.
func (r *Sessions) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	r.metrics.LiveSessions.Set(float64(n))
	r.logger.Info("live session closed", "session", id)
}

// Len returns the number of open sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll stops every session, used on shutdown.
func (r *Sessions) CloseAll() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Close(id)
	}
}
