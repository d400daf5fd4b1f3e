package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/r3labs/sse/v2"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/svgcanvas"
	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	obs "github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// boardEvent is the SSE event name carrying a rendered board fragment.
const boardEvent = "board"

// maxLiveBody caps live request bodies.
const maxLiveBody = 4 << 10

// hub fans rendered session frames out to one SSE stream per session.
// A stream's last fragment is kept so a subscriber that connects after the
// first render still receives it. A session nobody subscribes to within the
// grace period is discarded.
type hub struct {
	events   *sse.Server
	sessions *dashboard.Sessions
	clock    clockwork.Clock
	grace    time.Duration
	logger   *slog.Logger
	metrics  *obs.Metrics

	mu        sync.Mutex
	last      map[string]*sse.Event
	unclaimed map[string]clockwork.Timer
}

func newHub(clock clockwork.Clock, grace time.Duration, logger *slog.Logger, metrics *obs.Metrics) *hub {
	h := &hub{
		events:    sse.New(),
		clock:     clock,
		grace:     grace,
		logger:    logger,
		metrics:   metrics,
		last:      make(map[string]*sse.Event),
		unclaimed: make(map[string]clockwork.Timer),
	}
	h.events.AutoReplay = false
	h.events.SplitData = true
	h.events.OnSubscribe = h.subscribed
	h.events.OnUnsubscribe = h.unsubscribed
	return h
}

func (h *hub) attach(sessions *dashboard.Sessions) {
	h.sessions = sessions
}

func (h *hub) open(id string) {
	h.events.CreateStream(id)

	h.mu.Lock()
	h.unclaimed[id] = h.clock.AfterFunc(h.grace, func() { h.expire(id) })
	h.mu.Unlock()
}

// expire drops a session whose subscriber never arrived.
func (h *hub) expire(id string) {
	h.mu.Lock()
	if _, ok := h.unclaimed[id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.unclaimed, id)
	delete(h.last, id)
	h.mu.Unlock()

	h.logger.Info("live session expired without subscriber", "session", id, "grace", h.grace)
	h.sessions.Close(id)
	h.events.RemoveStream(id)
}

func (h *hub) close() {
	h.mu.Lock()
	for id, t := range h.unclaimed {
		t.Stop()
		delete(h.unclaimed, id)
	}
	h.mu.Unlock()
	h.events.Close()
}

// Publish renders a frame and sends it to the session's stream.
func (h *hub) Publish(sessionID string, f dashboard.Frame) {
	ev := &sse.Event{Event: []byte(boardEvent), Data: h.fragment(f)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.events.StreamExists(sessionID) {
		return
	}
	h.last[sessionID] = ev
	h.events.Publish(sessionID, ev)
}

func (h *hub) fragment(f dashboard.Frame) []byte {
	kind := f.Route.Kind
	switch {
	case errors.Is(f.Err, dashboard.ErrNoData):
		return placeholder(kind.NoDataMessage())
	case f.Err != nil:
		if kind == dashboard.KindNational {
			return placeholder(msgNationalDataFailed)
		}
		return placeholder(msgRegionDataFailed)
	}

	start := time.Now()
	doc, err := svgcanvas.Render(f.Board.Scene, svgcanvas.Options{Fragment: true})
	if err != nil {
		h.logger.Warn("live render failed", "route", f.Route.String(), "error", err)
		return placeholder("Chart could not be rendered.")
	}
	h.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	h.metrics.Renders.WithLabelValues(kind.String(), "live").Inc()
	return doc
}

func placeholder(msg string) []byte {
	return []byte(`<p class="placeholder">` + template.HTMLEscapeString(msg) + `</p>`)
}

func (h *hub) subscribed(id string, _ *sse.Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.unclaimed[id]; ok {
		t.Stop()
		delete(h.unclaimed, id)
	}
	if ev, ok := h.last[id]; ok {
		h.events.Publish(id, ev)
	}
}

// unsubscribed ends the session once its viewer disconnects.
func (h *hub) unsubscribed(id string, _ *sse.Subscriber) {
	h.sessions.Close(id)
	h.events.RemoveStream(id)

	h.mu.Lock()
	delete(h.last, id)
	h.mu.Unlock()
}

type liveOpenRequest struct {
	Route string  `json:"route"`
	Width float64 `json:"width"`
}

type liveSession struct {
	ID     string `json:"id"`
	Route  string `json:"route"`
	Events string `json:"events"`
}

type viewportRequest struct {
	Width float64 `json:"width"`
}

type navigateRequest struct {
	Route string `json:"route"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLiveBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// handleLiveOpen starts a session, navigates it to its first route, and
// returns the stream to subscribe to.
func (s *Server) handleLiveOpen(w http.ResponseWriter, r *http.Request) {
	var req liveOpenRequest
	if err := decodeBody(w, r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	route, err := dashboard.ParseRoute(req.Route)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	width := req.Width
	if !validWidth(width) {
		width = defaultWidth
	}

	sess := s.sessions.Open(width)
	s.hub.open(sess.ID)
	if _, err := sess.Navigate(r.Context(), route); err != nil {
		s.logger.Warn("live navigation failed", "session", sess.ID, "error", err)
	}

	observability.WriteJSON(w, http.StatusCreated, liveSession{
		ID:     sess.ID,
		Route:  route.Path(),
		Events: "/live/events?stream=" + sess.ID,
	})
}

func (s *Server) handleLiveEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.Get(r.URL.Query().Get("stream")); err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}
	s.hub.events.ServeHTTP(w, r)
}

func (s *Server) handleLiveViewport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}
	var req viewportRequest
	if err := decodeBody(w, r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	if !validWidth(req.Width) {
		httpError(w, http.StatusBadRequest, fmt.Errorf("invalid width %v", req.Width))
		return
	}
	sess.Resize(req.Width)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleLiveNavigate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}
	var req navigateRequest
	if err := decodeBody(w, r, &req); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	route, err := dashboard.ParseRoute(req.Route)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	applied, err := sess.Navigate(r.Context(), route)
	if err != nil {
		s.logger.Warn("live navigation failed", "session", sess.ID, "error", err)
	}
	observability.WriteJSON(w, http.StatusOK, map[string]any{
		"route":   route.Path(),
		"applied": applied,
	})
}
