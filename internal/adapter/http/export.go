package http

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/svgcanvas"
	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

func (s *Server) handleRegionExport(w http.ResponseWriter, r *http.Request) {
	route, err := dashboard.ParseRoute("/region/" + r.PathValue("regionId"))
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	s.export(w, r, route, r.PathValue("file"))
}

func (s *Server) handleNationalExport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, dashboard.NationalRoute, r.PathValue("file"))
}

// export serves export.svg or export.png for a route. The board is composed
// at full desktop width regardless of the viewer's viewport.
func (s *Server) export(w http.ResponseWriter, r *http.Request, route dashboard.Route, file string) {
	ext, ok := strings.CutPrefix(file, "export.")
	if !ok || (ext != "svg" && ext != "png") {
		httpError(w, http.StatusNotFound, fmt.Errorf("%w: %q", errUnknownExport, file))
		return
	}

	view, err := s.loader.LoadView(r.Context(), route)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpError(w, http.StatusNotFound, err)
		return
	case err != nil:
		httpError(w, http.StatusBadGateway, err)
		return
	}

	start := time.Now()
	board, err := dashboard.Compose(view.Incidents, chart.MaxEffectiveWidth, view.Kind, view.Title)
	if err != nil {
		httpError(w, http.StatusNotFound, fmt.Errorf("%s: %w", route, err))
		return
	}

	var buf bytes.Buffer
	if ext == "svg" {
		err = s.exporter.SVG(&buf, board.Scene)
	} else {
		err = s.exporter.PNG(&buf, board.Scene)
	}
	if err != nil {
		s.logger.Error("export failed", "route", route.String(), "format", ext, "error", err)
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	s.metrics.Renders.WithLabelValues(view.Kind.String(), ext).Inc()

	now := s.clock.Now()
	name := svgcanvas.NationalFilename(domain.ExportDate(now), ext)
	if route.Kind == dashboard.KindRegional {
		name = svgcanvas.RegionFilename(route.RegionID, domain.ExportDate(now), ext)
	}
	w.Header().Set("Content-Type", mime.TypeByExtension("."+ext))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(buf.Bytes())
}

// handleData streams a snapshot artifact from the configured source.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	p := r.PathValue("path")
	if !fs.ValidPath(p) || p == "." {
		httpError(w, http.StatusBadRequest, fmt.Errorf("invalid data path %q", p))
		return
	}

	data, err := s.loader.Raw(r.Context(), p)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpError(w, http.StatusNotFound, err)
		return
	case err != nil:
		httpError(w, http.StatusBadGateway, err)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(p))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ctype)
	_, _ = w.Write(data)
}
