package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/svgcanvas"
	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/loader"
)

// Placeholder texts for sections that could not be loaded.
const (
	msgDailyUnavailable    = "Summary not available."
	msgNoRegionSummary     = "No summary available for this region."
	msgRegionSummaryFailed = "Could not load region summary."
	msgPredictiveFailed    = "Could not load predictive summary."
	msgRegionDataFailed    = "Region data not found."
	msgNationalDataFailed  = "National summary data not found."
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	overview *template.Template
	region   *template.Template
	national *template.Template
}

func newPages() *pages {
	parse := func(name string) *template.Template {
		return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return &pages{
		overview: parse("overview.html"),
		region:   parse("region.html"),
		national: parse("national.html"),
	}
}

type navLink struct {
	ID, Name string
}

// panel is a rendered chart, or the message shown in its place.
type panel struct {
	SVG     template.HTML
	Message string
}

// textSection is summary text, or the message shown in its place. Both
// empty means the section is omitted.
type textSection struct {
	Text    string
	Message string
}

type pageBase struct {
	Title string
	Date  string
	Nav   []navLink

	// Live is the route a live session is opened for; empty disables it.
	Live string
}

type overviewPage struct {
	pageBase
	Header   []string
	Summary  textSection
	National panel
	Regions  []regionPanel
}

type regionPanel struct {
	ID   string
	Name string
	panel
}

type regionPage struct {
	pageBase
	ID        string
	Name      string
	Board     panel
	Summary   textSection
	ExportSVG string
	ExportPNG string
	Image     string
}

type nationalPage struct {
	pageBase
	Board      panel
	Predictive textSection
	ExportSVG  string
	ExportPNG  string
	Image      string
}

func (s *Server) base(title string, names domain.RegionNames, live string) pageBase {
	b := pageBase{
		Title: title,
		Date:  domain.DisplayDate(s.clock.Now(), s.displayLoc),
		Live:  live,
	}
	for _, id := range names.IDs() {
		b.Nav = append(b.Nav, navLink{ID: id, Name: names.Name(id)})
	}
	return b
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	width := widthParam(r)
	v := s.loader.Overview(r.Context())

	p := overviewPage{pageBase: s.base("Fire Overview", v.Names, "")}
	if v.Daily.OK() {
		p.Header = v.Daily.Value.Header
		p.Summary.Text = v.Daily.Value.Summary
	} else {
		p.Summary.Message = msgDailyUnavailable
	}

	p.National = s.miniPanel(v.National, width, chart.TitleAcresNational, msgNationalDataFailed, dashboard.KindNational)
	for _, rp := range v.Regions {
		p.Regions = append(p.Regions, regionPanel{
			ID:    rp.ID,
			Name:  rp.Name,
			panel: s.miniPanel(rp.Incidents, width, dashboard.RegionMiniTitle(rp.Name), msgRegionDataFailed, dashboard.KindRegional),
		})
	}
	s.metrics.Renders.WithLabelValues("overview", "html").Inc()
	s.writePage(w, s.pages.overview, p)
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("regionId")
	route, err := dashboard.ParseRoute("/region/" + id)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	width := widthParam(r)
	v := s.loader.Region(r.Context(), id)

	p := regionPage{
		pageBase:  s.base(v.Name, v.Names, route.Path()),
		ID:        id,
		Name:      v.Name,
		Board:     s.boardPanel(v.Incidents, width, dashboard.KindRegional, v.Name, msgRegionDataFailed),
		ExportSVG: route.Path() + "/export.svg",
		ExportPNG: route.Path() + "/export.png",
		Image:     "/data/" + v.Snapshot.RegionImage(id),
	}
	switch {
	case v.Summary == nil:
	case v.Summary.OK():
		p.Summary.Text = v.Summary.Value
	case errors.Is(v.Summary.Err, loader.ErrNoSummary):
		p.Summary.Message = msgNoRegionSummary
	default:
		p.Summary.Message = msgRegionSummaryFailed
	}
	s.writePage(w, s.pages.region, p)
}

func (s *Server) handleNational(w http.ResponseWriter, r *http.Request) {
	width := widthParam(r)
	v := s.loader.National(r.Context())

	route := dashboard.NationalRoute
	p := nationalPage{
		pageBase:  s.base(loader.NationalTitle, v.Names, route.Path()),
		Board:     s.boardPanel(v.Incidents, width, dashboard.KindNational, loader.NationalTitle, msgNationalDataFailed),
		ExportSVG: route.Path() + "/export.svg",
		ExportPNG: route.Path() + "/export.png",
		Image:     "/data/" + v.Snapshot.NationalImage(),
	}
	if v.Predictive.OK() {
		p.Predictive.Text = v.Predictive.Value
	} else {
		p.Predictive.Message = msgPredictiveFailed
	}
	s.writePage(w, s.pages.national, p)
}

// boardPanel composes and commits a full board for a page.
func (s *Server) boardPanel(data loader.Section[[]domain.Incident], width float64, kind dashboard.Kind, title, failed string) panel {
	if !data.OK() {
		return panel{Message: failed}
	}
	start := time.Now()
	board, err := dashboard.Compose(data.Value, width, kind, title)
	if errors.Is(err, dashboard.ErrNoData) {
		return panel{Message: kind.NoDataMessage()}
	}
	p := s.commit(board.Scene, err)
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	s.metrics.Renders.WithLabelValues(kind.String(), "html").Inc()
	return p
}

// miniPanel renders one overview acres chart.
func (s *Server) miniPanel(data loader.Section[[]domain.Incident], width float64, title, failed string, kind dashboard.Kind) panel {
	if !data.OK() {
		return panel{Message: failed}
	}
	scene, err := dashboard.MiniAcres(data.Value, width, title)
	if errors.Is(err, dashboard.ErrNoData) {
		return panel{Message: kind.NoDataMessage()}
	}
	return s.commit(scene, err)
}

func (s *Server) commit(scene chart.Scene, err error) panel {
	if err == nil {
		var doc []byte
		doc, err = svgcanvas.Render(scene, svgcanvas.Options{Fragment: true})
		if err == nil {
			return panel{SVG: template.HTML(doc)} //nolint:gosec // generated by svgcanvas with escaped text
		}
	}
	s.logger.Warn("render failed", "title", scene.Title, "error", err)
	return panel{Message: "Chart could not be rendered."}
}

func (s *Server) writePage(w http.ResponseWriter, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("template execution failed", "error", err)
		httpError(w, http.StatusInternalServerError, fmt.Errorf("render page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
