// Package dashboard composes the four chart panels into boards and keeps
// boards current as viewers resize and navigate.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// ErrNoData is returned when a board is requested for an empty incident list.
// Callers show a placeholder instead of charts.
var ErrNoData = errors.New("no chartable data")

// Kind selects regional or national titles and table columns.
type Kind int

const (
	KindRegional Kind = iota
	KindNational
)

func (k Kind) String() string {
	if k == KindNational {
		return "national"
	}
	return "regional"
}

// NoDataMessage is shown in place of a board with no incidents.
func (k Kind) NoDataMessage() string {
	if k == KindNational {
		return "No data available for national summary."
	}
	return "No data available for this region."
}

// Cell is the position and size of one panel on a board.
type Cell struct {
	X, Y          float64
	Width, Height float64
}

// Layout places the four panels. Desktop viewports get a 2x2 grid and
// mobile viewports a single column.
type Layout struct {
	Width, Height float64
	Mobile        bool
	Cells         [4]Cell
}

const (
	desktopBoardHeight = 800
	desktopGap         = 40
	desktopRowGap      = 60
	desktopTopOffset   = 40

	// Mobile panels are 0.8 of the width tall, capped.
	mobileHeightRatio   = 0.8
	mobileMaxCellHeight = 300
	mobileRowGap     = 40
)

// NewLayout computes the board layout for a viewport width.
func NewLayout(viewportWidth float64) Layout {
	width := chart.EffectiveWidth(viewportWidth)
	l := Layout{Width: width, Mobile: chart.IsMobile(viewportWidth)}

	if l.Mobile {
		h := min(width*mobileHeightRatio, mobileMaxCellHeight)
		for i := range l.Cells {
			l.Cells[i] = Cell{
				Y:      float64(i) * (h + mobileRowGap),
				Width:  width,
				Height: h,
			}
		}
		l.Height = l.Cells[3].Y + h + mobileRowGap
		return l
	}

	w := max(0, (width-desktopGap)/2)
	h := float64(desktopBoardHeight-desktopRowGap) / 2
	row2 := h + desktopRowGap + desktopTopOffset
	l.Cells = [4]Cell{
		{X: 0, Y: desktopTopOffset, Width: w, Height: h},
		{X: w + desktopGap, Y: desktopTopOffset, Width: w, Height: h},
		{X: 0, Y: row2, Width: w, Height: h},
		{X: w + desktopGap, Y: row2, Width: w, Height: h},
	}
	l.Height = row2 + h + desktopRowGap
	return l
}

// Board is one composed render pass.
type Board struct {
	Kind   Kind
	Layout Layout
	Scene  chart.Scene
}

type renderer func([]domain.Incident, chart.Geometry, string) *chart.Group

// Compose renders Acres, Personnel, Resources and Details, in that order,
// into the cells of the layout for viewportWidth. Every call draws from
// scratch.
func Compose(data []domain.Incident, viewportWidth float64, kind Kind, title string) (Board, error) {
	if len(data) == 0 {
		return Board{}, ErrNoData
	}

	layout := NewLayout(viewportWidth)
	panels := []struct {
		render renderer
		title  string
	}{
		{chart.Acres, titleFor(kind, chart.TitleAcresRegional, chart.TitleAcresNational)},
		{chart.Personnel, titleFor(kind, chart.TitlePersonnelRegional, chart.TitlePersonnelNational)},
		{chart.Resources, titleFor(kind, chart.TitleResourcesRegional, chart.TitleResourcesNational)},
		{chart.Details, chart.TitleDetails},
	}

	scene := chart.Scene{Width: layout.Width, Height: layout.Height, Title: title}
	for i, p := range panels {
		cell := layout.Cells[i]
		g := chart.NewGeometry(cell.Width, cell.Height, layout.Mobile)
		panel := p.render(data, g, p.title)
		panel.X, panel.Y = cell.X, cell.Y
		scene.Root.Add(panel)
	}
	return Board{Kind: kind, Layout: layout, Scene: scene}, nil
}

const (
	miniMaxWidth = 600
	miniHeight   = 300

	// miniLabelRoom leaves space below the plot for rotated category labels.
	miniLabelRoom = 90
)

// MiniAcres renders a standalone acres panel for the overview page, at most
// 600px wide.
func MiniAcres(data []domain.Incident, viewportWidth float64, title string) (chart.Scene, error) {
	if len(data) == 0 {
		return chart.Scene{}, ErrNoData
	}
	width := min(chart.EffectiveWidth(viewportWidth), miniMaxWidth)
	g := chart.NewGeometry(width, miniHeight, chart.IsMobile(viewportWidth))
	scene := chart.Scene{Width: width, Height: miniHeight + miniLabelRoom, Title: title}
	scene.Root.Add(chart.Acres(data, g, title))
	return scene, nil
}

// RegionMiniTitle is the overview title of a region's acres panel.
func RegionMiniTitle(name string) string {
	return fmt.Sprintf("%s - Acres and Containment", name)
}

func titleFor(kind Kind, regional, national string) string {
	if kind == KindNational {
		return national
	}
	return regional
}
