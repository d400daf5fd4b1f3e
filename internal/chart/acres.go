package chart

import (
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/scale"
)

// Titles used by the composed boards.
const (
	TitleAcresRegional     = "Total Acres and Containment"
	TitleAcresNational     = "Cumulative Acres by GACC"
	TitlePersonnelRegional = "Personnel"
	TitlePersonnelNational = "Personnel by GACC"
	TitleResourcesRegional = "Resources"
	TitleResourcesNational = "Resources by GACC"
	TitleDetails           = "Details"
)

// Acres draws total acres per incident. Regional data adds a second bar with
// the contained acres and a second legend entry.
func Acres(data []domain.Incident, g Geometry, text string) *Group {
	panel := &Group{Class: "acres-chart"}
	if len(data) == 0 {
		return panel
	}

	showContainment := data[0].Regional()
	x := scale.NewBand(names(data), 0, g.InnerWidth(), bandPadding)
	var hi float64
	for _, d := range data {
		hi = max(hi, d.TotalAcres)
	}
	y := scale.NewLinear(0, hi, g.InnerHeight(), 0)
	w := min(x.Bandwidth()/2, barCap(g.IsMobile, 2))

	for _, d := range data {
		pos, _ := x.Position(d.Name)
		left := pos + g.Margin.Left
		panel.Add(bar("acres-bar", left, w, y, d.TotalAcres, g.Margin.Top,
			Style{Fill: colorCharcoal, Opacity: barOpacity}))
		if showContainment && d.ContainedPercent != nil {
			panel.Add(bar("containment-bar", left+x.Bandwidth()/2, w, y, d.ContainedAcres(), g.Margin.Top,
				Style{Fill: colorGreen}))
		}
	}

	panel.Add(bottomAxis(g, x), leftAxis(g, y), title(g, text))

	entries := []legendEntry{{label: "Acres", color: colorCharcoal}}
	if showContainment {
		entries = append(entries, legendEntry{label: "Containment", color: colorGreen})
	}
	width := 92.0
	if g.IsMobile {
		width = 87
	}
	panel.Add(legend(g, width, entries))
	return panel
}
