package chart

import (
	"math"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/scale"
)

// Personnel draws assigned personnel next to the day's change in personnel.
// The value axis extends below zero for decreases, which are drawn in red
// from a zero reference line.
func Personnel(data []domain.Incident, g Geometry, text string) *Group {
	panel := &Group{Class: "personnel-chart"}
	if len(data) == 0 {
		return panel
	}

	x := scale.NewBand(names(data), 0, g.InnerWidth(), bandPadding)
	low, high := personnelDomain(data)
	y := scale.NewLinear(low, high, g.InnerHeight(), 0)
	w := min(x.Bandwidth()/2, barCap(g.IsMobile, 2))

	for _, d := range data {
		pos, _ := x.Position(d.Name)
		left := pos + g.Margin.Left
		fill := colorGreen
		if d.ChangePersonnel < 0 {
			fill = colorDarkRed
		}
		panel.Add(
			bar("personnel-bar", left, w, y, float64(d.Personnel), g.Margin.Top,
				Style{Fill: colorCharcoal, Opacity: barOpacity}),
			bar("change-bar", left+x.Bandwidth()/2, w, y, float64(d.ChangePersonnel), g.Margin.Top,
				Style{Fill: fill, Opacity: barOpacity}),
		)
	}

	panel.Add(bottomAxis(g, x), leftAxis(g, y))

	zero := y.Map(0) + g.Margin.Top
	panel.Add(
		Line{Class: "zero-line", X1: g.Margin.Left, Y1: zero, X2: g.Margin.Left + g.InnerWidth(), Y2: zero,
			Style: Style{Stroke: "black", StrokeWidth: 1}},
		title(g, text),
	)

	width := 92.0
	if g.IsMobile {
		width = 82
	}
	panel.Add(legend(g, width, []legendEntry{
		{label: "Total", color: colorCharcoal},
		{label: "Change +", color: colorGreen},
		{label: "Change -", color: colorDarkRed},
	}))
	return panel
}

// personnelDomain spans the largest decrease (with 10% headroom) up to the
// largest personnel count or change magnitude. The lower bound never rises
// above zero so the zero line stays inside the plot.
func personnelDomain(data []domain.Incident) (float64, float64) {
	minChange := float64(data[0].ChangePersonnel)
	var top float64
	for _, d := range data {
		c := float64(d.ChangePersonnel)
		minChange = min(minChange, c)
		top = max(top, float64(d.Personnel), math.Abs(c))
	}
	return min(minChange*1.1, 0), top
}
