package chart

import (
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/scale"
)

// Resources draws crews, engines and helicopters side by side per incident.
func Resources(data []domain.Incident, g Geometry, text string) *Group {
	panel := &Group{Class: "resources-chart"}
	if len(data) == 0 {
		return panel
	}

	x := scale.NewBand(names(data), 0, g.InnerWidth(), bandPadding)
	var top float64
	for _, d := range data {
		top = max(top, float64(d.Crews), float64(d.Engines), float64(d.Helicopters))
	}
	y := scale.NewLinear(0, top, g.InnerHeight(), 0)
	step := x.Bandwidth() / 3
	w := min(step, barCap(g.IsMobile, 3))

	series := []struct {
		class string
		color string
		value func(domain.Incident) int
	}{
		{"crews-bar", colorDarkGrey, func(d domain.Incident) int { return d.Crews }},
		{"engines-bar", colorMediumGrey, func(d domain.Incident) int { return d.Engines }},
		{"helicopters-bar", colorLightGrey, func(d domain.Incident) int { return d.Helicopters }},
	}
	for _, d := range data {
		pos, _ := x.Position(d.Name)
		for i, s := range series {
			left := pos + float64(i)*step + g.Margin.Left
			panel.Add(bar(s.class, left, w, y, float64(s.value(d)), g.Margin.Top,
				Style{Fill: s.color, Opacity: barOpacity}))
		}
	}

	panel.Add(bottomAxis(g, x), leftAxis(g, y), title(g, text))

	width := 92.0
	if g.IsMobile {
		width = 82
	}
	panel.Add(legend(g, width, []legendEntry{
		{label: "Crews", color: colorDarkGrey, opacity: barOpacity},
		{label: "Engines", color: colorMediumGrey, opacity: barOpacity},
		{label: "Helicopters", color: colorLightGrey, opacity: barOpacity},
	}))
	return panel
}
