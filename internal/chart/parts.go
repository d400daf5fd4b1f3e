package chart

import (
	"math"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/scale"
)

const (
	colorCharcoal   = "#36454F"
	colorGreen      = "#4e8a4e"
	colorDarkRed    = "#8b2513"
	colorDarkGrey   = "#696969"
	colorMediumGrey = "#A9A9A9"
	colorLightGrey  = "#D3D3D3"
	colorBorder     = "#ccc"
	colorText       = "#000"

	barOpacity    = 0.7
	axisTickCount = 10
	axisTickSize  = 6
	axisStroke    = 0.1
	labelRotation = -45
)

func names(data []domain.Incident) []string {
	out := make([]string, len(data))
	for i, d := range data {
		out[i] = d.Name
	}
	return out
}

// title draws the panel title centered above the plot.
func title(g Geometry, text string) Text {
	return Text{
		Class:   "title",
		X:       g.Width / 2,
		Y:       g.Margin.Top - 10,
		Content: text,
		Style:   Style{FontSize: fontsFor(g.IsMobile).title, Anchor: "middle"},
	}
}

// bottomAxis draws the category axis along the plot baseline with rotated,
// untruncated labels.
func bottomAxis(g Geometry, x scale.Band) *Group {
	axis := &Group{Class: "x-axis", X: g.Margin.Left, Y: g.Margin.Top + g.InnerHeight()}
	axis.Add(Line{Class: "domain", X2: g.InnerWidth(), Style: Style{Stroke: colorText, StrokeWidth: 1}})

	dy := "0.71em"
	if g.IsMobile {
		dy = "1.5em"
	}
	size := fontsFor(g.IsMobile).axis
	for _, name := range x.Names() {
		pos, _ := x.Position(name)
		tick := &Group{Class: "tick", X: pos + x.Bandwidth()/2}
		tick.Add(Text{
			Y:       3,
			Dy:      dy,
			Rotate:  labelRotation,
			Content: name,
			Style:   Style{Fill: colorText, FontSize: size, Anchor: "end"},
		})
		axis.Add(tick)
	}
	return axis
}

// leftAxis draws the value axis with hairline ticks and thousands formatting.
func leftAxis(g Geometry, y scale.Linear) *Group {
	axis := &Group{Class: "y-axis", X: g.Margin.Left, Y: g.Margin.Top}
	hairline := Style{Stroke: colorText, StrokeWidth: axisStroke}
	axis.Add(Line{Class: "domain", Y1: 0, Y2: g.InnerHeight(), Style: hairline})

	size := fontsFor(g.IsMobile).axis
	for _, v := range y.Ticks(axisTickCount) {
		py := y.Map(v)
		tick := &Group{Class: "tick", Y: py}
		tick.Add(
			Line{X1: -axisTickSize, Style: hairline},
			Text{
				X:       -(axisTickSize + 3),
				Dy:      "0.32em",
				Content: FormatCount(v),
				Style:   Style{Fill: colorText, FontSize: size, Anchor: "end"},
			},
		)
		axis.Add(tick)
	}
	return axis
}

type legendEntry struct {
	label   string
	color   string
	opacity float64
}

// legend draws a bordered box of swatch and label pairs in the top-left of
// the plot. Its height follows the number of entries.
func legend(g Geometry, width float64, entries []legendEntry) *Group {
	mobile := g.IsMobile
	box := &Group{Class: "legend", X: g.Margin.Left + 10, Y: g.Margin.Top + 20}
	box.Add(Rect{
		W: width, H: legendHeight(len(entries), mobile), RX: 3,
		Style: Style{Fill: "white", Stroke: colorBorder, StrokeWidth: 1},
	})

	swatch, pitch, textX, textY := 15.0, 20.0, 25.0, 18.0
	if mobile {
		swatch, pitch, textX, textY = 10, 15, 20, 13
	}
	size := fontsFor(mobile).legend
	for i, e := range entries {
		off := float64(i) * pitch
		box.Add(
			Rect{X: 5, Y: 5 + off, W: swatch, H: swatch, Style: Style{Fill: e.color, Opacity: e.opacity}},
			Text{X: textX, Y: textY + off, Content: e.label, Style: Style{FontSize: size}},
		)
	}
	return box
}

func legendHeight(entries int, mobile bool) float64 {
	const item, spacing = 20.0, 8.0
	if entries <= 1 {
		if mobile {
			return item + 2
		}
		return item + 10
	}
	h := float64(entries)*item + float64(entries-1)*spacing
	if mobile {
		h -= 8
	}
	return h
}

// bar returns a rect spanning value v down (or up) to the zero baseline.
func bar(class string, x, w float64, y scale.Linear, v float64, top float64, st Style) Rect {
	base := y.Map(0)
	pos := y.Map(v)
	return Rect{
		Class: class,
		X:     x,
		Y:     min(pos, base) + top,
		W:     w,
		H:     math.Abs(base - pos),
		Style: st,
	}
}

