package chart

import "math"

const (
	// MobileBreakpoint is the widest viewport, in logical pixels, laid out as mobile.
	MobileBreakpoint = 768

	// MaxEffectiveWidth caps the width charts are laid out for.
	MaxEffectiveWidth = 1300

	bandPadding = 0.05
)

// Margin is the space reserved inside a chart for its title and axes.
type Margin struct {
	Top, Right, Bottom, Left float64
}

var (
	// ChartMargin is the internal margin of the bar charts.
	ChartMargin = Margin{Top: 30, Right: 20, Bottom: 30, Left: 60}

	// TableMargin is the internal margin of the details table.
	TableMargin = Margin{Top: 30, Right: 10, Bottom: 5, Left: 10}
)

// Geometry is the size of one chart panel. It is derived for a single render
// pass and never stored.
type Geometry struct {
	Width    float64
	Height   float64
	Margin   Margin
	IsMobile bool
}

// NewGeometry returns a panel geometry with the bar chart margin.
func NewGeometry(width, height float64, mobile bool) Geometry {
	return Geometry{Width: width, Height: height, Margin: ChartMargin, IsMobile: mobile}
}

// InnerWidth is the plot width inside the margin, never negative.
func (g Geometry) InnerWidth() float64 {
	return max(0, g.Width-g.Margin.Left-g.Margin.Right)
}

// InnerHeight is the plot height inside the margin, never negative.
func (g Geometry) InnerHeight() float64 {
	return max(0, g.Height-g.Margin.Top-g.Margin.Bottom)
}

// IsMobile reports whether a viewport of the given width uses the mobile layout.
func IsMobile(viewportWidth float64) bool {
	return viewportWidth <= MobileBreakpoint
}

// EffectiveWidth clamps a viewport width to [0, MaxEffectiveWidth]. NaN
// maps to 0.
func EffectiveWidth(viewportWidth float64) float64 {
	if math.IsNaN(viewportWidth) {
		return 0
	}
	return min(max(viewportWidth, 0), MaxEffectiveWidth)
}

type fontSizes struct {
	title, axis, legend float64
}

func fontsFor(mobile bool) fontSizes {
	if mobile {
		return fontSizes{title: 10, axis: 8, legend: 8}
	}
	return fontSizes{title: 12, axis: 10, legend: 10}
}

// barCap is the widest a single series bar may be.
func barCap(mobile bool, series int) float64 {
	switch {
	case series >= 3 && mobile:
		return 15
	case mobile:
		return 20
	default:
		return 40
	}
}
