// Package chart turns normalized incidents into draw-command scenes.
//
// Renderers are pure functions of their data and Geometry. They never touch
// a concrete drawing surface; adapter/svgcanvas commits the resulting scene.
package chart

// Style carries presentation attributes. Zero values mean "not set".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64
	FontFamily  string
	FontWeight  string
	Anchor      string
}

// Shape is one draw command.
type Shape interface {
	shape()
}

// Rect draws a rectangle, optionally with rounded corners.
type Rect struct {
	Class      string
	X, Y, W, H float64
	RX         float64
	Style
}

// Line draws a straight segment.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Style
}

// Text draws a string at (X, Y). Rotate is applied around the text origin
// in degrees, and Dy is an em offset such as "0.71em".
type Text struct {
	Class   string
	X, Y    float64
	Dy      string
	Rotate  float64
	Content string
	Style
}

// Group translates its items by (X, Y).
type Group struct {
	Class string
	X, Y  float64
	Items []Shape
}

func (Rect) shape()   {}
func (Line) shape()   {}
func (Text) shape()   {}
func (*Group) shape() {}

// Add appends shapes to the group.
func (g *Group) Add(shapes ...Shape) {
	g.Items = append(g.Items, shapes...)
}

// Scene is a complete drawing of the given size.
type Scene struct {
	Width, Height float64
	Title         string
	Root          Group
}

// Collect returns every shape of type T under g, depth first, with
// coordinates left relative to their enclosing group.
func Collect[T Shape](g *Group) []T {
	var out []T
	for _, s := range g.Items {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
		if child, ok := s.(*Group); ok {
			out = append(out, Collect[T](child)...)
		}
	}
	return out
}

// WithClass filters rects by class.
func WithClass(rects []Rect, class string) []Rect {
	var out []Rect
	for _, r := range rects {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out
}
