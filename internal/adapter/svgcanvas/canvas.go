// Package svgcanvas commits chart scenes to SVG documents and rasterizes
// them for image export.
package svgcanvas

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
)

// Options controls how a scene is written.
type Options struct {
	// Width and Height override the document size. When set, the scene's own
	// size becomes the viewBox so the drawing scales to fit.
	Width, Height float64

	// StripClasses omits class attributes.
	StripClasses bool

	// Fragment omits the XML prolog so the output can be inlined in HTML.
	Fragment bool
}

// Commit writes s as an SVG document to w.
func Commit(w io.Writer, s chart.Scene, opts Options) error {
	ew := &errWriter{w: w}
	out := io.Writer(ew)
	var buf *bytes.Buffer
	if opts.Fragment {
		buf = &bytes.Buffer{}
		out = buf
	}

	c := &committer{canvas: svg.New(out), classes: !opts.StripClasses}
	if opts.Width > 0 && opts.Height > 0 {
		c.canvas.Startview(opts.Width, opts.Height, 0, 0, s.Width, s.Height)
	} else {
		c.canvas.Start(s.Width, s.Height)
	}
	if s.Title != "" {
		c.canvas.Title(s.Title)
	}
	c.group(&s.Root)
	c.canvas.End()

	if buf != nil {
		doc := buf.Bytes()
		if i := bytes.Index(doc, []byte("<svg")); i > 0 {
			doc = doc[i:]
		}
		_, _ = ew.Write(doc)
	}
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// Render returns s as an SVG document.
func Render(s chart.Scene, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Commit(&buf, s, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type committer struct {
	canvas  *svg.SVG
	classes bool
}

func (c *committer) group(g *chart.Group) {
	var attrs []string
	if g.X != 0 || g.Y != 0 {
		attrs = append(attrs, attr("transform", "translate("+num(g.X)+","+num(g.Y)+")"))
	}
	if c.classes && g.Class != "" {
		attrs = append(attrs, attr("class", g.Class))
	}
	wrapped := len(attrs) > 0
	if wrapped {
		c.canvas.Group(attrs...)
	}
	for _, item := range g.Items {
		c.shape(item)
	}
	if wrapped {
		c.canvas.Gend()
	}
}

func (c *committer) shape(s chart.Shape) {
	switch v := s.(type) {
	case *chart.Group:
		c.group(v)
	case chart.Rect:
		attrs := c.attrs(v.Class, v.Style)
		if v.RX > 0 {
			c.canvas.Roundrect(v.X, v.Y, v.W, v.H, v.RX, v.RX, attrs...)
			return
		}
		c.canvas.Rect(v.X, v.Y, v.W, v.H, attrs...)
	case chart.Line:
		st := v.Style
		if st.Stroke == "" {
			st.Stroke = "black"
		}
		c.canvas.Line(v.X1, v.Y1, v.X2, v.Y2, c.attrs(v.Class, st)...)
	case chart.Text:
		attrs := c.attrs(v.Class, v.Style)
		if v.Dy != "" {
			attrs = append(attrs, attr("dy", v.Dy))
		}
		if v.Rotate != 0 {
			attrs = append(attrs, attr("transform", "rotate("+num(v.Rotate)+")"))
		}
		c.canvas.Text(v.X, v.Y, v.Content, attrs...)
	}
}

func (c *committer) attrs(class string, st chart.Style) []string {
	var out []string
	if css := styleString(st); css != "" {
		out = append(out, css)
	}
	if c.classes && class != "" {
		out = append(out, attr("class", class))
	}
	return out
}

// styleString renders the set fields of st as an inline CSS declaration list.
func styleString(st chart.Style) string {
	var parts []string
	add := func(k, v string) {
		parts = append(parts, k+":"+v)
	}
	if st.Fill != "" {
		add("fill", st.Fill)
	}
	if st.Stroke != "" {
		add("stroke", st.Stroke)
	}
	if st.StrokeWidth > 0 {
		add("stroke-width", num(st.StrokeWidth))
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		add("opacity", num(st.Opacity))
	}
	if st.FontSize > 0 {
		add("font-size", num(st.FontSize)+"px")
	}
	if st.FontFamily != "" {
		add("font-family", st.FontFamily)
	}
	if st.FontWeight != "" {
		add("font-weight", st.FontWeight)
	}
	if st.Anchor != "" {
		add("text-anchor", st.Anchor)
	}
	return strings.Join(parts, ";")
}

func attr(name, value string) string {
	return name + "=" + strconv.Quote(value)
}

// num formats v with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
