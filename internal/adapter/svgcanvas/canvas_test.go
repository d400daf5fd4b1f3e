package svgcanvas

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
)

func testScene() chart.Scene {
	panel := &chart.Group{Class: "acres-chart", X: 10, Y: 20.5}
	panel.Add(
		chart.Rect{Class: "acres-bar", X: 1, Y: 2, W: 3, H: 4, Style: chart.Style{Fill: "#36454F", Opacity: 0.7}},
		chart.Line{X1: 0, Y1: 5, X2: 100, Y2: 5, Style: chart.Style{Stroke: "black", StrokeWidth: 1}},
		chart.Text{X: 0, Y: 3, Dy: "0.71em", Rotate: -45, Content: "<Oak & Pine>",
			Style: chart.Style{FontSize: 10, Anchor: "end"}},
	)
	s := chart.Scene{Width: 600, Height: 400, Title: "Region 3"}
	s.Root.Add(panel)
	return s
}

func TestCommitWritesShapes(t *testing.T) {
	doc, err := Render(testScene(), Options{})
	require.NoError(t, err)
	out := string(doc)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="600.00" height="400.00"`)
	assert.Contains(t, out, "<title>Region 3</title>")
	assert.Contains(t, out, `transform="translate(10,20.5)"`)
	assert.Contains(t, out, `class="acres-chart"`)
	assert.Contains(t, out, `x="1.00" y="2.00" width="3.00" height="4.00"`)
	assert.Contains(t, out, `style="fill:#36454F;opacity:0.7"`)
	assert.Contains(t, out, `class="acres-bar"`)
	assert.Contains(t, out, `<line x1="0.00" y1="5.00" x2="100.00" y2="5.00"`)
	assert.Contains(t, out, `dy="0.71em"`)
	assert.Contains(t, out, `transform="rotate(-45)"`)
	assert.Contains(t, out, "&lt;Oak &amp; Pine&gt;")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestCommitFragmentDropsProlog(t *testing.T) {
	doc, err := Render(testScene(), Options{Fragment: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "<svg"))
}

func TestExportSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(0, 0).SVG(&buf, testScene()))
	out := buf.String()

	assert.Contains(t, out, `width="1200.00" height="1600.00"`)
	assert.Contains(t, out, `viewBox="0.00 0.00 600.00 400.00"`)
	assert.NotContains(t, out, "class=")
}

func TestExportPNG(t *testing.T) {
	s := chart.Scene{Width: 30, Height: 40}
	s.Root.Add(chart.Rect{W: 15, H: 40, Style: chart.Style{Fill: "#000000"}})
	s.Root.Add(chart.Text{X: 20, Y: 20, Content: "ignored"})

	var buf bytes.Buffer
	require.NoError(t, NewExporter(60, 80).PNG(&buf, s))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	r, _, _, _ := img.At(10, 40).RGBA()
	assert.Less(t, r, uint32(0x4000), "left half is filled")
	r, _, _, _ = img.At(50, 40).RGBA()
	assert.Equal(t, uint32(0xffff), r, "right half stays white")
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "region-3-2025-07-28.svg", RegionFilename("3", "2025-07-28", "svg"))
	assert.Equal(t, "national-summary-2025-07-28.png", NationalFilename("2025-07-28", "png"))
}

func TestStyleString(t *testing.T) {
	assert.Empty(t, styleString(chart.Style{}))
	assert.Equal(t, "fill:white;stroke:#ccc;stroke-width:1",
		styleString(chart.Style{Fill: "white", Stroke: "#ccc", StrokeWidth: 1}))
	assert.Equal(t, "font-size:9px;font-family:monospace;font-weight:bold",
		styleString(chart.Style{FontSize: 9, FontFamily: "monospace", FontWeight: "bold"}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestCommitReportsWriteErrors(t *testing.T) {
	err := Commit(failingWriter{}, testScene(), Options{})
	require.ErrorIs(t, err, assert.AnError)
}
