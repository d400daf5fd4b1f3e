package svgcanvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
)

// Default export size in pixels.
const (
	ExportWidth  = 1200
	ExportHeight = 1600
)

// Exporter writes self-contained image files of rendered boards.
type Exporter struct {
	Width, Height int
}

// NewExporter returns an Exporter for the given pixel size, falling back to
// the default export size for non-positive dimensions.
func NewExporter(width, height int) Exporter {
	if width <= 0 {
		width = ExportWidth
	}
	if height <= 0 {
		height = ExportHeight
	}
	return Exporter{Width: width, Height: height}
}

// SVG writes s at the fixed export size with its natural size as the
// viewBox and without class attributes.
func (e Exporter) SVG(w io.Writer, s chart.Scene) error {
	return Commit(w, s, Options{
		Width:        float64(e.Width),
		Height:       float64(e.Height),
		StripClasses: true,
	})
}

// PNG rasterizes the export SVG. Text is not drawn, since the rasterizer
// only handles shapes.
func (e Exporter) PNG(w io.Writer, s chart.Scene) error {
	var doc bytes.Buffer
	if err := e.SVG(&doc, s); err != nil {
		return err
	}
	img, err := Rasterize(doc.Bytes(), e.Width, e.Height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize draws an SVG document onto a white width x height image.
func Rasterize(doc []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	fillWhite(rgba)
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

func fillWhite(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
}

// RegionFilename is the download name of a regional export, e.g.
// "region-3-2025-07-28.svg".
func RegionFilename(regionID, isoDate, ext string) string {
	return fmt.Sprintf("region-%s-%s.%s", regionID, isoDate, ext)
}

// NationalFilename is the download name of the national export.
func NationalFilename(isoDate, ext string) string {
	return fmt.Sprintf("national-summary-%s.%s", isoDate, ext)
}
