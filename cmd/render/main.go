// Command render draws the region or national board of a local snapshot to an
// SVG or PNG file at the export size, without running the server.
//
// Usage:
//
//	go run ./cmd/render -data-dir data -date 20250728 -region 3 -format png
//	go run ./cmd/render -data-dir data -date 20250728 -national
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/datasource"
	"github.com/couchcryptid/wildfire-dashboard/internal/adapter/svgcanvas"
	"github.com/couchcryptid/wildfire-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/loader"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataDir := flag.String("data-dir", "data", "snapshot root directory")
	date := flag.String("date", "", "snapshot date key (YYYYMMDD); defaults to today in UTC")
	region := flag.String("region", "", "region id to render")
	national := flag.Bool("national", false, "render the national board")
	format := flag.String("format", "svg", "output format: svg or png")
	out := flag.String("out", "", "output file; defaults to the export file name")
	width := flag.Int("width", svgcanvas.ExportWidth, "export width in pixels")
	height := flag.Int("height", svgcanvas.ExportHeight, "export height in pixels")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	route, err := routeFor(*region, *national)
	if err != nil {
		return err
	}
	if *format != "svg" && *format != "png" {
		return fmt.Errorf("unknown format %q", *format)
	}

	clock := clockwork.NewRealClock()
	opts := loader.Options{Clock: clock}
	if *date != "" {
		opts.DateKey, err = domain.ParseDateKey(*date)
		if err != nil {
			return err
		}
	}

	logger := sharedobs.NewLogger(*logLevel, "text")
	metrics := observability.NewMetrics()
	ld := loader.New(datasource.NewDirSource(*dataDir, metrics), opts, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := ld.LoadView(ctx, route)
	if err != nil {
		return fmt.Errorf("load %s: %w", route, err)
	}
	board, err := dashboard.Compose(view.Incidents, chart.MaxEffectiveWidth, view.Kind, view.Title)
	if err != nil {
		return fmt.Errorf("%s: %w", route, err)
	}

	exporter := svgcanvas.NewExporter(*width, *height)
	var buf bytes.Buffer
	if *format == "png" {
		err = exporter.PNG(&buf, board.Scene)
	} else {
		err = exporter.SVG(&buf, board.Scene)
	}
	if err != nil {
		return err
	}

	name := *out
	if name == "" {
		name = filename(route, *format, clock.Now())
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o600); err != nil {
		return err
	}
	log.Printf("wrote %s (%s, %d incidents)", name, view.Title, len(view.Incidents))
	return nil
}

func routeFor(region string, national bool) (dashboard.Route, error) {
	switch {
	case national && region != "":
		return dashboard.Route{}, fmt.Errorf("-region and -national are exclusive")
	case national:
		return dashboard.NationalRoute, nil
	case region != "":
		return dashboard.ParseRoute("/region/" + region)
	default:
		return dashboard.Route{}, fmt.Errorf("one of -region or -national is required")
	}
}

func filename(route dashboard.Route, ext string, now time.Time) string {
	if route.Kind == dashboard.KindNational {
		return svgcanvas.NationalFilename(domain.ExportDate(now), ext)
	}
	return svgcanvas.RegionFilename(route.RegionID, domain.ExportDate(now), ext)
}
