// Command genmock writes a deterministic mock snapshot tree for one date key:
// the region key, one incident table per region, region summaries, the
// national rollup, and the daily and predictive summaries. With -publish it
// also announces the snapshot on the Kafka notice topic configured through
// the usual KAFKA_* environment variables.
//
// Usage:
//
//	go run ./cmd/genmock -out data -date 20250728 -publish
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	kafkaadapter "github.com/couchcryptid/wildfire-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-dashboard/internal/config"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// gaccs are the geographic area coordination centers, in region id order.
var gaccs = []string{
	"Alaska",
	"Northwest",
	"Northern California",
	"Southern California",
	"Northern Rockies",
	"Great Basin",
	"Southwest",
	"Rocky Mountain",
	"Eastern Area",
	"Southern Area",
}

var (
	firstWords  = []string{"Dragon", "Cedar", "Oak", "Ridge", "Canyon", "Bear", "Pine", "Willow", "Lone", "Eagle"}
	secondWords = []string{"Bravo", "Creek", "Flat", "Peak", "Complex", "Hollow", "Butte", "Springs"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data", "snapshot root directory to write into")
	date := flag.String("date", "20250728", "snapshot date key (YYYYMMDD)")
	regions := flag.Int("regions", len(gaccs), "number of regions to generate (1-10)")
	publish := flag.Bool("publish", false, "publish a snapshot notice to Kafka")
	flag.Parse()

	key, err := domain.ParseDateKey(*date)
	if err != nil {
		return err
	}
	if *regions < 1 || *regions > len(gaccs) {
		return fmt.Errorf("-regions must be between 1 and %d", len(gaccs))
	}

	docs := generate(domain.Snapshot{Date: key}, *regions)
	for path, v := range docs {
		if err := writeDoc(filepath.Join(*out, filepath.FromSlash(path)), v); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	log.Printf("wrote %d documents for %s under %s", len(docs), key, *out)

	if *publish {
		return publishNotice(key)
	}
	return nil
}

// generate returns every document of a snapshot keyed by its data-root path.
// Values are marshaled as JSON, except strings which are written verbatim.
func generate(snap domain.Snapshot, regions int) map[string]any {
	docs := make(map[string]any)
	names := make(map[string]string, regions)
	summaries := make(domain.RegionSummaries, regions)
	national := make([]domain.NationalRecord, 0, regions)

	for r := 1; r <= regions; r++ {
		id := strconv.Itoa(r)
		name := gaccs[r-1]
		names[id] = name

		rows := regionRows(r)
		docs[snap.Region(id)] = rows
		national = append(national, rollup(name, rows))
		summaries[name] = []string{
			fmt.Sprintf("%s: fire activity %s.", name, activity(r)),
			"",
			"Fuels remain critically dry at mid and upper elevations.",
		}
	}

	docs[snap.RegionKey()] = names
	docs[snap.RegionSummaries()] = summaries
	docs[snap.FireSummary()] = national
	docs[snap.DailySummary()] = domain.DailySummary{
		Header: []string{
			"National Preparedness Level 3",
			fmt.Sprintf("Snapshot %s", snap.Date.Time().Format("January 2, 2006")),
		},
		Summary: "Understanding the IMSR\n" +
			"Initial attack activity was moderate with 212 new fires.\n" +
			"  Seven new large fires were reported.\n" +
			"NIMOs committed: 1\n" +
			"ok\n" +
			"Fire Activity and Teams Assigned Totals",
	}
	docs[snap.PredictiveSummary()] = "Above normal significant fire potential continues across the interior West.\n"
	return docs
}

func regionRows(region int) []domain.RegionalRecord {
	n := 3 + region%4
	rows := make([]domain.RegionalRecord, n)
	for i := range rows {
		seed := region*31 + i*17
		acres := 50 + (region*137+i*911)%25000
		personnel := strconv.Itoa(10 + seed%400)
		if (region+i)%5 == 0 {
			personnel = "UNK"
		}
		rows[i] = domain.RegionalRecord{
			IncidentName:     domain.Field(firstWords[seed%len(firstWords)] + " " + secondWords[(seed/3)%len(secondWords)]),
			TotalAcres:       domain.Field(thousands(acres)),
			ContainedPercent: domain.Field(strconv.Itoa((region*7 + i*13) % 101)),
			TotalPersonnel:   domain.Field(personnel),
			PersonnelChange:  domain.Field(strconv.Itoa(seed%41 - 20)),
			Crews:            domain.Field(strconv.Itoa(seed % 9)),
			Engines:          domain.Field(strconv.Itoa(seed % 14)),
			Helicopters:      domain.Field(strconv.Itoa(seed % 4)),
			CostToDate:       domain.Field("$" + thousands(acres*1250)),
		}
	}
	return rows
}

// rollup sums a region's rows into its national GACC row.
func rollup(name string, rows []domain.RegionalRecord) domain.NationalRecord {
	var acres float64
	var personnel, change, crews, engines, helis int
	for _, inc := range domain.NormalizeAll(rows) {
		acres += inc.TotalAcres
		personnel += inc.Personnel
		change += inc.ChangePersonnel
		crews += inc.Crews
		engines += inc.Engines
		helis += inc.Helicopters
	}
	return domain.NationalRecord{
		GACC:            domain.Field(name),
		CumulativeAcres: domain.Field(thousands(int(acres))),
		Incidents:       domain.Field(strconv.Itoa(len(rows))),
		TotalPersonnel:  domain.Field(thousands(personnel)),
		PersonnelChange: domain.Field(fmt.Sprintf("%+d", change)),
		Crews:           domain.Field(strconv.Itoa(crews)),
		Engines:         domain.Field(strconv.Itoa(engines)),
		Helicopters:     domain.Field(strconv.Itoa(helis)),
	}
}

func activity(region int) string {
	switch region % 3 {
	case 0:
		return "was light"
	case 1:
		return "was moderate"
	default:
		return "increased"
	}
}

// thousands formats n with comma separators, as the upstream tables do.
func thousands(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func writeDoc(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var data []byte
	if s, ok := v.(string); ok {
		data = []byte(s)
	} else {
		var err error
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
	}
	return os.WriteFile(path, data, 0o600)
}

func publishNotice(key domain.DateKey) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.Default()
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return writer.Publish(ctx, domain.SnapshotNotice{Date: key, PublishedAt: time.Now().UTC()})
}
