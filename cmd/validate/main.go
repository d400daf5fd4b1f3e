// Command validate checks the documents of one daily snapshot against the
// shapes the dashboard decodes. It reports documents that are missing or are
// not arrays of objects, rows without a name, and numeric cells the
// normalizer would silently coerce to zero.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data -date 20250728
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// snapshotDir reads snapshot documents from a local data root.
type snapshotDir string

func (d snapshotDir) read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(path)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return data, err
}

func main() {
	dataDir := flag.String("data-dir", "data", "snapshot root directory")
	date := flag.String("date", "", "snapshot date key (YYYYMMDD)")
	flag.Parse()

	key, err := domain.ParseDateKey(*date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if code := run(snapshotDir(*dataDir), domain.Snapshot{Date: key}); code != 0 {
		os.Exit(code)
	}
}

func run(dir snapshotDir, snap domain.Snapshot) int {
	fmt.Printf("=== Fire Snapshot Validation: %s ===\n\n", snap.Date)

	names, keyPhase := validateRegionKey(dir, snap)
	regions, rows := validateRegions(dir, snap, names)
	phases := []*phase{
		keyPhase,
		regions,
		validateRegionSummaries(dir, snap, names),
		validateNational(dir, snap),
		validateDailySummary(dir, snap),
		validatePredictive(dir, snap),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Regions: %d named, %d incident rows\n", names.Len(), rows)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateRegionKey(dir snapshotDir, snap domain.Snapshot) (domain.RegionNames, *phase) {
	p := &phase{name: "Region key"}
	data, err := dir.read(snap.RegionKey())
	if err != nil {
		p.errorf("%v", err)
		return domain.RegionNames{}, p
	}
	names, err := domain.DecodeRegionNames(data)
	if err != nil {
		p.errorf("%v", err)
		return domain.RegionNames{}, p
	}
	if names.Len() == 0 {
		p.errorf("region key names no regions")
	}
	for _, id := range names.IDs() {
		if !domain.ValidRegionID(id) {
			p.errorf("region id %q is not a positive integer", id)
		}
		if !names.Known(id) {
			p.errorf("region %s has an empty name", id)
		}
	}
	return names, p
}

func validateRegions(dir snapshotDir, snap domain.Snapshot, names domain.RegionNames) (*phase, int) {
	p := &phase{name: "Region incident tables"}
	var rows int
	for _, id := range names.IDs() {
		data, err := dir.read(snap.Region(id))
		if err != nil {
			p.errorf("region %s: %v", id, err)
			continue
		}
		recs, err := domain.DecodeRegional(data)
		if err != nil {
			p.errorf("region %s: %v", id, err)
			continue
		}
		rows += len(recs)
		for i, rec := range recs {
			reportRow(p, fmt.Sprintf("region %s row %d", id, i), rec)
		}
	}
	return p, rows
}

func validateRegionSummaries(dir snapshotDir, snap domain.Snapshot, names domain.RegionNames) *phase {
	p := &phase{name: "Region summaries"}
	data, err := dir.read(snap.RegionSummaries())
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	summaries, err := domain.DecodeRegionSummaries(data)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	for _, id := range names.IDs() {
		if !names.Known(id) {
			continue
		}
		if _, ok := summaries.Lookup(names.Name(id)); !ok {
			p.errorf("no summary for region %s (%q)", id, names.Name(id))
		}
	}
	return p
}

func validateNational(dir snapshotDir, snap domain.Snapshot) *phase {
	p := &phase{name: "National rollup"}
	data, err := dir.read(snap.FireSummary())
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	recs, err := domain.DecodeNational(data)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if len(recs) == 0 {
		p.errorf("national rollup has no rows")
	}
	for i, rec := range recs {
		reportRow(p, fmt.Sprintf("row %d", i), rec)
	}
	return p
}

func validateDailySummary(dir snapshotDir, snap domain.Snapshot) *phase {
	p := &phase{name: "Daily summary"}
	data, err := dir.read(snap.DailySummary())
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	s, err := domain.DecodeDailySummary(data)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if len(s.Header) == 0 {
		p.errorf("header is empty")
	}
	if domain.CleanSummary(s.Summary) == "" {
		p.errorf("summary is empty after cleanup")
	}
	return p
}

func validatePredictive(dir snapshotDir, snap domain.Snapshot) *phase {
	p := &phase{name: "Predictive summary"}
	data, err := dir.read(snap.PredictiveSummary())
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if strings.TrimSpace(string(data)) == "" {
		p.errorf("predictive summary is empty")
	}
	return p
}

func reportRow(p *phase, where string, rec domain.RawRecord) {
	for _, problem := range domain.Inspect(rec) {
		p.errorf("%s: %s", where, problem)
	}
}
