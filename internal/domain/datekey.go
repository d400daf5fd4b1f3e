package domain

import (
	"fmt"
	"time"
)

const dateKeyLayout = "20060102"

// DateKey is the YYYYMMDD version key of a daily snapshot.
type DateKey string

// ParseDateKey validates s as a calendar date in YYYYMMDD form.
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != len(dateKeyLayout) {
		return "", fmt.Errorf("invalid date key %q: want YYYYMMDD", s)
	}
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", s, err)
	}
	return DateKey(s), nil
}

// DateKeyFor returns the key of the calendar day containing t in loc.
func DateKeyFor(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.UTC
	}
	return DateKey(t.In(loc).Format(dateKeyLayout))
}

// Time returns midnight UTC of the key's day, or the zero time for an invalid key.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(dateKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (k DateKey) String() string {
	return string(k)
}

// ExportDate returns the UTC calendar date of now as YYYY-MM-DD, used in
// exported file names.
func ExportDate(now time.Time) string {
	return now.UTC().Format(time.DateOnly)
}

// DisplayDate formats the day of now in loc for page headers,
// e.g. "July 28, 2025 MDT".
func DisplayDate(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("January 2, 2006 MST")
}

// Snapshot names the documents of one daily snapshot, relative to the data root.
type Snapshot struct {
	Date DateKey
}

func (s Snapshot) RegionKey() string {
	return fmt.Sprintf("%s/regions/region_key_%s.json", s.Date, s.Date)
}

func (s Snapshot) Region(id string) string {
	return fmt.Sprintf("%s/regions/Region_%s_%s.json", s.Date, id, s.Date)
}

func (s Snapshot) RegionSummaries() string {
	return fmt.Sprintf("%s/regions/region_summaries_%s.json", s.Date, s.Date)
}

func (s Snapshot) FireSummary() string {
	return fmt.Sprintf("%s/fire_summary_%s.json", s.Date, s.Date)
}

func (s Snapshot) DailySummary() string {
	return fmt.Sprintf("%s/daily_summary.json", s.Date)
}

func (s Snapshot) PredictiveSummary() string {
	return fmt.Sprintf("%s/predictive_summary.txt", s.Date)
}

func (s Snapshot) NationalImage() string {
	return fmt.Sprintf("%s/fire_summary_analysis.png", s.Date)
}

func (s Snapshot) RegionImage(id string) string {
	return fmt.Sprintf("%s/regions/fire_analysis_region_%s.png", s.Date, id)
}

// Dir returns the snapshot's directory prefix.
func (s Snapshot) Dir() string {
	return string(s.Date) + "/"
}
