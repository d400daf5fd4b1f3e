package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	k, err := ParseDateKey("20250728")
	require.NoError(t, err)
	assert.Equal(t, DateKey("20250728"), k)
	assert.Equal(t, time.Date(2025, time.July, 28, 0, 0, 0, 0, time.UTC), k.Time())

	for _, bad := range []string{"", "2025-07-28", "20251340", "2025072", "abcdefgh"} {
		_, err := ParseDateKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestDatesFollowZone(t *testing.T) {
	// 03:00 UTC on July 29 is still July 28 in Denver.
	now := time.Date(2025, time.July, 29, 3, 0, 0, 0, time.UTC)

	denver, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	assert.Equal(t, DateKey("20250729"), DateKeyFor(now, time.UTC))
	assert.Equal(t, DateKey("20250728"), DateKeyFor(now, denver))
	assert.Equal(t, DateKey("20250729"), DateKeyFor(now, nil))
	assert.Equal(t, "2025-07-29", ExportDate(now.In(denver)))
	assert.Equal(t, "July 28, 2025 MDT", DisplayDate(now, denver))
	assert.Equal(t, "July 29, 2025 UTC", DisplayDate(now, nil))
}

func TestSnapshotPaths(t *testing.T) {
	s := Snapshot{Date: "20250728"}

	assert.Equal(t, "20250728/regions/region_key_20250728.json", s.RegionKey())
	assert.Equal(t, "20250728/regions/Region_3_20250728.json", s.Region("3"))
	assert.Equal(t, "20250728/regions/region_summaries_20250728.json", s.RegionSummaries())
	assert.Equal(t, "20250728/fire_summary_20250728.json", s.FireSummary())
	assert.Equal(t, "20250728/daily_summary.json", s.DailySummary())
	assert.Equal(t, "20250728/predictive_summary.txt", s.PredictiveSummary())
	assert.Equal(t, "20250728/fire_summary_analysis.png", s.NationalImage())
	assert.Equal(t, "20250728/regions/fire_analysis_region_3.png", s.RegionImage("3"))
	assert.Equal(t, "20250728/", s.Dir())
}
