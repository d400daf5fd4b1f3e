package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanSummary(t *testing.T) {
	in := "Understanding the IMSR\n" +
		"National Preparedness Level 4\n" +
		"  IMSR Map\n" +
		"   Initial attack activity: Light (142 new fires)\n" +
		"ok\n" +
		"Fire Activity and Teams Assigned Totals\n" +
		"NIMOs committed: 1\n" +
		"Fires not managed under a full suppression strategy are listed below.\n" +
		"More text can be found in the NWCG glossary  or here\n" +
		"Large fires: 12"

	want := "National Preparedness Level 4\n" +
		"Initial attack activity: Light (142 new fires)\n" +
		"NIMOs committed: 1\n" +
		"\n" +
		"Large fires: 12"

	assert.Equal(t, want, CleanSummary(in))
}

func TestCleanSummaryEmpty(t *testing.T) {
	assert.Empty(t, CleanSummary(""))
	assert.Empty(t, CleanSummary("  \n ab \n"))
}

func TestDecodeDailySummary(t *testing.T) {
	s, err := DecodeDailySummary([]byte(`{"header":["IMSR","July 28, 2025"],"summary":"text"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"IMSR", "July 28, 2025"}, s.Header)
	assert.Equal(t, "text", s.Summary)

	_, err = DecodeDailySummary([]byte(`[]`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestRegionSummariesLookup(t *testing.T) {
	doc, err := DecodeRegionSummaries([]byte(`{"Southwest  Area":["a"],"Alaska":["b"]}`))
	require.NoError(t, err)

	lines, ok := doc.Lookup("Alaska ")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, lines)

	lines, ok = doc.Lookup("Southwest Area")
	require.True(t, ok, "whitespace differences are tolerated")
	assert.Equal(t, []string{"a"}, lines)

	_, ok = doc.Lookup("Region 9")
	assert.False(t, ok)
}

func TestFormatSummaryLines(t *testing.T) {
	got := FormatSummaryLines([]string{"Fuels are dry.", "", "Outlook: hot."})
	assert.Equal(t, "Fuels are dry.\n\nOutlook: hot.", got)
	assert.Empty(t, FormatSummaryLines(nil))
}
