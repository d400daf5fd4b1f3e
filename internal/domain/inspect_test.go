package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCleanRegionalRow(t *testing.T) {
	recs, err := DecodeRegional([]byte("[" + testRegionalRow + "]"))
	require.NoError(t, err)

	assert.Empty(t, Inspect(recs[0]))
}

func TestInspectReportsCoercedCells(t *testing.T) {
	rec := RegionalRecord{
		IncidentName:   " ",
		TotalAcres:     "about 300",
		TotalPersonnel: "n/a",
		Crews:          "true",
		Engines:        "",
		Helicopters:    "2",
	}

	got := Inspect(rec)

	require.Len(t, got, 4)
	assert.Equal(t, FieldProblem{Column: "Incident Name", Value: " ", Reason: "missing name"}, got[0])
	assert.Equal(t, "Total Acres", got[1].Column)
	assert.Equal(t, "not a number", got[1].Reason)
	assert.Equal(t, "Total PPL", got[2].Column)
	assert.Equal(t, "Crw", got[3].Column)
	assert.Equal(t, `Crw="true": not an integer`, got[3].String())
}

func TestInspectNational(t *testing.T) {
	rec := NationalRecord{
		GACC:            "Northwest",
		CumulativeAcres: "-12",
		Incidents:       "14",
		TotalPersonnel:  "UNK",
		Helicopters:     "1e999",
	}

	got := Inspect(rec)

	require.Len(t, got, 1)
	assert.Equal(t, "Cumulative Acres", got[0].Column)
	assert.Equal(t, "negative", got[0].Reason)
}

func TestInspectOutOfRange(t *testing.T) {
	got := Inspect(NationalRecord{GACC: "Alaska", CumulativeAcres: "1e999"})

	require.Len(t, got, 1)
	assert.Equal(t, "out of range", got[0].Reason)
}
