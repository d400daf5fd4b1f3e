package chart

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{999, "999"},
		{12.5, "12.5"},
		{1000, "1.0k"},
		{1250, "1.3k"},
		{12345, "12.3k"},
		{312004, "312.0k"},
		{-1500, "-1500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.in))
		})
	}
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "N/A", FormatOptional(nil))
	n := 2400
	assert.Equal(t, "2.4k", FormatOptional(&n))
}

// parseCount reverses FormatCount.
func parseCount(t *testing.T, s string) float64 {
	t.Helper()
	mult := 1.0
	if trimmed, ok := strings.CutSuffix(s, "k"); ok {
		s, mult = trimmed, 1000
	}
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v * mult
}

func TestFormatCountRoundTripWithinFivePercent(t *testing.T) {
	for _, v := range []float64{1, 7, 999, 1000, 1049, 1051, 1250, 9999, 12345, 99950, 312004, 1234567} {
		got := parseCount(t, FormatCount(v))
		assert.InEpsilon(t, v, got, 0.05, "value %v formatted as %q", v, FormatCount(v))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dragon Bravo", truncate("Dragon Bravo", 12))
	assert.Equal(t, "Dragon B...", truncate("Dragon Bravo", 8))
	assert.Equal(t, "Año...", truncate("Año Nuevo", 3))
	assert.Equal(t, "Incid", prefix("Incident", 5))
	assert.Equal(t, "GACC", prefix("GACC", 5))
}
