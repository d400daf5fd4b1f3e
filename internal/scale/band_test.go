package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandLayout(t *testing.T) {
	b := NewBand([]string{"A", "B", "C", "D"}, 0, 410, 0.05)

	// step = 410 / (4 - 0.05 + 0.1) = 101.234...
	assert.InDelta(t, 101.2345, b.Step(), 1e-3)
	assert.InDelta(t, b.Step()*0.95, b.Bandwidth(), 1e-9)
	assert.Equal(t, 4, b.Len())

	a, ok := b.Position("A")
	require.True(t, ok)
	assert.InDelta(t, b.Step()*0.05, a, 1e-9, "outer padding precedes the first band")

	d, ok := b.Position("D")
	require.True(t, ok)
	assert.InDelta(t, 410-b.Step()*0.05, d+b.Bandwidth(), 1e-9, "outer padding follows the last band")
}

func TestBandUnknownAndDuplicateNames(t *testing.T) {
	b := NewBand([]string{"A", "A", "B"}, 0, 100, 0.05)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"A", "B"}, b.Names())

	_, ok := b.Position("Z")
	assert.False(t, ok)
}

func TestBandEmptyDomain(t *testing.T) {
	b := NewBand(nil, 0, 100, 0.05)
	assert.Zero(t, b.Len())
	assert.Greater(t, b.Bandwidth(), 0.0)
}
