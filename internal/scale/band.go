// Package scale maps data values to pixel positions: categorical band scales
// for incident names and linear scales for counts.
package scale

// Band maps category names to evenly spaced bands across a pixel range.
// Inner and outer padding are both expressed as a fraction of the step.
type Band struct {
	names     []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand lays out names across [r0, r1] with the given padding fraction.
// Duplicate names share the band of their first occurrence.
func NewBand(names []string, r0, r1, padding float64) Band {
	index := make(map[string]int, len(names))
	var distinct []string
	for _, name := range names {
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = len(distinct)
		distinct = append(distinct, name)
	}
	n := len(distinct)

	width := r1 - r0
	step := width / max(1, float64(n)-padding+2*padding)
	start := r0 + (width-step*(float64(n)-padding))*0.5

	return Band{
		names:     distinct,
		index:     index,
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// Position returns the left edge of name's band and whether name is in the domain.
func (b Band) Position(name string) (float64, bool) {
	i, ok := b.index[name]
	if !ok {
		return 0, false
	}
	return b.start + float64(i)*b.step, true
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 {
	return b.bandwidth
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 {
	return b.step
}

// Len returns the number of distinct categories.
func (b Band) Len() int {
	return len(b.index)
}

// Names returns the distinct categories in band order.
func (b Band) Names() []string {
	return b.names
}
