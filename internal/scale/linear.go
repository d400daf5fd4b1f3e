package scale

import "math"

// Linear maps a continuous domain onto a pixel range. Chart ranges are
// usually inverted ([height, 0]) so larger values sit higher.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale. Non-finite domain bounds are treated as 0.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: finite(d0), d1: finite(d1), r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (l Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}

// Degenerate reports whether the domain has zero extent.
func (l Linear) Degenerate() bool {
	return l.d0 == l.d1
}

// Map returns the pixel position of v. A degenerate domain maps every value
// to the end of the range, which is the top of the plot for inverted ranges.
func (l Linear) Map(v float64) float64 {
	if l.Degenerate() {
		return l.r1
	}
	t := (finite(v) - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// Ticks returns round values within the domain, roughly count of them.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	return Ticks(lo, hi, count)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
