package chart

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// FormatCount renders axis and table numbers: values of 1000 or more become
// thousands with one decimal ("1.3k"), smaller values print as-is. Halves
// round up, so 1250 is "1.3k".
func FormatCount(v float64) string {
	if v >= 1000 {
		tenths := math.Floor(v/100 + 0.5)
		return strconv.FormatFloat(tenths/10, 'f', 1, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatOptional is FormatCount for values that may be absent, which print as "N/A".
func FormatOptional(v *int) string {
	if v == nil {
		return "N/A"
	}
	return FormatCount(float64(*v))
}

// truncate shortens s to n runes followed by "..." when it is longer than n.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

// prefix returns at most the first n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
