package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// floatPrefixRe matches the leading decimal number of a cell, e.g. "1250 acres" -> "1250".
	floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

	// intPrefixRe matches the leading signed integer of a cell, e.g. "40%" -> "40", "12.7" -> "12".
	intPrefixRe = regexp.MustCompile(`^[+-]?\d+`)
)

// unknownSentinel marks an unreported personnel count.
const unknownSentinel = "UNK"

// Incident is the normalized, chartable form of a regional or national row.
//
// ContainedPercent and CostToDate are set only for regional rows and
// Incidents only for national rows; renderers branch on their presence.
type Incident struct {
	Name             string
	TotalAcres       float64
	ContainedPercent *int
	Incidents        *int
	Personnel        int
	ChangePersonnel  int
	Crews            int
	Engines          int
	Helicopters      int
	CostToDate       *string
}

// Regional reports whether the incident came from a regional row.
func (i Incident) Regional() bool {
	return i.ContainedPercent != nil
}

// ContainedAcres returns the containment percent applied to the total acres,
// or 0 for national rollups.
func (i Incident) ContainedAcres() float64 {
	if i.ContainedPercent == nil {
		return 0
	}
	return float64(*i.ContainedPercent) / 100 * i.TotalAcres
}

// Normalize converts one raw record into an Incident. It never fails.
func Normalize(rec RawRecord) Incident {
	switch r := rec.(type) {
	case RegionalRecord:
		return normalizeRegional(r)
	case NationalRecord:
		return normalizeNational(r)
	default:
		return Incident{Name: "Unknown"}
	}
}

// NormalizeAll normalizes every record in order.
func NormalizeAll[R RawRecord](records []R) []Incident {
	out := make([]Incident, len(records))
	for i, r := range records {
		out[i] = Normalize(r)
	}
	return out
}

func normalizeRegional(r RegionalRecord) Incident {
	contained := parseIntOrZero(string(r.ContainedPercent))
	cost := strings.TrimSpace(string(r.CostToDate))
	if cost == "" {
		cost = "0"
	}

	return Incident{
		Name:             nameOrUnknown(r.IncidentName),
		TotalAcres:       nonNegative(parseFloatOrZero(string(r.TotalAcres))),
		ContainedPercent: &contained,
		Personnel:        parsePersonnel(string(r.TotalPersonnel)),
		ChangePersonnel:  parseIntOrZero(string(r.PersonnelChange)),
		Crews:            parseIntOrZero(string(r.Crews)),
		Engines:          parseIntOrZero(string(r.Engines)),
		Helicopters:      parseIntOrZero(string(r.Helicopters)),
		CostToDate:       &cost,
	}
}

func normalizeNational(r NationalRecord) Incident {
	incidents := parseIntOrZero(string(r.Incidents))

	return Incident{
		Name:            nameOrUnknown(r.GACC),
		TotalAcres:      nonNegative(parseFloatOrZero(string(r.CumulativeAcres))),
		Incidents:       &incidents,
		Personnel:       parsePersonnel(string(r.TotalPersonnel)),
		ChangePersonnel: parseIntOrZero(string(r.PersonnelChange)),
		Crews:           parseIntOrZero(string(r.Crews)),
		Engines:         parseIntOrZero(string(r.Engines)),
		Helicopters:     parseIntOrZero(string(r.Helicopters)),
	}
}

func nameOrUnknown(f Field) string {
	name := strings.TrimSpace(string(f))
	if name == "" {
		return "Unknown"
	}
	return name
}

// parsePersonnel reads the assigned count of an "assigned/requested" cell.
// Returns 0 for "UNK" and for anything that is not a count.
func parsePersonnel(s string) int {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, unknownSentinel) {
		return 0
	}
	assigned, _, _ := strings.Cut(s, "/")
	return max(parseIntOrZero(assigned), 0)
}

// parseFloatOrZero parses the leading number of a cell after removing thousands
// separators, returning 0 on failure or for non-finite values.
func parseFloatOrZero(s string) float64 {
	s = cleanNumeric(s)
	m := floatPrefixRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseIntOrZero parses the leading signed integer of a cell after removing
// thousands separators, returning 0 on failure.
func parseIntOrZero(s string) int {
	s = cleanNumeric(s)
	m := intPrefixRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return v
}

func cleanNumeric(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
