package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldProblem is a raw cell the normalizer would coerce to a default.
type FieldProblem struct {
	Column string
	Value  string
	Reason string
}

func (p FieldProblem) String() string {
	return fmt.Sprintf("%s=%q: %s", p.Column, p.Value, p.Reason)
}

// Inspect reports the cells of rec that normalize to a default value: a
// missing name, or a non-empty numeric cell that does not parse. Empty
// numeric cells are treated as zero upstream and are not reported.
func Inspect(rec RawRecord) []FieldProblem {
	var c cellChecker
	switch r := rec.(type) {
	case RegionalRecord:
		c.name("Incident Name", r.IncidentName)
		c.float("Total Acres", r.TotalAcres)
		c.int("%", r.ContainedPercent)
		c.personnel("Total PPL", r.TotalPersonnel)
		c.int("Chge in PPL", r.PersonnelChange)
		c.int("Crw", r.Crews)
		c.int("Eng", r.Engines)
		c.int("Heli", r.Helicopters)
	case NationalRecord:
		c.name("GACC", r.GACC)
		c.float("Cumulative Acres", r.CumulativeAcres)
		c.int("Incidents", r.Incidents)
		c.personnel("Total Personnel", r.TotalPersonnel)
		c.int("Change in Personnel", r.PersonnelChange)
		c.int("Crews", r.Crews)
		c.int("Engines", r.Engines)
		c.int("Helicopters", r.Helicopters)
	}
	return c.problems
}

type cellChecker struct {
	problems []FieldProblem
}

func (c *cellChecker) add(col string, f Field, reason string) {
	c.problems = append(c.problems, FieldProblem{Column: col, Value: string(f), Reason: reason})
}

func (c *cellChecker) name(col string, f Field) {
	if strings.TrimSpace(string(f)) == "" {
		c.add(col, f, "missing name")
	}
}

func (c *cellChecker) float(col string, f Field) {
	s := cleanNumeric(string(f))
	if s == "" {
		return
	}
	m := floatPrefixRe.FindString(s)
	if m == "" {
		c.add(col, f, "not a number")
		return
	}
	if v, err := strconv.ParseFloat(m, 64); err != nil || math.IsInf(v, 0) {
		c.add(col, f, "out of range")
		return
	}
	if strings.HasPrefix(m, "-") {
		c.add(col, f, "negative")
	}
}

func (c *cellChecker) int(col string, f Field) {
	s := cleanNumeric(string(f))
	if s != "" && intPrefixRe.FindString(s) == "" {
		c.add(col, f, "not an integer")
	}
}

func (c *cellChecker) personnel(col string, f Field) {
	s := strings.TrimSpace(string(f))
	if strings.EqualFold(s, unknownSentinel) {
		return
	}
	assigned, _, _ := strings.Cut(s, "/")
	c.int(col, Field(assigned))
}
