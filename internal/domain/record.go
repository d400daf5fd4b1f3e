package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape identifies which raw schema a record was decoded from.
type Shape int

const (
	ShapeRegional Shape = iota + 1
	ShapeNational
)

func (s Shape) String() string {
	switch s {
	case ShapeRegional:
		return "regional"
	case ShapeNational:
		return "national"
	default:
		return "unknown"
	}
}

// RawRecord is the tagged union of the two upstream row schemas.
// Only RegionalRecord and NationalRecord implement it.
type RawRecord interface {
	Shape() Shape
}

// Field is a raw column value. Upstream rows are mostly strings, but the
// extractor occasionally emits bare numbers, booleans, or null. Field accepts
// any JSON scalar so a single odd cell never rejects the whole document.
type Field string

// UnmarshalJSON stores strings unquoted, null as empty, and any other value
// as its literal JSON text (which later fails numeric parsing and becomes 0).
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode field: %w", err)
		}
		*f = Field(s)
	default:
		*f = Field(b)
	}
	return nil
}

// RegionalRecord is one incident row of a region table.
type RegionalRecord struct {
	IncidentName     Field `json:"Incident Name"`
	TotalAcres       Field `json:"Total Acres"`
	ContainedPercent Field `json:"%"`
	TotalPersonnel   Field `json:"Total PPL"`
	PersonnelChange  Field `json:"Chge in PPL"`
	Crews            Field `json:"Crw"`
	Engines          Field `json:"Eng"`
	Helicopters      Field `json:"Heli"`
	CostToDate       Field `json:"$$ CTD"`
}

func (RegionalRecord) Shape() Shape { return ShapeRegional }

// NationalRecord is one GACC row of the national rollup table.
type NationalRecord struct {
	GACC            Field `json:"GACC"`
	CumulativeAcres Field `json:"Cumulative Acres"`
	Incidents       Field `json:"Incidents"`
	TotalPersonnel  Field `json:"Total Personnel"`
	PersonnelChange Field `json:"Change in Personnel"`
	Crews           Field `json:"Crews"`
	Engines         Field `json:"Engines"`
	Helicopters     Field `json:"Helicopters"`
}

func (NationalRecord) Shape() Shape { return ShapeNational }

// DecodeRegional validates and decodes a regional incident document.
// The document must be a JSON array of objects.
func DecodeRegional(data []byte) ([]RegionalRecord, error) {
	return decodeRows[RegionalRecord](data, ShapeRegional)
}

// DecodeNational validates and decodes a national GACC document.
// The document must be a JSON array of objects.
func DecodeNational(data []byte) ([]NationalRecord, error) {
	return decodeRows[NationalRecord](data, ShapeNational)
}

func decodeRows[R RawRecord](data []byte, shape Shape) ([]R, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s rows: %v", ErrMalformed, shape, err)
	}

	out := make([]R, 0, len(rows))
	for i, row := range rows {
		row = bytes.TrimSpace(row)
		if len(row) == 0 || row[0] != '{' {
			return nil, fmt.Errorf("%w: %s row %d is not an object", ErrMalformed, shape, i)
		}
		var rec R
		if err := json.Unmarshal(row, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrMalformed, shape, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
