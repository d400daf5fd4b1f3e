package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// RegionNames maps region ids ("1".."n") to display names. It is built once
// per date key and shared read-only; the zero value is an empty key.
type RegionNames struct {
	names map[string]string
}

// NewRegionNames copies m into a read-only RegionNames.
func NewRegionNames(m map[string]string) RegionNames {
	return RegionNames{names: maps.Clone(m)}
}

// DecodeRegionNames decodes a region key document.
func DecodeRegionNames(data []byte) (RegionNames, error) {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return RegionNames{}, fmt.Errorf("%w: region key: %v", ErrMalformed, err)
	}
	return RegionNames{names: m}, nil
}

// Name returns the display name for id, or "Region <id>" when id is unknown.
func (n RegionNames) Name(id string) string {
	if name, ok := n.names[id]; ok && name != "" {
		return name
	}
	return "Region " + id
}

// Known reports whether id has a display name.
func (n RegionNames) Known(id string) bool {
	name, ok := n.names[id]
	return ok && name != ""
}

// Len returns the number of named regions.
func (n RegionNames) Len() int {
	return len(n.names)
}

// IDs returns the region ids in ascending numeric order. Ids that are not
// numbers sort after numeric ids, lexically.
func (n RegionNames) IDs() []string {
	ids := slices.Collect(maps.Keys(n.names))
	slices.SortFunc(ids, func(a, b string) int {
		ai, aErr := strconv.Atoi(a)
		bi, bErr := strconv.Atoi(b)
		switch {
		case aErr == nil && bErr == nil:
			return ai - bi
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		default:
			if a < b {
				return -1
			}
			if a > b {
				return 1
			}
			return 0
		}
	})
	return ids
}

// ValidRegionID reports whether id is a small positive integer without
// leading zeros, the only form used in snapshot file names.
func ValidRegionID(id string) bool {
	if id == "" || len(id) > 3 || id[0] == '0' {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
