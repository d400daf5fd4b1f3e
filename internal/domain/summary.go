package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// boilerplateRe matches IMSR section headings that carry no content once
	// the tables have been extracted.
	boilerplateRe = regexp.MustCompile(`(Understanding the IMSR|IMSR Map|Fire Activity and Teams Assigned Totals)\s*`)

	// complexFiresRe matches the glossary paragraph about fires not managed for
	// full suppression. Only the first occurrence is removed.
	complexFiresRe = regexp.MustCompile(`(?s)Fires not managed under a full suppression strategy.*?can be found in the NWCG glossary  or here`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// DailySummary is the daily_summary.json document.
type DailySummary struct {
	Header  []string `json:"header"`
	Summary string   `json:"summary"`
}

// DecodeDailySummary decodes a daily summary document.
func DecodeDailySummary(data []byte) (DailySummary, error) {
	var s DailySummary
	if err := json.Unmarshal(data, &s); err != nil {
		return DailySummary{}, fmt.Errorf("%w: daily summary: %v", ErrMalformed, err)
	}
	return s, nil
}

// CleanSummary strips IMSR boilerplate from the daily summary text, trims
// leading whitespace from each line, drops lines of three or fewer
// characters, and separates the NIMO commitment line with a blank line.
func CleanSummary(text string) string {
	text = boilerplateRe.ReplaceAllString(text, "")
	if loc := complexFiresRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}
	text = strings.TrimSpace(text)

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		if utf8.RuneCountInString(strings.TrimSpace(line)) <= 3 {
			continue
		}
		out = append(out, line)
		if strings.Contains(line, "NIMOs committed:") {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

// RegionSummaries maps region display names to predictive summary lines.
type RegionSummaries map[string][]string

// DecodeRegionSummaries decodes a region summaries document.
func DecodeRegionSummaries(data []byte) (RegionSummaries, error) {
	var m RegionSummaries
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: region summaries: %v", ErrMalformed, err)
	}
	return m, nil
}

// Lookup finds the summary lines for a region display name. Names in the two
// documents are produced by different extraction passes and may differ in
// internal whitespace, so an exact match on the trimmed name is tried first,
// then a whitespace-collapsed comparison against every key.
func (s RegionSummaries) Lookup(name string) ([]string, bool) {
	key := strings.TrimSpace(name)
	if lines, ok := s[key]; ok {
		return lines, true
	}
	want := collapseSpace(key)
	for k, lines := range s {
		if collapseSpace(k) == want {
			return lines, true
		}
	}
	return nil, false
}

// FormatSummaryLines joins summary lines into display text. Blank lines
// become paragraph breaks.
func FormatSummaryLines(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(line, "\n"))
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
