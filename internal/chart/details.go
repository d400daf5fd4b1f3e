package chart

import (
	"fmt"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

const (
	headerWidth     = 5
	nameWidth       = 12
	nameWidthMobile = 8
)

var (
	regionalHeaders = []string{"Incident", "Crews", "Engines", "Helis", "Contained", "Personnel", "Cost"}
	nationalHeaders = []string{"GACC", "Incidents", "Acres", "Crews", "Engines", "Helis", "Personnel", "Change"}
)

// Details draws the incident table. Regional tables give the name column a
// quarter of the width and truncate long names; national tables use equal
// columns. The table margin replaces g.Margin.
func Details(data []domain.Incident, g Geometry, text string) *Group {
	panel := &Group{Class: "details-table"}
	g.Margin = TableMargin
	regional := len(data) > 0 && data[0].Regional()

	panel.Add(Rect{
		Class: "table-background",
		X:     g.Margin.Left, Y: g.Margin.Top, W: g.InnerWidth(), H: g.InnerHeight(),
		Style: Style{Fill: "#f5f5f5", Stroke: "#ddd", StrokeWidth: 1},
	})

	headers := nationalHeaders
	if regional {
		headers = regionalHeaders
	}
	cols := columnOffsets(g, len(headers), regional)

	headerSize, dataSize, rowPitch := 10.0, 9.0, 20.0
	if g.IsMobile {
		headerSize, dataSize, rowPitch = 8, 7, 15
	}

	for i, h := range headers {
		panel.Add(Text{
			Class:   "header-cell",
			X:       cols[i],
			Y:       g.Margin.Top + 20,
			Content: prefix(h, headerWidth),
			Style:   Style{FontSize: headerSize, FontWeight: "bold"},
		})
	}

	cell := Style{FontSize: dataSize, FontFamily: "monospace"}
	for row, d := range data {
		y := g.Margin.Top + 40 + float64(row)*rowPitch
		values := nationalRow(d)
		if regional {
			values = regionalRow(d, g.IsMobile)
		}
		for i, v := range values {
			panel.Add(Text{Class: "data-cell", X: cols[i], Y: y, Content: v, Style: cell})
		}
	}

	panel.Add(title(g, text))
	return panel
}

// columnOffsets returns the x position of each column's text.
func columnOffsets(g Geometry, n int, regional bool) []float64 {
	width := g.InnerWidth()
	left := g.Margin.Left
	xs := make([]float64, n)
	if !regional {
		col := width / float64(n)
		for i := range xs {
			xs[i] = left + float64(i)*col + 5
		}
		return xs
	}

	first := width * 0.25
	other := (width - first) / float64(n-1)
	xs[0] = left + 10
	for i := 1; i < n; i++ {
		xs[i] = left + first + float64(i-1)*other + 5
	}
	return xs
}

func regionalRow(d domain.Incident, mobile bool) []string {
	limit := nameWidth
	if mobile {
		limit = nameWidthMobile
	}
	contained := "N/A"
	if d.ContainedPercent != nil {
		contained = fmt.Sprintf("%d%%", *d.ContainedPercent)
	}
	cost := "N/A"
	if d.CostToDate != nil {
		cost = *d.CostToDate
	}
	return []string{
		truncate(d.Name, limit),
		FormatCount(float64(d.Crews)),
		FormatCount(float64(d.Engines)),
		FormatCount(float64(d.Helicopters)),
		contained,
		FormatCount(float64(d.Personnel)),
		cost,
	}
}

func nationalRow(d domain.Incident) []string {
	return []string{
		d.Name,
		FormatOptional(d.Incidents),
		FormatCount(d.TotalAcres),
		FormatCount(float64(d.Crews)),
		FormatCount(float64(d.Engines)),
		FormatCount(float64(d.Helicopters)),
		FormatCount(float64(d.Personnel)),
		FormatCount(float64(d.ChangePersonnel)),
	}
}
