package services

import (
	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

const boundsPadding = 0.1

// BuildMapView filtra os crimes pela seleção, agrupa os restantes e monta
// marcadores, legenda, filtros e resumo.
func BuildMapView(crimes []domain.Crime, selection domain.CategorySelection, focus *domain.GeocodeResult) domain.MapView {
	filtered := Filter(crimes, selection)
	grouped := Group(filtered)

	view := domain.MapView{
		Focus:   focus,
		Markers: make([]domain.Marker, 0, len(grouped.Groups)),
		Legend:  legend(filtered),
		Filters: filters(crimes, selection),
	}

	for _, g := range grouped.Groups {
		view.Markers = append(view.Markers, marker(g))
	}

	all := CategoryCounts(crimes)
	view.Summary = domain.Summary{
		Total:               len(crimes),
		Shown:               len(filtered),
		Dropped:             grouped.Dropped,
		SelectedCategories:  countSelected(all, selection),
		AvailableCategories: len(all),
	}

	if b, ok := Bounds(grouped.Groups, boundsPadding); ok {
		view.Bounds = &domain.Bounds{South: b.Bottom(), West: b.Left(), North: b.Top(), East: b.Right()}
	}

	return view
}

func marker(g domain.IncidentGroup) domain.Marker {
	dominant := DominantCategory(g)
	size, fontSize := MarkerSize(g.Len())

	return domain.Marker{
		Latitude:         g.Latitude,
		Longitude:        g.Longitude,
		StreetName:       g.StreetName,
		Count:            g.Len(),
		DominantCategory: dominant,
		Color:            domain.CategoryColor(dominant),
		Size:             size,
		FontSize:         fontSize,
		Categories:       breakdown(g.Incidents),
	}
}

// MarkerSize devolve o diâmetro em pixels e o tamanho da fonte do contador.
func MarkerSize(count int) (int, string) {
	switch {
	case count <= 1:
		return 20, "11px"
	case count < 10:
		return 24, "12px"
	case count < 100:
		return 28, "13px"
	default:
		return 32, "14px"
	}
}

func breakdown(incidents []domain.CrimeIncident) []domain.CategoryBreakdown {
	out := []domain.CategoryBreakdown{}
	index := make(map[string]int)
	for _, incident := range incidents {
		i, ok := index[incident.Category]
		if !ok {
			i = len(out)
			index[incident.Category] = i
			out = append(out, domain.CategoryBreakdown{
				Category: incident.Category,
				Label:    domain.CategoryLabel(incident.Category),
				Color:    domain.CategoryColor(incident.Category),
			})
		}
		out[i].Count++
		out[i].Incidents = append(out[i].Incidents, incident)
	}
	return out
}

func legend(filtered []domain.Crime) []domain.LegendEntry {
	counts := CategoryCounts(filtered)
	out := make([]domain.LegendEntry, 0, len(counts))
	for _, c := range counts {
		out = append(out, legendEntry(c))
	}
	return out
}

func filters(crimes []domain.Crime, selection domain.CategorySelection) []domain.FilterEntry {
	counts := CategoryCounts(crimes)
	out := make([]domain.FilterEntry, 0, len(counts))
	for _, c := range counts {
		out = append(out, domain.FilterEntry{LegendEntry: legendEntry(c), Selected: selection.Contains(c.Category)})
	}
	return out
}

func legendEntry(c domain.CategoryCount) domain.LegendEntry {
	return domain.LegendEntry{
		Category: c.Category,
		Label:    domain.CategoryLabel(c.Category),
		Color:    domain.CategoryColor(c.Category),
		Count:    c.Count,
	}
}

func countSelected(available []domain.CategoryCount, selection domain.CategorySelection) int {
	n := 0
	for _, c := range available {
		if selection.Contains(c.Category) {
			n++
		}
	}
	return n
}
