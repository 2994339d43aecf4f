package services

import (
	"strconv"

	"github.com/paulmach/orb"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

// Group agrupa crimes pela coordenada arredondada em 6 casas decimais. Os
// grupos saem na ordem em que a chave apareceu pela primeira vez, cada um com
// o nome de rua e as coordenadas do primeiro crime visto. Crimes sem
// coordenadas numéricas entram em Dropped.
func Group(crimes []domain.Crime) domain.GroupResult {
	result := domain.GroupResult{Groups: []domain.IncidentGroup{}}
	index := make(map[string]int)

	for _, crime := range crimes {
		incident, ok := crime.Incident()
		if !ok {
			result.Dropped++
			continue
		}

		key := groupKey(incident.Latitude, incident.Longitude)
		i, seen := index[key]
		if !seen {
			i = len(result.Groups)
			index[key] = i
			result.Groups = append(result.Groups, domain.IncidentGroup{
				Latitude:   incident.Latitude,
				Longitude:  incident.Longitude,
				StreetName: incident.StreetName,
			})
		}
		result.Groups[i].Incidents = append(result.Groups[i].Incidents, incident)
	}

	return result
}

func groupKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lng, 'f', 6, 64)
}

// DominantCategory devolve a categoria mais grave do grupo; empates ficam com
// a primeira ocorrência.
func DominantCategory(group domain.IncidentGroup) string {
	if len(group.Incidents) == 0 {
		return ""
	}
	best := group.Incidents[0].Category
	bestPriority := domain.CategoryPriority(best)
	for _, incident := range group.Incidents[1:] {
		if p := domain.CategoryPriority(incident.Category); p < bestPriority {
			best, bestPriority = incident.Category, p
		}
	}
	return best
}

// Filter mantém, na ordem original, os crimes cuja categoria está selecionada.
func Filter(crimes []domain.Crime, allowed domain.CategorySelection) []domain.Crime {
	out := make([]domain.Crime, 0, len(crimes))
	for _, crime := range crimes {
		if allowed.Contains(crime.Category) {
			out = append(out, crime)
		}
	}
	return out
}

// CategoryCounts conta crimes por categoria na ordem da primeira ocorrência.
func CategoryCounts(crimes []domain.Crime) []domain.CategoryCount {
	counts := []domain.CategoryCount{}
	index := make(map[string]int)
	for _, crime := range crimes {
		i, ok := index[crime.Category]
		if !ok {
			i = len(counts)
			index[crime.Category] = i
			counts = append(counts, domain.CategoryCount{Category: crime.Category})
		}
		counts[i].Count++
	}
	return counts
}

// Bounds calcula a caixa que contém todos os grupos, ampliada em padRatio da
// altura e da largura de cada lado. Devolve false quando não há grupos.
func Bounds(groups []domain.IncidentGroup, padRatio float64) (orb.Bound, bool) {
	if len(groups) == 0 {
		return orb.Bound{}, false
	}
	points := make(orb.MultiPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, g.Point())
	}
	b := points.Bound()

	dx := (b.Right() - b.Left()) * padRatio
	dy := (b.Top() - b.Bottom()) * padRatio
	return orb.Bound{
		Min: orb.Point{b.Left() - dx, b.Bottom() - dy},
		Max: orb.Point{b.Right() + dx, b.Top() + dy},
	}, true
}
