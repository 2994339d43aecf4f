package services

import (
	"reflect"
	"testing"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

func crimeAt(id int64, category, lat, lng, street string) domain.Crime {
	return domain.Crime{
		ID:       id,
		Category: category,
		Month:    "2024-01",
		Location: domain.CrimeLocation{
			Latitude:  lat,
			Longitude: lng,
			Street:    domain.Street{Name: street},
		},
	}
}

func groupIDs(result domain.GroupResult) [][]int64 {
	out := make([][]int64, 0, len(result.Groups))
	for _, g := range result.Groups {
		ids := make([]int64, 0, len(g.Incidents))
		for _, incident := range g.Incidents {
			ids = append(ids, incident.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestGroup_ByRoundedCoordinate(t *testing.T) {
	crimes := []domain.Crime{
		crimeAt(1, "drugs", "51.500617", "-0.137431", "Birdcage Walk"),
		crimeAt(2, "burglary", "51.501400", "-0.141900", "The Mall"),
		crimeAt(3, "robbery", "51.5006170001", "-0.1374310001", "Other Name"),
		crimeAt(4, "drugs", "51.501400", "-0.141900", "The Mall"),
	}

	result := Group(crimes)

	if got, want := groupIDs(result), [][]int64{{1, 3}, {2, 4}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected groups %v, got %v", want, got)
	}
	if result.Groups[0].StreetName != "Birdcage Walk" {
		t.Fatalf("expected first-seen street name, got %q", result.Groups[0].StreetName)
	}
	if result.Dropped != 0 {
		t.Fatalf("expected nothing dropped, got %d", result.Dropped)
	}
}

func TestGroup_CountsMalformedCoordinates(t *testing.T) {
	crimes := []domain.Crime{
		crimeAt(1, "drugs", "51.5", "-0.1", "A"),
		crimeAt(2, "drugs", "", "-0.1", "B"),
		crimeAt(3, "drugs", "51.5", "west", "C"),
	}

	result := Group(crimes)

	if len(result.Groups) != 1 || result.Dropped != 2 {
		t.Fatalf("expected 1 group and 2 dropped, got %d groups and %d dropped", len(result.Groups), result.Dropped)
	}
}

func TestGroup_IsDeterministic(t *testing.T) {
	crimes := []domain.Crime{
		crimeAt(1, "drugs", "51.1", "-0.1", "A"),
		crimeAt(2, "drugs", "51.2", "-0.2", "B"),
		crimeAt(3, "drugs", "51.1", "-0.1", "A"),
		crimeAt(4, "drugs", "51.3", "-0.3", "C"),
		crimeAt(5, "drugs", "51.2", "-0.2", "B"),
	}

	first := Group(crimes)
	second := Group(crimes)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical grouping, got %v and %v", groupIDs(first), groupIDs(second))
	}
}

func TestDominantCategory(t *testing.T) {
	group := Group([]domain.Crime{
		crimeAt(1, "burglary", "51.5", "-0.1", "A"),
		crimeAt(2, "robbery", "51.5", "-0.1", "A"),
	}).Groups[0]

	if got := DominantCategory(group); got != "robbery" {
		t.Fatalf("expected robbery to outrank burglary, got %q", got)
	}
}

func TestDominantCategory_TieKeepsFirstOccurrence(t *testing.T) {
	group := Group([]domain.Crime{
		crimeAt(1, "shoplifting", "51.5", "-0.1", "A"),
		crimeAt(2, "bicycle-theft", "51.5", "-0.1", "A"),
	}).Groups[0]

	if got := DominantCategory(group); got != "shoplifting" {
		t.Fatalf("expected first unranked category, got %q", got)
	}
	if got := DominantCategory(domain.IncidentGroup{}); got != "" {
		t.Fatalf("expected empty category for empty group, got %q", got)
	}
}

func TestFilter_KeepsOrder(t *testing.T) {
	crimes := []domain.Crime{
		{ID: 1, Category: "drugs"},
		{ID: 2, Category: "burglary"},
		{ID: 3, Category: "drugs"},
	}

	filtered := Filter(crimes, domain.NewCategorySelection("drugs"))

	if len(filtered) != 2 || filtered[0].ID != 1 || filtered[1].ID != 3 {
		t.Fatalf("expected the two drugs incidents in order, got %+v", filtered)
	}
	if len(crimes) != 3 {
		t.Fatalf("filter must not modify its input")
	}
}

func TestCategoryCounts_FirstSeenOrder(t *testing.T) {
	counts := CategoryCounts([]domain.Crime{{Category: "drugs"}, {Category: "burglary"}, {Category: "drugs"}})

	want := []domain.CategoryCount{{Category: "drugs", Count: 2}, {Category: "burglary", Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("expected %v, got %v", want, counts)
	}
}

func TestBounds_Padded(t *testing.T) {
	groups := []domain.IncidentGroup{
		{Latitude: 51.0, Longitude: -1.0},
		{Latitude: 52.0, Longitude: 1.0},
	}

	b, ok := Bounds(groups, 0.1)
	if !ok {
		t.Fatalf("expected bounds")
	}
	const eps = 1e-9
	check := func(name string, got, want float64) {
		if got < want-eps || got > want+eps {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
	check("south", b.Bottom(), 50.9)
	check("north", b.Top(), 52.1)
	check("west", b.Left(), -1.2)
	check("east", b.Right(), 1.2)

	if _, ok := Bounds(nil, 0.1); ok {
		t.Fatalf("expected no bounds for empty groups")
	}
}
