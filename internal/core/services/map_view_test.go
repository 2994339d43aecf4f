package services

import (
	"testing"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

func TestBuildMapView(t *testing.T) {
	crimes := []domain.Crime{
		crimeAt(1, "drugs", "51.5", "-0.1", "High Street"),
		crimeAt(2, "violent-crime", "51.5", "-0.1", "High Street"),
		crimeAt(3, "burglary", "51.6", "-0.2", "Station Road"),
		crimeAt(4, "drugs", "bad", "-0.2", "Nowhere"),
	}
	selection := domain.NewCategorySelection("drugs", "violent-crime")
	focus := &domain.GeocodeResult{Latitude: 51.5, Longitude: -0.1, DisplayName: "Somewhere"}

	view := BuildMapView(crimes, selection, focus)

	if view.Focus != focus {
		t.Fatalf("expected focus to be carried through")
	}
	if len(view.Markers) != 1 {
		t.Fatalf("expected one marker, got %d", len(view.Markers))
	}
	m := view.Markers[0]
	if m.Count != 2 || m.DominantCategory != "violent-crime" || m.Color != "#dc2626" {
		t.Fatalf("unexpected marker %+v", m)
	}
	if m.Size != 24 || m.FontSize != "12px" {
		t.Fatalf("unexpected marker size %d/%s", m.Size, m.FontSize)
	}
	if len(m.Categories) != 2 || m.Categories[0].Label != "Drugs" || m.Categories[1].Label != "Violent Crime" {
		t.Fatalf("unexpected breakdown %+v", m.Categories)
	}

	want := domain.Summary{Total: 4, Shown: 3, Dropped: 1, SelectedCategories: 2, AvailableCategories: 3}
	if view.Summary != want {
		t.Fatalf("expected summary %+v, got %+v", want, view.Summary)
	}

	if len(view.Legend) != 2 {
		t.Fatalf("expected legend over filtered categories, got %+v", view.Legend)
	}
	if len(view.Filters) != 3 {
		t.Fatalf("expected filter entries for every category, got %+v", view.Filters)
	}
	for _, f := range view.Filters {
		if f.Category == "burglary" && f.Selected {
			t.Fatalf("burglary should not be selected")
		}
	}
	if view.Bounds == nil {
		t.Fatalf("expected bounds when markers exist")
	}
}

func TestBuildMapView_EmptySelection(t *testing.T) {
	crimes := []domain.Crime{crimeAt(1, "drugs", "51.5", "-0.1", "High Street")}

	view := BuildMapView(crimes, domain.CategorySelection{}, nil)

	if len(view.Markers) != 0 || view.Bounds != nil || view.Summary.Shown != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestMarkerSize(t *testing.T) {
	cases := []struct {
		count int
		size  int
		font  string
	}{
		{1, 20, "11px"},
		{9, 24, "12px"},
		{10, 28, "13px"},
		{99, 28, "13px"},
		{100, 32, "14px"},
	}
	for _, tc := range cases {
		size, font := MarkerSize(tc.count)
		if size != tc.size || font != tc.font {
			t.Errorf("MarkerSize(%d) = %d/%s, want %d/%s", tc.count, size, font, tc.size, tc.font)
		}
	}
}
