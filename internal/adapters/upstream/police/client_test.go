package police

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

const sampleCrimes = `[
  {
    "category": "anti-social-behaviour",
    "location_type": "Force",
    "location": {"latitude": "51.500617", "street": {"id": 1738842, "name": "On or near Birdcage Walk"}, "longitude": "-0.137431"},
    "context": "",
    "outcome_status": null,
    "persistent_id": "",
    "id": 116208998,
    "location_subtype": "",
    "month": "2024-01"
  },
  {
    "category": "burglary",
    "location_type": "Force",
    "location": {"latitude": "51.501400", "street": {"id": 1738843, "name": "On or near The Mall"}, "longitude": "-0.141900"},
    "context": "",
    "outcome_status": {"category": "Investigation complete; no suspect identified", "date": "2024-02"},
    "persistent_id": "abc123",
    "id": 116208999,
    "location_subtype": "",
    "month": "2024-01"
  }
]`

func TestStreetCrimes_ForwardsParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crimes-street/all-crime" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date") != "2024-01" || q.Get("lat") != "51.5" || q.Get("lng") != "-0.1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(sampleCrimes))
	}))
	defer srv.Close()

	crimes, err := newTestClient(t, srv).StreetCrimes(context.Background(), domain.CrimeQuery{Month: "2024-01", Latitude: 51.5, Longitude: -0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(crimes) != 2 {
		t.Fatalf("expected 2 crimes, got %d", len(crimes))
	}
	if crimes[0].OutcomeStatus != nil {
		t.Fatalf("expected null outcome status to stay nil")
	}
	if crimes[1].OutcomeStatus == nil || crimes[1].Location.Street.Name != "On or near The Mall" {
		t.Fatalf("unexpected second crime %+v", crimes[1])
	}
}

func TestStreetCrimes_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).StreetCrimes(context.Background(), domain.CrimeQuery{Month: "2024-01", Latitude: 51.5, Longitude: -0.1})

	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if nfErr.Message != msgNoData {
		t.Fatalf("unexpected message %q", nfErr.Message)
	}
}

func TestStreetCrimes_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).StreetCrimes(context.Background(), domain.CrimeQuery{Month: "2024-01", Latitude: 51.5, Longitude: -0.1})

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) || upErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected upstream error with status 502, got %v", err)
	}
}

func TestStreetCrimes_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	crimes, err := newTestClient(t, srv).StreetCrimes(context.Background(), domain.CrimeQuery{Month: "2024-01", Latitude: 51.5, Longitude: -0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if crimes == nil || len(crimes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", crimes)
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := New(srv.Client(), Config{BaseURL: srv.URL, UserAgent: "crime-map-test/1.0"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}
