package nominatim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

func TestSearch_SendsScopedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "SW1A 1AA" || q.Get("format") != "json" || q.Get("countrycodes") != "gb" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "crime-map-test/1.0" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":1,"lat":"51.5014","lon":"-0.1419","display_name":"Buckingham Palace, London"}]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.Client())

	places, err := client.Search(context.Background(), "SW1A 1AA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 || places[0].Lat != "51.5014" || places[0].DisplayName != "Buckingham Palace, London" {
		t.Fatalf("unexpected places %+v", places)
	}
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, srv.Client()).Search(context.Background(), "SW1A 1AA")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", upErr.StatusCode)
	}
}

func TestSearch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	httpClient := srv.Client()
	httpClient.Timeout = 20 * time.Millisecond

	_, err := newTestClient(t, srv.URL, httpClient).Search(context.Background(), "SW1A 1AA")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) || !upErr.Timeout {
		t.Fatalf("expected timeout upstream error, got %v", err)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, srv.Client()).Search(context.Background(), "SW1A 1AA")
	if !domain.IsUpstreamError(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNew_RequiresUserAgent(t *testing.T) {
	if _, err := New(http.DefaultClient, Config{BaseURL: "http://example.test"}); err == nil {
		t.Fatalf("expected error without user agent")
	}
}

func newTestClient(t *testing.T, baseURL string, httpClient *http.Client) *Client {
	t.Helper()
	client, err := New(httpClient, Config{BaseURL: baseURL, UserAgent: "crime-map-test/1.0"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}
