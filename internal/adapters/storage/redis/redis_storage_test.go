package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

var start = time.UnixMilli(1705320000000)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("failed to create redis storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_RequiresAddress(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestFixedWindow(t *testing.T) {
	s := newTestStorage(t)
	rule := domain.RateLimitRule{Requests: 2, Window: time.Minute, Algorithm: domain.AlgorithmFixed}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		state, err := s.FixedWindow(ctx, "ratelimit:geocode:1.2.3.4", rule, start.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !state.Allowed || state.Count != i+1 {
			t.Fatalf("request %d: expected allowed with count %d, got %+v", i+1, i+1, state)
		}
	}

	state, err := s.FixedWindow(ctx, "ratelimit:geocode:1.2.3.4", rule, start.Add(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Allowed || state.Count != 2 {
		t.Fatalf("expected rejection without increment, got %+v", state)
	}
	if !state.ResetAt.Equal(start.Add(time.Minute)) {
		t.Fatalf("unexpected reset %v", state.ResetAt)
	}

	state, err = s.FixedWindow(ctx, "ratelimit:geocode:1.2.3.4", rule, start.Add(time.Minute+time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.Allowed || state.Count != 1 {
		t.Fatalf("expected new window, got %+v", state)
	}
}

func TestSlidingWindow(t *testing.T) {
	s := newTestStorage(t)
	rule := domain.RateLimitRule{Requests: 2, Window: time.Minute, Algorithm: domain.AlgorithmSliding}
	ctx := context.Background()
	key := "ratelimit:crime:1.2.3.4"

	if state, err := s.SlidingWindow(ctx, key, rule, start); err != nil || !state.Allowed {
		t.Fatalf("expected first request allowed, state=%+v err=%v", state, err)
	}
	if state, err := s.SlidingWindow(ctx, key, rule, start.Add(30*time.Second)); err != nil || !state.Allowed {
		t.Fatalf("expected second request allowed, state=%+v err=%v", state, err)
	}

	state, err := s.SlidingWindow(ctx, key, rule, start.Add(40*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Allowed || state.Count != 2 {
		t.Fatalf("expected rejection, got %+v", state)
	}
	if !state.ResetAt.Equal(start.Add(time.Minute)) {
		t.Fatalf("expected reset at oldest + window, got %v", state.ResetAt)
	}

	state, err = s.SlidingWindow(ctx, key, rule, start.Add(61*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.Allowed || state.Count != 2 {
		t.Fatalf("expected allowed after oldest left the window, got %+v", state)
	}
	if !state.ResetAt.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("expected reset at second timestamp + window, got %v", state.ResetAt)
	}
}
