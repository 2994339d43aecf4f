// Package memory disponibiliza o storage de rate limiting em memória do processo.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JeanGrijp/crime-map/internal/clock"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

type fixedEntry struct {
	count   int
	resetAt time.Time
}

type slidingEntry struct {
	window     time.Duration
	timestamps []time.Time
}

// Storage guarda contadores e logs de timestamps protegidos por um mutex.
// Entradas expiradas só somem com Sweep, então Run deve estar ativo em
// processos de longa duração.
type Storage struct {
	mu      sync.Mutex
	fixed   map[string]*fixedEntry
	sliding map[string]*slidingEntry
	clock   clock.Clock
}

var _ ports.Storage = (*Storage)(nil)

func New(clk clock.Clock) *Storage {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Storage{
		fixed:   make(map[string]*fixedEntry),
		sliding: make(map[string]*slidingEntry),
		clock:   clk,
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) FixedWindow(_ context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.fixed[key]
	if !ok || now.After(entry.resetAt) {
		entry = &fixedEntry{count: 1, resetAt: now.Add(rule.Window)}
		s.fixed[key] = entry
		return domain.WindowState{Allowed: true, Count: entry.count, ResetAt: entry.resetAt}, nil
	}

	if entry.count >= rule.Requests {
		return domain.WindowState{Allowed: false, Count: entry.count, ResetAt: entry.resetAt}, nil
	}

	entry.count++
	return domain.WindowState{Allowed: true, Count: entry.count, ResetAt: entry.resetAt}, nil
}

func (s *Storage) SlidingWindow(_ context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous []time.Time
	if entry, ok := s.sliding[key]; ok {
		previous = entry.timestamps
	}
	valid := pruneBefore(previous, now.Add(-rule.Window))

	if len(valid) >= rule.Requests {
		return domain.WindowState{Allowed: false, Count: len(valid), ResetAt: valid[0].Add(rule.Window)}, nil
	}

	valid = append(valid, now)
	s.sliding[key] = &slidingEntry{window: rule.Window, timestamps: valid}
	return domain.WindowState{Allowed: true, Count: len(valid), ResetAt: valid[0].Add(rule.Window)}, nil
}

// Sweep remove entradas cuja janela já expirou e devolve quantas foram removidas.
func (s *Storage) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.fixed {
		if now.After(entry.resetAt) {
			delete(s.fixed, key)
			removed++
		}
	}
	for key, entry := range s.sliding {
		entry.timestamps = pruneBefore(entry.timestamps, now.Add(-entry.window))
		if len(entry.timestamps) == 0 {
			delete(s.sliding, key)
			removed++
		}
	}
	return removed
}

// Len devolve o número de chaves de cliente guardadas.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fixed) + len(s.sliding)
}

// Run executa Sweep a cada interval até ctx ser cancelado. onSweep, se não
// for nil, recebe a contagem de cada varredura.
func (s *Storage) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep(s.clock.Now())
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

// pruneBefore devolve uma nova fatia só com timestamps posteriores a cutoff.
func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	valid := make([]time.Time, 0, len(timestamps)+1)
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	return valid
}
