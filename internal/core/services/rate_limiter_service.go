package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/JeanGrijp/crime-map/internal/clock"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

const unknownClient = "unknown"

// RateLimiterService aplica uma única política (geocode ou crime) sobre o storage.
type RateLimiterService struct {
	policy  string
	storage ports.Storage
	rule    domain.RateLimitRule
	clock   clock.Clock
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço para a política informada.
func NewRateLimiterService(policy string, storage ports.Storage, rule domain.RateLimitRule, clk clock.Clock) (*RateLimiterService, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	policy = strings.TrimSpace(policy)
	if policy == "" {
		return nil, fmt.Errorf("policy name is required")
	}
	if rule.Requests <= 0 || rule.Window <= 0 {
		return nil, fmt.Errorf("%s rule must have positive values", policy)
	}
	if _, err := domain.ParseAlgorithm(string(rule.Algorithm)); err != nil {
		return nil, fmt.Errorf("%s rule: %w", policy, err)
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}

	return &RateLimiterService{policy: policy, storage: storage, rule: rule, clock: clk}, nil
}

func (s *RateLimiterService) Rule() domain.RateLimitRule {
	return s.rule
}

// Allow avalia se a requisição do cliente pode prosseguir. Quando rejeitada,
// devolve a decisão junto com um *domain.RateLimitError.
func (s *RateLimiterService) Allow(ctx context.Context, clientKey string) (domain.Decision, error) {
	identifier := normalizeIdentifier(clientKey)
	key := buildKey(s.policy, identifier)
	now := s.clock.Now()

	var (
		state domain.WindowState
		err   error
	)
	switch s.rule.Algorithm {
	case domain.AlgorithmSliding:
		state, err = s.storage.SlidingWindow(ctx, key, s.rule, now)
	default:
		state, err = s.storage.FixedWindow(ctx, key, s.rule, now)
	}
	if err != nil {
		return domain.Decision{}, fmt.Errorf("%s rate limit storage: %w", s.policy, err)
	}

	remaining := s.rule.Requests - state.Count
	if remaining < 0 {
		remaining = 0
	}

	decision := domain.Decision{
		Allowed:     state.Allowed,
		Identifier:  identifier,
		Remaining:   remaining,
		ResetAt:     state.ResetAt,
		AppliedRule: s.rule,
	}
	if !state.Allowed {
		decision.Remaining = 0
		decision.RetryAfter = s.rule.Window
		return decision, &domain.RateLimitError{RetryAfter: s.rule.Window, Decision: decision}
	}

	return decision, nil
}

func normalizeIdentifier(clientKey string) string {
	identifier := strings.ToLower(strings.TrimSpace(clientKey))
	if identifier == "" {
		return unknownClient
	}
	return identifier
}

func buildKey(policy, identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", policy, identifier)
}
