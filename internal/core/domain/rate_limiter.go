// Package domain concentra entidades e estruturas centrais do crime-map.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Algorithm identifica a estratégia de janela usada por uma política.
type Algorithm string

const (
	AlgorithmFixed   Algorithm = "fixed"
	AlgorithmSliding Algorithm = "sliding"
)

// ParseAlgorithm aceita "fixed" ou "sliding", sem diferenciar maiúsculas.
func ParseAlgorithm(raw string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(raw))) {
	case AlgorithmFixed:
		return AlgorithmFixed, nil
	case AlgorithmSliding:
		return AlgorithmSliding, nil
	default:
		return "", fmt.Errorf("unknown rate limit algorithm: %q", raw)
	}
}

type RateLimitRule struct {
	Requests  int
	Window    time.Duration
	Algorithm Algorithm
}

// WindowState é o que o storage devolve após avaliar uma requisição.
type WindowState struct {
	Allowed bool
	Count   int
	ResetAt time.Time
}

type Decision struct {
	Allowed     bool
	Identifier  string
	Remaining   int
	ResetAt     time.Time
	RetryAfter  time.Duration
	AppliedRule RateLimitRule
}
