// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

// Storage guarda o estado das janelas de rate limiting. Uma requisição
// rejeitada não altera o estado.
type Storage interface {
	FixedWindow(ctx context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error)
	SlidingWindow(ctx context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error)
}
