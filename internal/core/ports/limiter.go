// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) (domain.Decision, error)
}
