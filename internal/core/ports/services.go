package ports

import (
	"context"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

type GeocodeService interface {
	Geocode(ctx context.Context, query string) (domain.GeocodeResult, error)
}

type CrimeService interface {
	FetchIncidents(ctx context.Context, query domain.CrimeQuery) ([]domain.Crime, error)
}
