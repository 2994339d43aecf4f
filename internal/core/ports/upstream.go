package ports

import (
	"context"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

// Geocoder busca candidatos para um texto livre ou código postal.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
}

// CrimeSource consulta crimes de rua para um mês e um ponto.
type CrimeSource interface {
	StreetCrimes(ctx context.Context, query domain.CrimeQuery) ([]domain.Crime, error)
}

type GeocodeCache interface {
	Get(key string) (domain.GeocodeResult, bool)
	Set(key string, value domain.GeocodeResult)
}
