package services

import (
	"context"
	"fmt"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

// CrimeService repassa consultas já validadas para a fonte de crimes.
type CrimeService struct {
	source ports.CrimeSource
}

var _ ports.CrimeService = (*CrimeService)(nil)

func NewCrimeService(source ports.CrimeSource) (*CrimeService, error) {
	if source == nil {
		return nil, fmt.Errorf("crime source is required")
	}
	return &CrimeService{source: source}, nil
}

// FetchIncidents revalida coordenadas e mês, pois o query pode não ter vindo
// de domain.ParseCrimeQuery.
func (s *CrimeService) FetchIncidents(ctx context.Context, query domain.CrimeQuery) ([]domain.Crime, error) {
	if err := domain.ValidateMonth(query.Month); err != nil {
		return nil, err
	}
	if err := domain.ValidateCoordinates(query.Latitude, query.Longitude); err != nil {
		return nil, err
	}

	crimes, err := s.source.StreetCrimes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("street crimes %s at %s,%s: %w", query.Month,
			domain.FormatCoordinate(query.Latitude), domain.FormatCoordinate(query.Longitude), err)
	}
	return crimes, nil
}
