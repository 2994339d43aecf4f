package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

const msgPostcodeNotFound = "Postcode not found"

type GeocodeConfig struct {
	// StrictPostcode rejeita entradas que não parecem código postal britânico.
	StrictPostcode bool
}

// GeocodeService valida a entrada, consulta o cache e depois o geocoder.
type GeocodeService struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	config   GeocodeConfig
}

var _ ports.GeocodeService = (*GeocodeService)(nil)

func NewGeocodeService(geocoder ports.Geocoder, cache ports.GeocodeCache, cfg GeocodeConfig) (*GeocodeService, error) {
	if geocoder == nil {
		return nil, fmt.Errorf("geocoder is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("geocode cache is required")
	}
	return &GeocodeService{geocoder: geocoder, cache: cache, config: cfg}, nil
}

func (s *GeocodeService) Geocode(ctx context.Context, raw string) (domain.GeocodeResult, error) {
	query, err := domain.ValidateGeocodeQuery(raw, s.config.StrictPostcode)
	if err != nil {
		return domain.GeocodeResult{}, err
	}

	key := cacheKey(query)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	places, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("geocode %q: %w", query, err)
	}

	place, ok := firstPlace(places)
	if !ok {
		return domain.GeocodeResult{}, &domain.NotFoundError{Message: msgPostcodeNotFound}
	}

	result, err := toGeocodeResult(place)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("geocode %q: %w", query, err)
	}

	s.cache.Set(key, result)
	return result, nil
}

// firstPlace aplica a política de seleção: o upstream pode devolver vários
// candidatos e o primeiro, o de maior ranking, é sempre o escolhido.
func firstPlace(places []domain.Place) (domain.Place, bool) {
	if len(places) == 0 {
		return domain.Place{}, false
	}
	return places[0], true
}

func toGeocodeResult(place domain.Place) (domain.GeocodeResult, error) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(place.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(place.Lon), 64)
	if latErr != nil || lonErr != nil || !finite(lat) || !finite(lon) {
		return domain.GeocodeResult{}, &domain.UpstreamError{
			Service: "nominatim",
			Err:     fmt.Errorf("non-numeric coordinates %q,%q", place.Lat, place.Lon),
		}
	}
	if err := domain.ValidateCoordinates(lat, lon); err != nil {
		return domain.GeocodeResult{}, &domain.UpstreamError{
			Service: "nominatim",
			Err:     fmt.Errorf("coordinates %q,%q: %v", place.Lat, place.Lon, err),
		}
	}
	return domain.GeocodeResult{Latitude: lat, Longitude: lon, DisplayName: place.DisplayName}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cacheKey(query string) string {
	if domain.IsPostcode(query) {
		return "postcode:" + domain.NormalizePostcode(query)
	}
	return "place:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}
