package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
	"github.com/JeanGrijp/crime-map/internal/core/services"
	"github.com/JeanGrijp/crime-map/internal/observability/logger"
)

type MapHandler struct {
	crimes         ports.CrimeService
	geocoder       ports.GeocodeService
	geocodeLimiter ports.RateLimiter
}

// NewMapHandler recebe o limiter do geocode porque a busca por postcode
// consome a mesma cota de /api/geocode.
func NewMapHandler(crimes ports.CrimeService, geocoder ports.GeocodeService, geocodeLimiter ports.RateLimiter) (*MapHandler, error) {
	if crimes == nil {
		return nil, fmt.Errorf("crime service is required")
	}
	if geocoder == nil {
		return nil, fmt.Errorf("geocode service is required")
	}
	if geocodeLimiter == nil {
		return nil, fmt.Errorf("geocode limiter is required")
	}
	return &MapHandler{crimes: crimes, geocoder: geocoder, geocodeLimiter: geocodeLimiter}, nil
}

// ServeHTTP atende GET /api/crime-map. Sem lat/lng, um postcode é
// geocodificado primeiro e vira o foco do mapa. Sem o parâmetro categories,
// todas as categorias presentes ficam selecionadas; com ele vazio, nenhuma.
func (h *MapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lng := q.Get("lat"), q.Get("lng")

	var focus *domain.GeocodeResult
	if strings.TrimSpace(lat) == "" && strings.TrimSpace(lng) == "" && strings.TrimSpace(q.Get("postcode")) != "" {
		if _, err := h.geocodeLimiter.Allow(r.Context(), middleware.ClientKey(r)); err != nil {
			writeError(w, r, err, geocodeInternalMessage)
			return
		}
		result, err := h.geocoder.Geocode(r.Context(), q.Get("postcode"))
		if err != nil {
			writeError(w, r, err, geocodeInternalMessage)
			return
		}
		focus = &result
		lat, lng = domain.FormatCoordinate(result.Latitude), domain.FormatCoordinate(result.Longitude)
	}

	query, err := domain.ParseCrimeQuery(q.Get("date"), lat, lng)
	if err != nil {
		writeError(w, r, err, crimeInternalMessage)
		return
	}

	crimes, err := h.crimes.FetchIncidents(r.Context(), query)
	if err != nil {
		writeError(w, r, err, crimeInternalMessage)
		return
	}

	view := services.BuildMapView(crimes, selectionFromQuery(q["categories"], crimes), focus)
	if view.Summary.Dropped > 0 {
		logger.FromContext(r.Context()).Warn("incidents without numeric coordinates excluded from map",
			zap.Int("dropped", view.Summary.Dropped),
			zap.Int("total", view.Summary.Total),
			zap.String("month", query.Month),
		)
	}
	middleware.WriteJSON(w, http.StatusOK, view)
}

// selectionFromQuery aceita categories repetido ou separado por vírgulas.
func selectionFromQuery(values []string, crimes []domain.Crime) domain.CategorySelection {
	if values == nil {
		return domain.SelectionFromCrimes(crimes)
	}
	var categories []string
	for _, v := range values {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}
	return domain.NewCategorySelection(categories...)
}
