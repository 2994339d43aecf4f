// Package router monta as rotas HTTP do crime-map.
package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	httpHandlers "github.com/JeanGrijp/crime-map/internal/adapters/http/handlers"
	httpMiddleware "github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
	"github.com/JeanGrijp/crime-map/internal/observability/logger"
)

type Deps struct {
	Logger         *zap.Logger
	GeocodeLimiter ports.RateLimiter
	CrimeLimiter   ports.RateLimiter
	Geocode        ports.GeocodeService
	Crimes         ports.CrimeService
}

// New devolve o handler raiz. Cada rota da API passa pelo seu limiter antes
// de qualquer validação; /healthz não é limitado.
func New(deps Deps) (http.Handler, error) {
	geocodeHandler, err := httpHandlers.NewGeocodeHandler(deps.Geocode)
	if err != nil {
		return nil, fmt.Errorf("geocode handler: %w", err)
	}
	crimeHandler, err := httpHandlers.NewCrimeHandler(deps.Crimes)
	if err != nil {
		return nil, fmt.Errorf("crime handler: %w", err)
	}
	mapHandler, err := httpHandlers.NewMapHandler(deps.Crimes, deps.Geocode, deps.GeocodeLimiter)
	if err != nil {
		return nil, fmt.Errorf("map handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(logger.Middleware(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", httpHandlers.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.With(httpMiddleware.NewRateLimiterMiddleware(deps.GeocodeLimiter)).
			Method(http.MethodGet, "/geocode", geocodeHandler)

		r.Group(func(r chi.Router) {
			r.Use(httpMiddleware.NewRateLimiterMiddleware(deps.CrimeLimiter))
			r.Method(http.MethodGet, "/street_level_crime", crimeHandler)
			r.Method(http.MethodGet, "/crime-map", mapHandler)
		})
	})

	return r, nil
}
