package handlers

import (
	"fmt"
	"net/http"

	"github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

const geocodeInternalMessage = "Internal server error"

type GeocodeHandler struct {
	service ports.GeocodeService
}

func NewGeocodeHandler(service ports.GeocodeService) (*GeocodeHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("geocode service is required")
	}
	return &GeocodeHandler{service: service}, nil
}

// ServeHTTP atende GET /api/geocode?postcode=.
func (h *GeocodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Geocode(r.Context(), r.URL.Query().Get("postcode"))
	if err != nil {
		writeError(w, r, err, geocodeInternalMessage)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}
