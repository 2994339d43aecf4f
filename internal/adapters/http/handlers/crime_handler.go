package handlers

import (
	"fmt"
	"net/http"

	"github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

const crimeInternalMessage = "Failed to fetch crime data. Please try again later."

type CrimeHandler struct {
	service ports.CrimeService
}

func NewCrimeHandler(service ports.CrimeService) (*CrimeHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("crime service is required")
	}
	return &CrimeHandler{service: service}, nil
}

// ServeHTTP atende GET /api/street_level_crime?date=&lat=&lng= e devolve a
// lista no formato do upstream.
func (h *CrimeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := domain.ParseCrimeQuery(q.Get("date"), q.Get("lat"), q.Get("lng"))
	if err != nil {
		writeError(w, r, err, crimeInternalMessage)
		return
	}

	crimes, err := h.service.FetchIncidents(r.Context(), query)
	if err != nil {
		writeError(w, r, err, crimeInternalMessage)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, crimes)
}
