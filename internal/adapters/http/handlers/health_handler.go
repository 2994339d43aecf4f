package handlers

import (
	"net/http"

	"github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
)

// HealthHandler responde sem passar pelos rate limiters.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
