// Package handlers agrupa os handlers HTTP da API do crime-map.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/JeanGrijp/crime-map/internal/adapters/http/middleware"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/observability/logger"
)

// writeError traduz a taxonomia de erros do domínio para status HTTP.
// Mensagens de validação e de não encontrado vão para o cliente; o resto é
// registrado e respondido com internalMessage.
func writeError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	log := logger.FromContext(r.Context())

	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		rateLimitErr  *domain.RateLimitError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Info("invalid request", zap.Strings("fields", validationErr.Fields), zap.String("reason", validationErr.Message))
		middleware.WriteJSON(w, http.StatusBadRequest, middleware.ErrorBody{Error: validationErr.Message})
	case errors.As(err, &notFoundErr):
		log.Info("no upstream data", zap.Error(err))
		middleware.WriteJSON(w, http.StatusNotFound, middleware.ErrorBody{Error: notFoundErr.Message})
	case errors.As(err, &rateLimitErr):
		retryAfter := middleware.RetryAfterSeconds(rateLimitErr.RetryAfter)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		middleware.WriteJSON(w, http.StatusTooManyRequests, middleware.ErrorBody{Error: middleware.RateLimitExceededMessage, RetryAfter: retryAfter})
	default:
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			log.Error("upstream request failed",
				zap.String("service", upstreamErr.Service),
				zap.Int("upstream_status", upstreamErr.StatusCode),
				zap.Bool("timeout", upstreamErr.Timeout),
				zap.Error(err),
			)
		} else {
			log.Error("request failed", zap.Error(err))
		}
		middleware.WriteJSON(w, http.StatusInternalServerError, middleware.ErrorBody{Error: internalMessage})
	}
}
