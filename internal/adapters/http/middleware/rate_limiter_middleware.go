// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
	"github.com/JeanGrijp/crime-map/internal/observability/logger"
)

const (
	RateLimitExceededMessage = "Rate limit exceeded. Please try again later."
	internalErrorMessage     = "Internal server error"
	unknownClient            = "unknown"
)

// ErrorBody é o corpo de erro comum a todas as rotas da API.
type ErrorBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// NewRateLimiterMiddleware aplica o limiter antes de qualquer validação do
// handler, como nas rotas originais.
func NewRateLimiterMiddleware(limiter ports.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(r.Context(), ClientKey(r))
			if err != nil {
				if domain.IsRateLimitError(err) {
					logger.FromContext(r.Context()).Info("rate limit exceeded",
						zap.String("client", decision.Identifier),
						zap.Time("reset_at", decision.ResetAt),
					)
					writeTooManyRequests(w, decision)
					return
				}

				logger.FromContext(r.Context()).Error("rate limiter failed", zap.Error(err))
				WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: internalErrorMessage})
				return
			}

			if !decision.Allowed {
				writeTooManyRequests(w, decision)
				return
			}

			setRateLimitHeaders(w, decision)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey deriva o identificador do cliente da cadeia de headers de proxy:
// X-Forwarded-For, X-Real-IP e CF-Connecting-IP. Qualquer cliente pode
// forjar esses headers, então a chave é uma heurística e não uma barreira
// de segurança.
func ClientKey(r *http.Request) string {
	xForwardedFor := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xForwardedFor != "" {
		parts := strings.Split(xForwardedFor, ",")
		if first := strings.TrimSpace(parts[0]); first != "" {
			return first
		}
	}

	xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xRealIP != "" {
		return xRealIP
	}

	cfConnectingIP := strings.TrimSpace(r.Header.Get("CF-Connecting-IP"))
	if cfConnectingIP != "" {
		return cfConnectingIP
	}

	return unknownClient
}

func setRateLimitHeaders(w http.ResponseWriter, decision domain.Decision) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(decision.AppliedRule.Requests))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	if !decision.ResetAt.IsZero() {
		h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
	}
}

func writeTooManyRequests(w http.ResponseWriter, decision domain.Decision) {
	retryAfter := RetryAfterSeconds(decision.RetryAfter)
	setRateLimitHeaders(w, decision)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	WriteJSON(w, http.StatusTooManyRequests, ErrorBody{Error: RateLimitExceededMessage, RetryAfter: retryAfter})
}

// RetryAfterSeconds arredonda para cima, com mínimo de um segundo.
func RetryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// WriteJSON serializa body antes de escrever o status, para que uma falha de
// encoding vire 500 em vez de um 200 com corpo vazio.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorBody{Error: internalErrorMessage})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
