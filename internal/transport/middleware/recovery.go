package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
)

// RecoveryMiddleware turns panics into generic internal errors. The panic
// value stays in the logs and never reaches the response body.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					resp := errors.Response{Error: errors.NewInternalError("erro interno do servidor", nil)}
					if err := json.NewEncoder(w).Encode(resp); err != nil {
						logger.Error("failed to encode panic response", "error", err)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
