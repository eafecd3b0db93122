package middleware

import (
	"net/http"

	"github.com/rodrigoluft/rh-backoffice/pkg/logger"

	"github.com/google/uuid"
)

// TraceID assigns every request a trace identifier, reusing the one the
// caller sent when present. The identifier travels in the logging context
// and echoes back in the response headers.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTrace(r.Context(), traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
