package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/transport"
)

const (
	apiVersionHeader = "X-API-Version"
	apiVersionQuery  = "api-version"
)

// parseVersion maps the accepted version spellings to a major version. The
// empty string resolves to the default 1.0.
func parseVersion(raw string) (int, bool) {
	switch strings.TrimSpace(raw) {
	case "", "1", "1.0":
		return 1, true
	case "2", "2.0":
		return 2, true
	}
	return 0, false
}

// VersionResolver resolves the caller's API version from the X-API-Version
// header or the api-version query parameter and stores it in the request
// context. Requests naming an unknown version are rejected before routing.
func VersionResolver(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(apiVersionHeader)
			if raw == "" {
				raw = r.URL.Query().Get(apiVersionQuery)
			}

			version, ok := parseVersion(raw)
			if !ok {
				base.WriteAppError(w, internal.NewValidationError(
					fmt.Sprintf("versão de API não suportada: %s", raw),
					internal.ErrCodeInvalidVersion,
				))
				return
			}

			ctx := internal.ContextWithAPIVersion(r.Context(), version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// byVersion picks the handler matching the resolved API version. Operations
// absent from the resolved version are rejected.
func byVersion(base *transport.BaseHandler, v1, v2 http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler := v1
		if internal.APIVersionFromContext(r.Context()) == 2 {
			handler = v2
		}
		if handler == nil {
			base.WriteAppError(w, internal.NewValidationError(
				"operação não suportada nesta versão da API",
				internal.ErrCodeInvalidVersion,
			))
			return
		}
		handler(w, r)
	}
}
