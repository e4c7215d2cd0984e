package middleware

import (
	"net/http"

	"github.com/templui/goalboard/internal/config"
	"github.com/templui/goalboard/internal/ctxkeys"
)

// Config adds the sanitized configuration to the request context.
// Storage credentials and connection strings are left out.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
