package middleware

import (
	"net/http"

	"github.com/templui/goalboard/internal/ctxkeys"
)

// WithURLPath stores the request path so pages can mark the active view.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
