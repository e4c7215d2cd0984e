package ui

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes c as an HTML page. The component is rendered into a buffer
// first so a failure mid-way still produces a clean 500.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	err := c.Render(r.Context(), &buf)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Error("failed to write page", "error", err, "path", r.URL.Path)
	}
}
