package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the single-page frontend. Unknown paths fall back to
// index.html so client-side routes work on refresh.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// RegisterRoutes registers the static handler as the mux fallback.
func (h *StaticHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/", h)
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Reject path traversal before touching the filesystem.
	clean := filepath.Clean("/" + r.URL.Path)
	if strings.Contains(clean, "..") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.dir, clean)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
