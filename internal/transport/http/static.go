package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// mountStatic раздаёт собранный фронтенд. Неизвестные пути отдают
// index.html — роутинг на стороне SPA.
func mountStatic(r chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimPrefix(req.URL.Path, "/")
		if path != "" {
			if _, err := os.Stat(filepath.Join(dir, filepath.Clean(path))); err == nil {
				fs.ServeHTTP(w, req)
				return
			}
		}
		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	})
}
