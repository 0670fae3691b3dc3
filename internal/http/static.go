package httphandler

import (
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// NewStaticHandler serves the embedded css and js with cache headers per asset type
func NewStaticHandler(fsys fs.FS) http.Handler {
	files := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		ext := strings.ToLower(filepath.Ext(r.URL.Path))
		switch ext {
		case ".css", ".js", ".svg", ".png", ".ico":
			w.Header().Set("Cache-Control", "public, max-age=86400")
		default:
			w.Header().Set("Cache-Control", "no-cache")
		}
		if c := mime.TypeByExtension(ext); c != "" {
			w.Header().Set("Content-Type", c)
		}
		files.ServeHTTP(w, r)
	})
}
