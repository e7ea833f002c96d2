// Package static serves the embedded screen bundle.
package static

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed dist
var dist embed.FS

var assetExt = map[string]bool{
	".js": true, ".css": true, ".svg": true, ".ico": true, ".png": true,
	".jpg": true, ".mp3": true, ".wav": true, ".txt": true, ".map": true, ".json": true,
}

// Handler serves assets by extension and index.html for every other path so
// client-side routes resolve.
func Handler() http.Handler {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		return http.NotFoundHandler()
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if assetExt[path.Ext(r.URL.Path)] {
			files.ServeHTTP(w, r)
			return
		}
		b, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			http.Error(w, "index not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	})
}
