package rest

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
)

//go:embed frontend
var frontendFS embed.FS

// NewFrontendHandler serves the embedded frontend directory. Paths that do
// not match an embedded file fall back to the index file.
func NewFrontendHandler(root string, index string) http.Handler {
	sub, err := fs.Sub(frontendFS, root)
	if err != nil {
		log.Errorf("embedded frontend directory %q is missing: %v", root, err)
		return http.NotFoundHandler()
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" || name == "." {
			name = index
		}
		if _, err := fs.Stat(sub, name); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}
		content, err := fs.ReadFile(sub, index)
		if err != nil {
			http.Error(w, "frontend index not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(content); err != nil {
			log.Errorf("failed to write frontend index: %v", err)
		}
	})
}
