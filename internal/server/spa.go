package server

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// spaHandler serves the embedded frontend bundle. Anything that exists in the
// bundle is served as-is; every other path is a client route (/profile/someone,
// /?video=...) and gets the index shell so the frontend router can take over.
type spaHandler struct {
	assets http.Handler
	bundle fs.FS
}

func newSPAHandler(bundle fs.FS) *spaHandler {
	return &spaHandler{
		assets: http.FileServer(http.FS(bundle)),
		bundle: bundle,
	}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "index.html" {
		if _, err := fs.Stat(h.bundle, name); err == nil {
			h.assets.ServeHTTP(w, r)
			return
		}
	}
	h.serveIndex(w, r)
}

// serveIndex writes the shell directly rather than redirecting, so deep links
// keep their URL. The shell is never cached: a stale one would reference
// asset hashes that no longer exist after a deploy.
func (h *spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := h.bundle.Open("index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, f)
}
