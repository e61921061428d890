package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// responseMeta captures what the handler chain wrote so the access log can
// report it after the fact.
type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(code int) {
	m.status = code
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeta) Write(b []byte) (int, error) {
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

func (m *responseMeta) Unwrap() http.ResponseWriter {
	return m.ResponseWriter
}

// requestLogger emits one structured line per API request. Health checks and
// static asset traffic for the embedded frontend stay out of the log; a
// video deep link, when present, is recorded alongside the path since it is
// what most requests to this service hinge on.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" || !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		meta := &responseMeta{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(meta, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", meta.status,
			"bytes", meta.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		if video := r.URL.Query().Get("video"); video != "" {
			attrs = append(attrs, "video", video)
		}
		slog.Info("api request", attrs...)
	})
}
