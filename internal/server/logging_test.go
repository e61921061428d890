package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLoggerRecordsAPIRequests(t *testing.T) {
	buf := captureLogs(t)
	h := requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feed/?video=v7", nil))

	line := buf.String()
	if !strings.Contains(line, "status=418") {
		t.Errorf("log = %q, want recorded status", line)
	}
	if !strings.Contains(line, "bytes=5") {
		t.Errorf("log = %q, want recorded body size", line)
	}
	if !strings.Contains(line, "video=v7") {
		t.Errorf("log = %q, want deep-link video id", line)
	}
}

func TestRequestLoggerSkipsHealthAndAssets(t *testing.T) {
	buf := captureLogs(t)
	h := requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/api/health", "/assets/app.js", "/profile/alice"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if buf.Len() != 0 {
		t.Errorf("log = %q, want nothing for health and asset traffic", buf.String())
	}
}
