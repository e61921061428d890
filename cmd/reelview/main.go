package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/config"
	"github.com/reelview/reelview/internal/server"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	backend := api.New(cfg.BackendURL)
	sessions := session.NewStore(backend, cfg.SessionCacheTTL)

	var webFS fs.FS
	if sub, err := fs.Sub(web.DistFS, "dist"); err == nil {
		webFS = sub
		log.Println("embedded frontend loaded")
	} else {
		log.Println("no embedded frontend found, SPA serving disabled")
	}

	srv := server.New(server.Config{
		API:               backend,
		Sessions:          sessions,
		WebFS:             webFS,
		BaseURL:           cfg.BaseURL,
		SessionSecret:     cfg.SessionSecret,
		MaxUploadBytes:    cfg.MaxUploadBytes,
		MaxThumbnailBytes: cfg.MaxThumbnailBytes,
		RatePerSecond:     cfg.RateLimitPerSecond,
		RateBurst:         cfg.RateLimitBurst,
		BrowseStateTTL:    cfg.BrowseStateTTL,
	})

	log.Printf("using backend %s", cfg.BackendURL)

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	go janitor(janitorCtx, srv, sessions, 10*time.Minute)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("reelview listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

// janitor evicts idle browse state and stale session cache entries.
func janitor(ctx context.Context, srv *server.Server, sessions *session.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			srv.Prune()
			sessions.Prune()
		}
	}
}
