// Package server assembles the HTTP surface of the web client: the feed and
// player view-models, session and auth proxying, profile, search, settings,
// and upload passthrough.
package server

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/ratelimit"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/internal/validate"
)

type Config struct {
	API               *api.Client
	Sessions          *session.Store
	WebFS             fs.FS
	BaseURL           string
	SessionSecret     string
	MaxUploadBytes    int64
	MaxThumbnailBytes int64
	RatePerSecond     float64
	RateBurst         int
	BrowseStateTTL    time.Duration
}

type Server struct {
	router            chi.Router
	api               *api.Client
	sessions          *session.Store
	browse            *browseStore
	webFS             fs.FS
	baseURL           string
	sessionSecret     string
	secureCookies     bool
	maxUploadBytes    int64
	maxThumbnailBytes int64
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(cfg.BaseURL))

	ttl := cfg.BrowseStateTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &Server{
		router:            r,
		api:               cfg.API,
		sessions:          cfg.Sessions,
		browse:            newBrowseStore(ttl),
		webFS:             cfg.WebFS,
		baseURL:           cfg.BaseURL,
		sessionSecret:     cfg.SessionSecret,
		secureCookies:     strings.HasPrefix(cfg.BaseURL, "https://"),
		maxUploadBytes:    cfg.MaxUploadBytes,
		maxThumbnailBytes: cfg.MaxThumbnailBytes,
	}

	s.routes(cfg)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Prune drops idle browse state; the janitor in main calls this.
func (s *Server) Prune() {
	s.browse.prune()
}

func (s *Server) routes(cfg Config) {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/limits", s.handleLimits)

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 10
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 30
	}
	limiter := ratelimit.NewLimiter(perSecond, burst)
	resolve := session.Middleware(s.sessions, s.sessionSecret, s.secureCookies)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(resolve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.Post("/logout", s.handleLogout)
			r.Get("/me", s.handleMe)
		})

		r.Route("/feed", func(r chi.Router) {
			r.Get("/", s.handleFeed)
			r.Post("/start", s.handleFeedStart)
			r.Post("/advance", s.handleFeedAdvance)
			r.Post("/retreat", s.handleFeedRetreat)
		})

		r.Route("/player", func(r chi.Router) {
			r.Post("/progress", s.handleProgress)
			r.Post("/like", s.handleToggleLike)
			r.Post("/follow", s.handleToggleFollow)
			r.Get("/comments", s.handleListComments)
			r.Post("/comments", s.handlePostComment)
		})

		r.Get("/profile/{username}", s.handleProfile)
		r.Get("/search", s.handleSearch)
		r.Put("/settings/profile", s.handleUpdateProfile)
		r.Post("/upload", s.handleUpload)
	})

	if s.webFS != nil {
		spa := newSPAHandler(s.webFS)
		s.router.NotFound(spa.ServeHTTP)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, validate.FieldLimits())
}
