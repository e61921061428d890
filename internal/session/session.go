// Package session resolves the current viewer for each request. The backend
// credential is carried in a signed cookie; validation runs against the
// remote backend and resolved viewers are cached briefly per session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/reelview/reelview/internal/api"
)

// State is the lifecycle of a session's viewer resolution.
type State int

const (
	StateUninitialized State = iota
	StateValidating
	StateResolved
)

// Viewer is the per-request identity: an authenticated user or anonymous.
type Viewer struct {
	SessionID string
	Token     string
	User      *api.User
}

func (v Viewer) Authenticated() bool {
	return v.User != nil
}

// Backend validates stored credentials against the remote data service.
type Backend interface {
	ValidateToken(ctx context.Context, token string) (api.TokenValidation, error)
	UserForToken(ctx context.Context, token string) (api.User, error)
}

type entry struct {
	state     State
	user      *api.User
	token     string
	checkedAt time.Time
}

// Store caches resolved viewers by session id so every request does not pay
// a validation round-trip.
type Store struct {
	backend Backend
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

func NewStore(backend Backend, ttl time.Duration) *Store {
	return &Store{
		backend: backend,
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Resolve turns a stored credential into a viewer. An empty token resolves
// anonymous immediately. Validation failures resolve anonymous and drop the
// cached entry; concurrent resolutions for one session are last-write-wins.
func (s *Store) Resolve(ctx context.Context, sessionID, token string) Viewer {
	if token == "" {
		return Viewer{SessionID: sessionID}
	}

	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if ok && e.state == StateResolved && e.token == token && time.Since(e.checkedAt) < s.ttl {
		viewer := Viewer{SessionID: sessionID, Token: token, User: e.user}
		s.mu.Unlock()
		return viewer
	}
	s.entries[sessionID] = &entry{state: StateValidating, token: token}
	s.mu.Unlock()

	user := s.validate(ctx, token)

	s.mu.Lock()
	if user == nil {
		delete(s.entries, sessionID)
	} else {
		s.entries[sessionID] = &entry{state: StateResolved, user: user, token: token, checkedAt: time.Now()}
	}
	s.mu.Unlock()

	if user == nil {
		return Viewer{SessionID: sessionID}
	}
	return Viewer{SessionID: sessionID, Token: token, User: user}
}

func (s *Store) validate(ctx context.Context, token string) *api.User {
	validation, err := s.backend.ValidateToken(ctx, token)
	if err != nil {
		slog.Warn("session: token validation failed", "error", err)
		return nil
	}
	if !validation.Valid || validation.UserID == "" {
		return nil
	}

	user, err := s.backend.UserForToken(ctx, token)
	if err != nil {
		slog.Warn("session: user fetch failed after validation", "user_id", validation.UserID, "error", err)
		return nil
	}
	return &user
}

// Forget drops a session's cached viewer, e.g. on logout.
func (s *Store) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
}

// Prune evicts entries older than the cache TTL. Called from the janitor.
func (s *Store) Prune() {
	s.mu.Lock()
	for id, e := range s.entries {
		if e.state == StateResolved && time.Since(e.checkedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}
