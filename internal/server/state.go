package server

import (
	"sync"
	"time"

	"github.com/reelview/reelview/internal/player"
	"github.com/reelview/reelview/internal/playlist"
)

// browseState is the per-session navigation and engagement state: the
// playlist with its anchor slot, the engagement panel for the active video,
// and the comment thread. All mutations happen under the state's lock, so a
// session's navigation events apply one at a time.
type browseState struct {
	mu       sync.Mutex
	playlist *playlist.Playlist
	panel    *player.Panel
	thread   *player.Thread

	hasLoaded bool
	loadedFor string
	lastSeen  time.Time
}

type browseStore struct {
	mu     sync.Mutex
	states map[string]*browseState
	ttl    time.Duration
}

func newBrowseStore(ttl time.Duration) *browseStore {
	return &browseStore{
		states: make(map[string]*browseState),
		ttl:    ttl,
	}
}

func (b *browseStore) get(sessionID string) *browseState {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.states[sessionID]
	if !ok {
		st = &browseState{playlist: playlist.New()}
		b.states[sessionID] = st
	}
	st.lastSeen = time.Now()
	return st
}

func (b *browseStore) prune() {
	b.mu.Lock()
	for id, st := range b.states {
		if time.Since(st.lastSeen) > b.ttl {
			delete(b.states, id)
		}
	}
	b.mu.Unlock()
}
