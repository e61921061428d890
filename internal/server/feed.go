package server

import (
	"net/http"

	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/feed"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/player"
	"github.com/reelview/reelview/internal/session"
)

type videoView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	ViewCount    int       `json:"viewCount"`
	Views        string    `json:"views"`
	CreatedAt    string    `json:"createdAt"`
	User         *api.User `json:"user,omitempty"`
}

type feedResponse struct {
	Mode       string           `json:"mode"` // "player", "grid", or "empty"
	Videos     []videoView      `json:"videos"`
	Active     *videoView       `json:"active,omitempty"`
	Engagement *player.Snapshot `json:"engagement,omitempty"`
	PrevURL    string           `json:"prevUrl,omitempty"`
	NextURL    string           `json:"nextUrl,omitempty"`
}

type navigationResponse struct {
	Cleared bool   `json:"cleared"`
	VideoID string `json:"videoId,omitempty"`
	URL     string `json:"url"`
}

func newVideoView(v api.Video) videoView {
	return videoView{
		ID:           v.ID,
		UserID:       v.UserID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		ViewCount:    v.ViewCount,
		Views:        httputil.FormatCount(v.ViewCount),
		CreatedAt:    v.CreatedAt,
		User:         v.User,
	}
}

func videoURL(id string) string {
	if id == "" {
		return "/"
	}
	return "/?video=" + id
}

// ensureSequence loads the feed sequence on first use and again when the
// viewer identity changes (login/logout swaps personalized for trending).
func (s *Server) ensureSequence(r *http.Request, st *browseState, viewer session.Viewer) {
	viewerKey := "anonymous"
	var user *api.User
	if viewer.Authenticated() {
		viewerKey = viewer.User.ID
		user = viewer.User
	}

	if st.hasLoaded && st.loadedFor == viewerKey {
		return
	}

	loader := feed.NewLoader(s.api.WithToken(viewer.Token))
	st.playlist.SetSequence(loader.Load(r.Context(), user))
	st.hasLoaded = true
	st.loadedFor = viewerKey
}

// activatePanel swaps the engagement panel and comment thread to the active
// video when it changed since the last request.
func (s *Server) activatePanel(r *http.Request, st *browseState, viewer session.Viewer) {
	active := st.playlist.Active()
	if active == nil {
		return
	}
	if st.panel == nil {
		st.panel = player.NewPanel(s.api.WithToken(viewer.Token))
	}
	if st.panel.VideoID() == active.ID {
		return
	}
	st.panel.Activate(r.Context(), *active, viewer.User)
	st.thread = player.NewThread(s.api.WithToken(viewer.Token), active.ID)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureSequence(r, st, viewer)

	if videoID := r.URL.Query().Get("video"); videoID != "" {
		if st.playlist.ActiveID() != videoID || st.playlist.Active() == nil {
			if err := st.playlist.SelectByID(r.Context(), s.api.WithToken(viewer.Token), videoID); err != nil {
				// Not-found or fetch failure: fall back to the grid below.
				st.playlist.ClearSelection()
			}
		}
	} else if st.playlist.ActiveID() != "" {
		// No video param means the grid: drop whatever cursor the session
		// holds, whether it came from a deep link or a started playthrough.
		st.playlist.ClearSelection()
	}

	s.activatePanel(r, st, viewer)

	display := st.playlist.Display()
	views := make([]videoView, 0, len(display))
	for _, v := range display {
		views = append(views, newVideoView(v))
	}

	resp := feedResponse{Mode: "grid", Videos: views}
	if len(display) == 0 {
		resp.Mode = "empty"
	}

	if active := st.playlist.Active(); active != nil {
		resp.Mode = "player"
		av := newVideoView(*active)
		resp.Active = &av
		snapshot := st.panel.Snapshot()
		resp.Engagement = &snapshot

		idx := -1
		for i, v := range display {
			if v.ID == active.ID {
				idx = i
				break
			}
		}
		if idx > 0 {
			resp.PrevURL = videoURL(display[idx-1].ID)
		}
		if idx >= 0 && idx < len(display)-1 {
			resp.NextURL = videoURL(display[idx+1].ID)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleFeedStart enters the player at the head of the display sequence, the
// grid's "start watching" action. No anchor is claimed.
func (s *Server) handleFeedStart(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureSequence(r, st, viewer)

	first := st.playlist.Start()
	if first == nil {
		httputil.WriteError(w, http.StatusNotFound, "no videos available")
		return
	}
	s.activatePanel(r, st, viewer)

	httputil.WriteJSON(w, http.StatusOK, navigationResponse{
		VideoID: first.ID,
		URL:     videoURL(first.ID),
	})
}

// handleFeedAdvance moves to the next video; it backs both the downward
// swipe and natural video end. Advancing past the end clears the selection.
func (s *Server) handleFeedAdvance(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	next, cleared := st.playlist.Advance()
	if cleared {
		httputil.WriteJSON(w, http.StatusOK, navigationResponse{Cleared: true, URL: "/"})
		return
	}
	s.activatePanel(r, st, viewer)

	httputil.WriteJSON(w, http.StatusOK, navigationResponse{
		VideoID: next.ID,
		URL:     videoURL(next.ID),
	})
}

// handleFeedRetreat moves to the previous video; a no-op at the first entry.
func (s *Server) handleFeedRetreat(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	prev := st.playlist.Retreat()
	if prev == nil {
		httputil.WriteJSON(w, http.StatusOK, navigationResponse{
			VideoID: st.playlist.ActiveID(),
			URL:     videoURL(st.playlist.ActiveID()),
		})
		return
	}
	s.activatePanel(r, st, viewer)

	httputil.WriteJSON(w, http.StatusOK, navigationResponse{
		VideoID: prev.ID,
		URL:     videoURL(prev.ID),
	})
}
