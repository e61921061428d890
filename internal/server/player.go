package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/player"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/internal/validate"
)

type progressRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

type progressResponse struct {
	Counted    bool            `json:"counted"`
	Engagement player.Snapshot `json:"engagement"`
}

type engagementResponse struct {
	Engagement player.Snapshot `json:"engagement"`
}

type commentListResponse struct {
	Comments []api.Comment `json:"comments"`
	Count    int           `json:"count"`
}

type postCommentRequest struct {
	Content string `json:"content"`
}

type postCommentResponse struct {
	Comment api.Comment `json:"comment"`
	Count   int         `json:"count"`
}

// activeBrowse returns the session's browse state locked, or reports that no
// video is active. The caller must unlock.
func (s *Server) activeBrowse(w http.ResponseWriter, r *http.Request) (*browseState, session.Viewer, bool) {
	viewer := session.ViewerFromContext(r.Context())
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	if st.panel == nil || st.panel.VideoID() == "" {
		st.mu.Unlock()
		httputil.WriteError(w, http.StatusConflict, "no active video")
		return nil, viewer, false
	}
	return st, viewer, true
}

// handleProgress receives playback positions. Crossing the view threshold
// counts the view once per activation and bumps the count optimistically.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	st, _, ok := s.activeBrowse(w, r)
	if !ok {
		return
	}
	defer st.mu.Unlock()

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	counted := st.panel.Progress(r.Context(), req.Position, req.Duration)
	httputil.WriteJSON(w, http.StatusOK, progressResponse{
		Counted:    counted,
		Engagement: st.panel.Snapshot(),
	})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	st, viewer, ok := s.activeBrowse(w, r)
	if !ok {
		return
	}
	defer st.mu.Unlock()

	if err := st.panel.ToggleLike(r.Context(), viewer.User); err != nil {
		writeEngagementError(w, err, "could not toggle like")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, engagementResponse{Engagement: st.panel.Snapshot()})
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	st, viewer, ok := s.activeBrowse(w, r)
	if !ok {
		return
	}
	defer st.mu.Unlock()

	if err := st.panel.ToggleFollow(r.Context(), viewer.User); err != nil {
		writeEngagementError(w, err, "could not toggle follow")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, engagementResponse{Engagement: st.panel.Snapshot()})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	st, _, ok := s.activeBrowse(w, r)
	if !ok {
		return
	}
	defer st.mu.Unlock()

	comments, count, err := st.thread.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "could not load comments")
		return
	}
	st.panel.SetCommentCount(count)
	httputil.WriteJSON(w, http.StatusOK, commentListResponse{Comments: comments, Count: count})
}

func (s *Server) handlePostComment(w http.ResponseWriter, r *http.Request) {
	st, viewer, ok := s.activeBrowse(w, r)
	if !ok {
		return
	}
	defer st.mu.Unlock()

	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validate.CommentBody(req.Content); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	comment, count, err := st.thread.Post(r.Context(), viewer.User, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, player.ErrAuthRequired):
			httputil.WriteError(w, http.StatusUnauthorized, "sign in to comment")
		case errors.Is(err, player.ErrEmptyComment):
			httputil.WriteError(w, http.StatusBadRequest, "comment is empty")
		default:
			httputil.WriteError(w, http.StatusBadGateway, "could not post comment")
		}
		return
	}
	st.panel.SetCommentCount(count)
	httputil.WriteJSON(w, http.StatusCreated, postCommentResponse{Comment: comment, Count: count})
}

func writeEngagementError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, player.ErrAuthRequired) {
		httputil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	httputil.WriteError(w, http.StatusBadGateway, fallback)
}
