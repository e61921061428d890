package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/internal/validate"
)

type profileResponse struct {
	User        api.User      `json:"user"`
	Videos      []api.Video   `json:"videos"`
	Stats       api.UserStats `json:"stats"`
	IsFollowing bool          `json:"isFollowing"`
	IsSelf      bool          `json:"isSelf"`
}

type searchResponse struct {
	Users  []api.User  `json:"users,omitempty"`
	Videos []api.Video `json:"videos,omitempty"`
}

type updateProfileRequest struct {
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	username := chi.URLParam(r, "username")
	cli := s.api.WithToken(viewer.Token)

	user, err := cli.UserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httputil.WriteError(w, http.StatusBadGateway, "could not load profile")
		return
	}

	resp := profileResponse{User: user}
	resp.IsSelf = viewer.Authenticated() && viewer.User.ID == user.ID

	// Videos and stats are best-effort; the page renders without them.
	if videos, err := cli.VideosByUser(r.Context(), user.ID); err == nil {
		resp.Videos = videos
	}
	if stats, err := cli.UserStats(r.Context(), user.ID); err == nil {
		resp.Stats = stats
	}
	if viewer.Authenticated() && !resp.IsSelf {
		if following, err := cli.IsFollowing(r.Context(), viewer.User.ID, user.ID); err == nil {
			resp.IsFollowing = following
		}
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	query := r.URL.Query().Get("query")
	kind := r.URL.Query().Get("type")
	if query == "" {
		httputil.WriteJSON(w, http.StatusOK, searchResponse{})
		return
	}

	cli := s.api.WithToken(viewer.Token)
	switch kind {
	case "videos":
		videos, err := cli.SearchVideos(r.Context(), query)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, "search failed")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, searchResponse{Videos: videos})
	case "users", "":
		users, err := cli.SearchUsers(r.Context(), query)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, "search failed")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, searchResponse{Users: users})
	default:
		httputil.WriteError(w, http.StatusBadRequest, "unknown search type")
	}
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	if !viewer.Authenticated() {
		httputil.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username != nil {
		if msg := validate.Username(*req.Username); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Bio != nil {
		if msg := validate.Bio(*req.Bio); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}

	updated, err := s.api.WithToken(viewer.Token).UpdateUser(r.Context(), viewer.User.ID, api.UserUpdate{
		Username:  req.Username,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "could not update profile")
		return
	}

	// The cached session viewer is now stale; drop it so the next request
	// re-resolves the updated profile.
	s.sessions.Forget(viewer.SessionID)

	httputil.WriteJSON(w, http.StatusOK, viewerResponse{User: &updated})
}
