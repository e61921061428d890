package server

import (
	"encoding/json"
	"net/http"

	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/internal/validate"
)

type credentialsRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type viewerResponse struct {
	User *api.User `json:"user"`
}

// issueSession binds a fresh backend token to the caller's session and
// rewrites the cookie.
func (s *Server) issueSession(w http.ResponseWriter, viewer session.Viewer, token string) error {
	s.sessions.Forget(viewer.SessionID)
	value, err := session.EncodeCookie(s.sessionSecret, viewer.SessionID, token)
	if err != nil {
		return err
	}
	session.SetCookie(w, value, s.secureCookies)
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := s.api.Login(r.Context(), api.LoginRequest{Username: req.Username, Password: req.Password})
	if err != nil || resp.Token == "" {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := s.issueSession(w, viewer, resp.Token); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "could not establish session")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewerResponse{User: resp.User})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validate.Username(req.Username); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Password(req.Password); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Bio(req.Bio); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	resp, err := s.api.Register(r.Context(), api.RegisterRequest{
		Username:  req.Username,
		Password:  req.Password,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil || resp.Token == "" {
		httputil.WriteError(w, http.StatusConflict, "could not create account")
		return
	}

	if err := s.issueSession(w, viewer, resp.Token); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "could not establish session")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, viewerResponse{User: resp.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	s.sessions.Forget(viewer.SessionID)

	// Keep the session id but drop the credential, so anonymous browse
	// state survives the logout.
	if value, err := session.EncodeCookie(s.sessionSecret, viewer.SessionID, ""); err == nil {
		session.SetCookie(w, value, s.secureCookies)
	} else {
		session.ClearCookie(w, s.secureCookies)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	if !viewer.Authenticated() {
		httputil.WriteError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewerResponse{User: viewer.User})
}
