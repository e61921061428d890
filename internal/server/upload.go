package server

import (
	"net/http"
	"strings"

	"github.com/reelview/reelview/internal/api"
	"github.com/reelview/reelview/internal/httputil"
	"github.com/reelview/reelview/internal/session"
	"github.com/reelview/reelview/internal/validate"
)

// handleUpload validates the upload form and streams it through to the
// backend, which owns the actual file storage.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	viewer := session.ViewerFromContext(r.Context())
	if !viewer.Authenticated() {
		httputil.WriteError(w, http.StatusUnauthorized, "sign in to upload videos")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+s.maxThumbnailBytes+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.WriteError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	defer r.MultipartForm.RemoveAll()

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if msg := validate.Title(title); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Description(description); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer videoFile.Close()

	videoType := videoHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(videoType, "video/") {
		httputil.WriteError(w, http.StatusBadRequest, "file must be a video")
		return
	}
	if videoHeader.Size > s.maxUploadBytes {
		httputil.WriteError(w, http.StatusRequestEntityTooLarge, "video file is too large")
		return
	}

	upload := api.VideoUpload{
		Title:       title,
		Description: description,
		UserID:      viewer.User.ID,
		Video: api.UploadPart{
			FieldName:   "video",
			Filename:    videoHeader.Filename,
			ContentType: videoType,
			Reader:      videoFile,
		},
	}

	if thumbFile, thumbHeader, err := r.FormFile("thumbnail"); err == nil {
		defer thumbFile.Close()
		thumbType := thumbHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(thumbType, "image/") {
			httputil.WriteError(w, http.StatusBadRequest, "thumbnail must be an image")
			return
		}
		if thumbHeader.Size > s.maxThumbnailBytes {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "thumbnail is too large")
			return
		}
		upload.Thumbnail = &api.UploadPart{
			FieldName:   "thumbnail",
			Filename:    thumbHeader.Filename,
			ContentType: thumbType,
			Reader:      thumbFile,
		}
	}

	video, err := s.api.WithToken(viewer.Token).UploadVideo(r.Context(), upload)
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "upload failed")
		return
	}

	// A successful upload invalidates the loaded feed so the next visit
	// picks the new video up.
	st := s.browse.get(viewer.SessionID)
	st.mu.Lock()
	st.hasLoaded = false
	st.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, newVideoView(video))
}
