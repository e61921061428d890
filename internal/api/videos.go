package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

func (c *Client) VideoByID(ctx context.Context, id string) (Video, error) {
	var video Video
	err := c.get(ctx, "/api/videos/"+url.PathEscape(id), &video)
	return video, err
}

// FeedForUser returns the personalized feed in server order.
func (c *Client) FeedForUser(ctx context.Context, userID string) ([]Video, error) {
	var videos []Video
	err := c.get(ctx, "/api/videos/feed/"+url.PathEscape(userID), &videos)
	return videos, err
}

func (c *Client) TrendingVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	err := c.get(ctx, "/api/videos/trending", &videos)
	return videos, err
}

func (c *Client) VideosByUser(ctx context.Context, userID string) ([]Video, error) {
	var videos []Video
	err := c.get(ctx, "/api/videos/user/"+url.PathEscape(userID), &videos)
	return videos, err
}

func (c *Client) SearchVideos(ctx context.Context, query string) ([]Video, error) {
	var videos []Video
	err := c.get(ctx, "/api/videos/search?query="+url.QueryEscape(query), &videos)
	return videos, err
}

// IncrementViewCount is fire-and-forget from the caller's perspective; the
// response body carries nothing we reconcile against.
func (c *Client) IncrementViewCount(ctx context.Context, id string) error {
	return c.post(ctx, "/api/videos/"+url.PathEscape(id)+"/view", nil, nil)
}

func (c *Client) VideoStats(ctx context.Context, id string) (VideoStats, error) {
	var stats VideoStats
	err := c.get(ctx, "/api/videos/"+url.PathEscape(id)+"/stats", &stats)
	return stats, err
}

// UploadPart is one file of a multipart video upload.
type UploadPart struct {
	FieldName   string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// VideoUpload carries the form the upload screen submits.
type VideoUpload struct {
	Title       string
	Description string
	UserID      string
	Video       UploadPart
	Thumbnail   *UploadPart
}

// UploadVideo forwards a multipart upload to the backend and returns the
// created video. The backend owns the actual file storage.
func (c *Client) UploadVideo(ctx context.Context, upload VideoUpload) (Video, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, upload)
		if closeErr := mw.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/videos/upload", pr)
	if err != nil {
		return Video{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Video{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return Video{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var video Video
	if err := decodeJSON(resp.Body, &video); err != nil {
		return Video{}, err
	}
	return video, nil
}

func writeUploadForm(mw *multipart.Writer, upload VideoUpload) error {
	fields := map[string]string{
		"title":       upload.Title,
		"description": upload.Description,
		"userId":      upload.UserID,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}
	if err := writeUploadPart(mw, upload.Video); err != nil {
		return err
	}
	if upload.Thumbnail != nil {
		if err := writeUploadPart(mw, *upload.Thumbnail); err != nil {
			return err
		}
	}
	return nil
}

func writeUploadPart(mw *multipart.Writer, part UploadPart) error {
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, part.FieldName, part.Filename)}
	header["Content-Type"] = []string{part.ContentType}
	w, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, part.Reader)
	return err
}
