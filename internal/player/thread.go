package player

import (
	"context"
	"strings"
	"sync"

	"github.com/reelview/reelview/internal/api"
)

// CommentBackend is the slice of the remote API the comment thread uses.
type CommentBackend interface {
	TopLevelComments(ctx context.Context, videoID string) ([]api.Comment, error)
	CreateComment(ctx context.Context, req api.CommentRequest) (api.Comment, error)
}

// Thread holds the flat top-level comment list for one video, in the order
// the server returned it.
type Thread struct {
	backend CommentBackend
	videoID string

	mu       sync.Mutex
	comments []api.Comment
}

func NewThread(backend CommentBackend, videoID string) *Thread {
	return &Thread{backend: backend, videoID: videoID}
}

func (t *Thread) VideoID() string {
	return t.videoID
}

// Load fetches the top-level comments and returns the list with its count.
func (t *Thread) Load(ctx context.Context) ([]api.Comment, int, error) {
	comments, err := t.backend.TopLevelComments(ctx, t.videoID)
	if err != nil {
		return nil, 0, err
	}
	if comments == nil {
		comments = []api.Comment{}
	}

	t.mu.Lock()
	t.comments = comments
	count := len(t.comments)
	t.mu.Unlock()
	return comments, count, nil
}

// Post submits a comment for an authenticated viewer. The local list is only
// mutated after the server confirms creation; a failure leaves it untouched.
func (t *Thread) Post(ctx context.Context, viewer *api.User, content string) (api.Comment, int, error) {
	if viewer == nil {
		return api.Comment{}, t.Count(), ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return api.Comment{}, t.Count(), ErrEmptyComment
	}

	comment, err := t.backend.CreateComment(ctx, api.CommentRequest{
		Content: content,
		UserID:  viewer.ID,
		VideoID: t.videoID,
	})
	if err != nil {
		return api.Comment{}, t.Count(), err
	}
	if comment.User == nil {
		user := *viewer
		comment.User = &user
	}

	t.mu.Lock()
	t.comments = append([]api.Comment{comment}, t.comments...)
	count := len(t.comments)
	t.mu.Unlock()
	return comment, count, nil
}

func (t *Thread) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.comments)
}

func (t *Thread) Comments() []api.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]api.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}
