package player

import (
	"context"
	"errors"
	"testing"

	"github.com/reelview/reelview/internal/api"
)

type mockCommentBackend struct {
	comments  []api.Comment
	listErr   error
	created   api.Comment
	createErr error

	createReqs []api.CommentRequest
}

func (m *mockCommentBackend) TopLevelComments(ctx context.Context, videoID string) ([]api.Comment, error) {
	return m.comments, m.listErr
}

func (m *mockCommentBackend) CreateComment(ctx context.Context, req api.CommentRequest) (api.Comment, error) {
	m.createReqs = append(m.createReqs, req)
	return m.created, m.createErr
}

func TestLoadKeepsServerOrder(t *testing.T) {
	backend := &mockCommentBackend{comments: []api.Comment{
		{ID: "c1", Content: "first"},
		{ID: "c2", Content: "second"},
	}}
	thread := NewThread(backend, "vid-1")

	comments, count, err := thread.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if count != 2 || comments[0].ID != "c1" || comments[1].ID != "c2" {
		t.Errorf("Load() = %+v (count %d), want server order kept", comments, count)
	}
}

func TestLoadNilListBecomesEmpty(t *testing.T) {
	thread := NewThread(&mockCommentBackend{}, "vid-1")

	comments, count, err := thread.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comments == nil || count != 0 {
		t.Errorf("Load() = %v (count %d), want empty non-nil list", comments, count)
	}
}

func TestPostPrependsAfterServerConfirms(t *testing.T) {
	backend := &mockCommentBackend{
		comments: []api.Comment{{ID: "old", Content: "existing"}},
		created:  api.Comment{ID: "new", Content: "hello"},
	}
	thread := NewThread(backend, "vid-1")
	if _, _, err := thread.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	viewer := &api.User{ID: "u1", Username: "alice"}
	comment, count, err := thread.Post(context.Background(), viewer, "  hello  ")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if comment.ID != "new" || count != 2 {
		t.Errorf("Post() = (%+v, %d), want new comment and count 2", comment, count)
	}
	if got := thread.Comments(); got[0].ID != "new" {
		t.Errorf("comments[0] = %+v, want new comment prepended", got[0])
	}
	if backend.createReqs[0].Content != "hello" {
		t.Errorf("submitted content = %q, want trimmed", backend.createReqs[0].Content)
	}
}

func TestPostFillsMissingUserFromViewer(t *testing.T) {
	backend := &mockCommentBackend{created: api.Comment{ID: "new", Content: "hi"}}
	thread := NewThread(backend, "vid-1")

	viewer := &api.User{ID: "u1", Username: "alice"}
	comment, _, err := thread.Post(context.Background(), viewer, "hi")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if comment.User == nil || comment.User.Username != "alice" {
		t.Errorf("comment.User = %+v, want viewer attributed", comment.User)
	}
}

func TestPostRejectsAnonymousViewer(t *testing.T) {
	thread := NewThread(&mockCommentBackend{}, "vid-1")
	if _, _, err := thread.Post(context.Background(), nil, "hi"); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Post(nil viewer) = %v, want ErrAuthRequired", err)
	}
}

func TestPostRejectsWhitespaceOnly(t *testing.T) {
	backend := &mockCommentBackend{}
	thread := NewThread(backend, "vid-1")

	viewer := &api.User{ID: "u1"}
	if _, _, err := thread.Post(context.Background(), viewer, "   \n\t "); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("Post(whitespace) = %v, want ErrEmptyComment", err)
	}
	if len(backend.createReqs) != 0 {
		t.Error("whitespace-only comment must be rejected before reaching the backend")
	}
}

func TestPostFailureLeavesListUntouched(t *testing.T) {
	backend := &mockCommentBackend{
		comments:  []api.Comment{{ID: "old"}},
		createErr: errors.New("backend down"),
	}
	thread := NewThread(backend, "vid-1")
	if _, _, err := thread.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	viewer := &api.User{ID: "u1"}
	if _, count, err := thread.Post(context.Background(), viewer, "hi"); err == nil {
		t.Fatal("expected error from failed creation")
	} else if count != 1 {
		t.Errorf("count = %d after failed post, want 1", count)
	}
}
