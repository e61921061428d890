package player

import (
	"context"
	"errors"
	"testing"

	"github.com/reelview/reelview/internal/api"
)

type mockBackend struct {
	stats     api.VideoStats
	statsErr  error
	liked     bool
	following bool

	likeResp   api.LikeResponse
	likeErr    error
	followResp api.FollowResponse
	followErr  error
	viewErr    error

	likeReqs   []api.LikeRequest
	followReqs []api.FollowRequest
	viewCalls  int
}

func (m *mockBackend) VideoStats(ctx context.Context, videoID string) (api.VideoStats, error) {
	return m.stats, m.statsErr
}

func (m *mockBackend) HasLiked(ctx context.Context, userID, videoID string) (bool, error) {
	return m.liked, nil
}

func (m *mockBackend) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return m.following, nil
}

func (m *mockBackend) ToggleLike(ctx context.Context, req api.LikeRequest) (api.LikeResponse, error) {
	m.likeReqs = append(m.likeReqs, req)
	return m.likeResp, m.likeErr
}

func (m *mockBackend) ToggleFollow(ctx context.Context, req api.FollowRequest) (api.FollowResponse, error) {
	m.followReqs = append(m.followReqs, req)
	return m.followResp, m.followErr
}

func (m *mockBackend) IncrementViewCount(ctx context.Context, videoID string) error {
	m.viewCalls++
	return m.viewErr
}

var testViewer = &api.User{ID: "viewer-1", Username: "viewer"}

func testVideo() api.Video {
	return api.Video{ID: "vid-1", UserID: "owner-1", Title: "clip"}
}

func TestActivateLoadsStatsAndViewerState(t *testing.T) {
	backend := &mockBackend{
		stats:     api.VideoStats{ViewCount: 100, LikeCount: 5, CommentCount: 2},
		liked:     true,
		following: true,
	}
	panel := NewPanel(backend)

	panel.Activate(context.Background(), testVideo(), testViewer)

	snap := panel.Snapshot()
	if snap.ViewCount != 100 || snap.LikeCount != 5 || snap.CommentCount != 2 {
		t.Errorf("snapshot counts = %+v, want stats applied", snap)
	}
	if !snap.Liked || !snap.Following {
		t.Errorf("snapshot viewer state = %+v, want liked and following", snap)
	}
}

func TestActivateStatsFailureLeavesZeroCounts(t *testing.T) {
	backend := &mockBackend{statsErr: errors.New("backend down")}
	panel := NewPanel(backend)

	panel.Activate(context.Background(), testVideo(), nil)

	snap := panel.Snapshot()
	if snap.ViewCount != 0 || snap.LikeCount != 0 {
		t.Errorf("snapshot = %+v, want zero counts after stats failure", snap)
	}
}

func TestActivateAnonymousSkipsViewerChecks(t *testing.T) {
	backend := &mockBackend{liked: true, following: true}
	panel := NewPanel(backend)

	panel.Activate(context.Background(), testVideo(), nil)

	snap := panel.Snapshot()
	if snap.Liked || snap.Following {
		t.Errorf("snapshot = %+v, want viewer state left false for anonymous viewer", snap)
	}
}

func TestProgressBelowThresholdDoesNotCount(t *testing.T) {
	backend := &mockBackend{}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), nil)

	if panel.Progress(context.Background(), 0.5, 60) {
		t.Error("progress below threshold must not count a view")
	}
	if backend.viewCalls != 0 {
		t.Errorf("view increments = %d, want 0", backend.viewCalls)
	}
}

func TestProgressCountsViewExactlyOnce(t *testing.T) {
	backend := &mockBackend{stats: api.VideoStats{ViewCount: 10}}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), nil)

	if !panel.Progress(context.Background(), 3, 60) {
		t.Fatal("progress past threshold should count a view")
	}
	// Repeated progress reports after the first count are ignored.
	panel.Progress(context.Background(), 10, 60)
	panel.Progress(context.Background(), 59, 60)

	if backend.viewCalls != 1 {
		t.Errorf("view increments = %d, want exactly 1", backend.viewCalls)
	}
	if got := panel.Snapshot().ViewCount; got != 11 {
		t.Errorf("view count = %d, want 11 (optimistic +1)", got)
	}
}

func TestProgressKeepsOptimisticCountOnRequestFailure(t *testing.T) {
	backend := &mockBackend{stats: api.VideoStats{ViewCount: 10}, viewErr: errors.New("timeout")}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), nil)

	panel.Progress(context.Background(), 5, 60)

	if got := panel.Snapshot().ViewCount; got != 11 {
		t.Errorf("view count = %d after failed increment, want optimistic 11 kept", got)
	}
}

func TestProgressZeroDurationDoesNotCount(t *testing.T) {
	backend := &mockBackend{}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), nil)

	if panel.Progress(context.Background(), 5, 0) {
		t.Error("zero duration must not count a view")
	}
}

func TestReactivationResetsViewCounting(t *testing.T) {
	backend := &mockBackend{}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), nil)
	panel.Progress(context.Background(), 5, 60)

	other := api.Video{ID: "vid-2", UserID: "owner-2"}
	panel.Activate(context.Background(), other, nil)
	panel.Progress(context.Background(), 5, 60)

	if backend.viewCalls != 2 {
		t.Errorf("view increments = %d across two activations, want 2", backend.viewCalls)
	}
}

func TestToggleLikeAdoptsServerState(t *testing.T) {
	backend := &mockBackend{
		stats:    api.VideoStats{LikeCount: 5},
		likeResp: api.LikeResponse{IsLiked: true, LikeCount: 9},
	}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), testViewer)

	if err := panel.ToggleLike(context.Background(), testViewer); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}

	snap := panel.Snapshot()
	if !snap.Liked || snap.LikeCount != 9 {
		t.Errorf("snapshot = %+v, want server state (liked, count 9) adopted verbatim", snap)
	}
	if len(backend.likeReqs) != 1 || backend.likeReqs[0].VideoID != "vid-1" {
		t.Errorf("like requests = %+v, want one for vid-1", backend.likeReqs)
	}
}

func TestToggleLikeFailureLeavesSnapshot(t *testing.T) {
	backend := &mockBackend{
		stats:   api.VideoStats{LikeCount: 5},
		likeErr: errors.New("backend down"),
	}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), testViewer)

	if err := panel.ToggleLike(context.Background(), testViewer); err == nil {
		t.Fatal("expected error from failed toggle")
	}

	snap := panel.Snapshot()
	if snap.Liked || snap.LikeCount != 5 {
		t.Errorf("snapshot = %+v, want untouched after failed toggle", snap)
	}
}

func TestToggleLikeRequiresViewer(t *testing.T) {
	panel := NewPanel(&mockBackend{})
	if err := panel.ToggleLike(context.Background(), nil); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("ToggleLike(nil viewer) = %v, want ErrAuthRequired", err)
	}
}

func TestToggleFollowAdoptsServerState(t *testing.T) {
	backend := &mockBackend{followResp: api.FollowResponse{IsFollowing: true, FollowerCount: 3}}
	panel := NewPanel(backend)
	panel.Activate(context.Background(), testVideo(), testViewer)

	if err := panel.ToggleFollow(context.Background(), testViewer); err != nil {
		t.Fatalf("ToggleFollow: %v", err)
	}
	if !panel.Snapshot().Following {
		t.Error("expected following state adopted from server response")
	}
	if len(backend.followReqs) != 1 || backend.followReqs[0].FollowingID != "owner-1" {
		t.Errorf("follow requests = %+v, want one toward owner-1", backend.followReqs)
	}
}

func TestToggleFollowRequiresViewer(t *testing.T) {
	panel := NewPanel(&mockBackend{})
	if err := panel.ToggleFollow(context.Background(), nil); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("ToggleFollow(nil viewer) = %v, want ErrAuthRequired", err)
	}
}
