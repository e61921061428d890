// Package player reconciles per-video engagement state with the remote
// backend: view counting, like and follow toggles, and the comment thread
// for the active video.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/reelview/reelview/internal/api"
)

// ErrAuthRequired signals that the action needs an authenticated viewer; the
// caller decides how to prompt for sign-in.
var ErrAuthRequired = errors.New("authentication required")

// ErrEmptyComment rejects whitespace-only comment submissions locally.
var ErrEmptyComment = errors.New("comment is empty")

// ViewThreshold is the fraction of playback after which a view is counted.
const ViewThreshold = 0.03

// Backend is the slice of the remote API the panel reconciles against.
type Backend interface {
	VideoStats(ctx context.Context, videoID string) (api.VideoStats, error)
	HasLiked(ctx context.Context, userID, videoID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	ToggleLike(ctx context.Context, req api.LikeRequest) (api.LikeResponse, error)
	ToggleFollow(ctx context.Context, req api.FollowRequest) (api.FollowResponse, error)
	IncrementViewCount(ctx context.Context, videoID string) error
}

// Snapshot is the transient engagement state for the active video.
type Snapshot struct {
	ViewCount    int  `json:"viewCount"`
	LikeCount    int  `json:"likeCount"`
	CommentCount int  `json:"commentCount"`
	Liked        bool `json:"liked"`
	Following    bool `json:"following"`
}

// Panel owns the engagement snapshot for exactly one active video. It is
// discarded state: activating a new video throws the previous snapshot away.
type Panel struct {
	backend Backend

	mu          sync.Mutex
	video       api.Video
	snapshot    Snapshot
	viewCounted bool
}

func NewPanel(backend Backend) *Panel {
	return &Panel{backend: backend}
}

// Activate resets the panel for a newly active video, fetches aggregate
// stats, and — for an authenticated viewer — the viewer's like state and
// follow state toward the owner. Each fetch failure is logged and leaves the
// corresponding field at its zero value.
func (p *Panel) Activate(ctx context.Context, video api.Video, viewer *api.User) {
	p.mu.Lock()
	p.video = video
	p.snapshot = Snapshot{}
	p.viewCounted = false
	p.mu.Unlock()

	stats, err := p.backend.VideoStats(ctx, video.ID)
	if err != nil {
		slog.Error("player: stats load failed", "video_id", video.ID, "error", err)
	}

	var liked, following bool
	if viewer != nil {
		liked, err = p.backend.HasLiked(ctx, viewer.ID, video.ID)
		if err != nil {
			slog.Error("player: like check failed", "video_id", video.ID, "error", err)
		}
		if owner := video.OwnerID(); owner != "" {
			following, err = p.backend.IsFollowing(ctx, viewer.ID, owner)
			if err != nil {
				slog.Error("player: follow check failed", "video_id", video.ID, "error", err)
			}
		}
	}

	p.mu.Lock()
	if p.video.ID == video.ID {
		p.snapshot = Snapshot{
			ViewCount:    stats.ViewCount,
			LikeCount:    stats.LikeCount,
			CommentCount: stats.CommentCount,
			Liked:        liked,
			Following:    following,
		}
	}
	p.mu.Unlock()
}

// VideoID returns the id of the video the panel currently tracks.
func (p *Panel) VideoID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.video.ID
}

func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Progress reports playback position. The first time progress exceeds the
// view threshold, exactly one increment request is sent and the local count
// is bumped optimistically; a failed request keeps the optimistic count and
// is only logged. Returns whether this call counted the view.
func (p *Panel) Progress(ctx context.Context, position, duration float64) bool {
	if duration <= 0 || position/duration <= ViewThreshold {
		return false
	}

	p.mu.Lock()
	if p.viewCounted {
		p.mu.Unlock()
		return false
	}
	p.viewCounted = true
	p.snapshot.ViewCount++
	videoID := p.video.ID
	p.mu.Unlock()

	if err := p.backend.IncrementViewCount(ctx, videoID); err != nil {
		slog.Error("player: view increment failed", "video_id", videoID, "error", err)
	}
	return true
}

// ToggleLike flips the viewer's like and adopts the server's returned state
// verbatim; the local value is never guessed. A local error leaves the
// snapshot untouched.
func (p *Panel) ToggleLike(ctx context.Context, viewer *api.User) error {
	if viewer == nil {
		return ErrAuthRequired
	}

	p.mu.Lock()
	videoID := p.video.ID
	p.mu.Unlock()

	resp, err := p.backend.ToggleLike(ctx, api.LikeRequest{UserID: viewer.ID, VideoID: videoID})
	if err != nil {
		slog.Error("player: like toggle failed", "video_id", videoID, "error", err)
		return err
	}

	p.mu.Lock()
	if p.video.ID == videoID {
		p.snapshot.Liked = resp.IsLiked
		p.snapshot.LikeCount = resp.LikeCount
	}
	p.mu.Unlock()
	return nil
}

// ToggleFollow flips the viewer's follow toward the video's owner, adopting
// the server's returned state.
func (p *Panel) ToggleFollow(ctx context.Context, viewer *api.User) error {
	if viewer == nil {
		return ErrAuthRequired
	}

	p.mu.Lock()
	videoID := p.video.ID
	owner := p.video.OwnerID()
	p.mu.Unlock()

	if owner == "" {
		return nil
	}

	resp, err := p.backend.ToggleFollow(ctx, api.FollowRequest{FollowerID: viewer.ID, FollowingID: owner})
	if err != nil {
		slog.Error("player: follow toggle failed", "video_id", videoID, "error", err)
		return err
	}

	p.mu.Lock()
	if p.video.ID == videoID {
		p.snapshot.Following = resp.IsFollowing
	}
	p.mu.Unlock()
	return nil
}

// SetCommentCount lets the comment thread report its count upward.
func (p *Panel) SetCommentCount(count int) {
	p.mu.Lock()
	p.snapshot.CommentCount = count
	p.mu.Unlock()
}
