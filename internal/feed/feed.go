// Package feed loads the candidate video list for the current viewer.
package feed

import (
	"context"
	"log/slog"

	"github.com/reelview/reelview/internal/api"
)

// Source is the slice of the remote backend the loader needs.
type Source interface {
	FeedForUser(ctx context.Context, userID string) ([]api.Video, error)
	TrendingVideos(ctx context.Context) ([]api.Video, error)
}

type Loader struct {
	source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the viewer's feed sequence. An authenticated viewer gets the
// personalized feed, falling back to trending when it is empty or errors.
// Trending failures are logged and surfaced as an empty sequence; nothing in
// the feed path is retried or fatal.
func (l *Loader) Load(ctx context.Context, viewer *api.User) []api.Video {
	if viewer != nil {
		videos, err := l.source.FeedForUser(ctx, viewer.ID)
		if err != nil {
			slog.Error("feed: personalized load failed, falling back to trending", "user_id", viewer.ID, "error", err)
			return l.trending(ctx)
		}
		if len(videos) == 0 {
			return l.trending(ctx)
		}
		return videos
	}
	return l.trending(ctx)
}

func (l *Loader) trending(ctx context.Context) []api.Video {
	videos, err := l.source.TrendingVideos(ctx)
	if err != nil {
		slog.Error("feed: trending load failed", "error", err)
		return nil
	}
	return videos
}
