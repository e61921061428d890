package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/reelview/reelview/internal/api"
)

type mockSource struct {
	personal    []api.Video
	personalErr error
	trending    []api.Video
	trendingErr error

	personalCalls int
	trendingCalls int
}

func (m *mockSource) FeedForUser(ctx context.Context, userID string) ([]api.Video, error) {
	m.personalCalls++
	return m.personal, m.personalErr
}

func (m *mockSource) TrendingVideos(ctx context.Context) ([]api.Video, error) {
	m.trendingCalls++
	return m.trending, m.trendingErr
}

func TestLoadAnonymousUsesTrending(t *testing.T) {
	source := &mockSource{trending: []api.Video{{ID: "t1"}}}
	loader := NewLoader(source)

	videos := loader.Load(context.Background(), nil)

	if len(videos) != 1 || videos[0].ID != "t1" {
		t.Errorf("Load() = %+v, want trending list", videos)
	}
	if source.personalCalls != 0 {
		t.Error("anonymous load must not request a personalized feed")
	}
}

func TestLoadAuthenticatedUsesPersonalizedFeed(t *testing.T) {
	source := &mockSource{
		personal: []api.Video{{ID: "p1"}},
		trending: []api.Video{{ID: "t1"}},
	}
	loader := NewLoader(source)

	videos := loader.Load(context.Background(), &api.User{ID: "u1"})

	if len(videos) != 1 || videos[0].ID != "p1" {
		t.Errorf("Load() = %+v, want personalized list", videos)
	}
	if source.trendingCalls != 0 {
		t.Error("non-empty personalized feed must not fall back to trending")
	}
}

func TestLoadEmptyPersonalizedFallsBackToTrending(t *testing.T) {
	source := &mockSource{trending: []api.Video{{ID: "t1"}}}
	loader := NewLoader(source)

	videos := loader.Load(context.Background(), &api.User{ID: "u1"})

	if len(videos) != 1 || videos[0].ID != "t1" {
		t.Errorf("Load() = %+v, want trending fallback for empty feed", videos)
	}
}

func TestLoadPersonalizedErrorFallsBackToTrending(t *testing.T) {
	source := &mockSource{
		personalErr: errors.New("backend down"),
		trending:    []api.Video{{ID: "t1"}},
	}
	loader := NewLoader(source)

	videos := loader.Load(context.Background(), &api.User{ID: "u1"})

	if len(videos) != 1 || videos[0].ID != "t1" {
		t.Errorf("Load() = %+v, want trending fallback on feed error", videos)
	}
	if source.personalCalls != 1 {
		t.Errorf("personalized fetches = %d, want 1 (no retries)", source.personalCalls)
	}
}

func TestLoadTrendingErrorYieldsEmptySequence(t *testing.T) {
	source := &mockSource{trendingErr: errors.New("backend down")}
	loader := NewLoader(source)

	videos := loader.Load(context.Background(), nil)

	if len(videos) != 0 {
		t.Errorf("Load() = %+v, want empty sequence when trending fails", videos)
	}
	if source.trendingCalls != 1 {
		t.Errorf("trending fetches = %d, want 1 (no retries)", source.trendingCalls)
	}
}
