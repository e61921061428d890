// Package playlist decides which video is current and how navigation moves
// through the feed: scroll gestures, video-end autoplay, and deep links that
// splice a shared video into the server-ordered sequence.
package playlist

import (
	"context"
	"log/slog"

	"github.com/reelview/reelview/internal/api"
)

// Resolver fetches a video (and its owner, when the embedded summary is
// missing) out of band of the loaded feed.
type Resolver interface {
	VideoByID(ctx context.Context, id string) (api.Video, error)
	UserByID(ctx context.Context, id string) (api.User, error)
}

// Playlist holds the loaded feed sequence, the optional anchor, and the
// navigation cursor. The anchor is the first externally-selected video id of
// the session; its resolved object is written exactly once and survives feed
// reloads.
type Playlist struct {
	sequence []api.Video
	anchorID string
	anchor   *api.Video
	activeID string
	active   *api.Video
}

func New() *Playlist {
	return &Playlist{}
}

// SetSequence replaces the feed sequence and resets the cursor. The anchor
// slot is deliberately left alone: first resolution wins across reloads.
func (p *Playlist) SetSequence(videos []api.Video) {
	p.sequence = videos
	if p.anchorID == "" {
		p.activeID = ""
		p.active = nil
	}
}

func (p *Playlist) Sequence() []api.Video {
	return p.sequence
}

// Active returns the currently selected video, or nil in grid mode.
func (p *Playlist) Active() *api.Video {
	return p.active
}

func (p *Playlist) ActiveID() string {
	return p.activeID
}

// Anchored reports whether a deep-linked selection claimed the anchor slot.
func (p *Playlist) Anchored() bool {
	return p.anchorID != ""
}

// Display computes the effective display sequence. Without an anchor it is
// the feed sequence in loaded order. With an anchor it is the resolved anchor
// video followed by the feed with the anchor id filtered out.
func (p *Playlist) Display() []api.Video {
	if p.anchorID == "" {
		return p.sequence
	}

	first, ok := p.anchorVideo()
	if !ok {
		return p.sequence
	}

	display := make([]api.Video, 0, len(p.sequence)+1)
	display = append(display, first)
	for _, v := range p.sequence {
		if v.ID != p.anchorID {
			display = append(display, v)
		}
	}
	return display
}

// anchorVideo resolves the object shown in the anchor slot: the first-ever
// resolved object, else a matching feed entry, else the most recently
// fetched active video.
func (p *Playlist) anchorVideo() (api.Video, bool) {
	if p.anchor != nil {
		return *p.anchor, true
	}
	for _, v := range p.sequence {
		if v.ID == p.anchorID {
			return v, true
		}
	}
	if p.active != nil && p.active.ID == p.anchorID {
		return *p.active, true
	}
	return api.Video{}, false
}

// Start enters the player at the head of the display sequence without
// claiming the anchor slot; navigation then proceeds by cursor alone.
func (p *Playlist) Start() *api.Video {
	display := p.Display()
	if len(display) == 0 {
		return nil
	}
	v := display[0]
	p.activeID = v.ID
	p.active = &v
	return &v
}

// SelectByID makes the given video active, claiming the anchor slot if this
// is the session's first external selection. The video is fetched out of
// band; a missing owner summary is backfilled with a secondary user fetch,
// and a backfill failure leaves the video unattributed. A failed video fetch
// clears the active video.
func (p *Playlist) SelectByID(ctx context.Context, r Resolver, id string) error {
	if p.anchorID == "" {
		p.anchorID = id
	}
	p.activeID = id

	video, err := r.VideoByID(ctx, id)
	if err != nil {
		p.active = nil
		return err
	}

	if video.User == nil && video.UserID != "" {
		owner, err := r.UserByID(ctx, video.UserID)
		if err != nil {
			slog.Warn("playlist: owner backfill failed", "video_id", id, "user_id", video.UserID, "error", err)
		} else {
			video.User = &owner
		}
	}

	p.active = &video
	if p.anchorID == id && p.anchor == nil {
		anchored := video
		p.anchor = &anchored
	}
	return nil
}

// Advance moves to the next entry of the effective display sequence. From
// the last entry, or when the active id has gone stale, the selection is
// cleared so the caller falls back to the unanchored grid. The returned
// video is the new active entry; cleared reports whether selection ended.
func (p *Playlist) Advance() (next *api.Video, cleared bool) {
	display := p.Display()
	idx := indexOf(display, p.activeID)
	if idx < 0 || idx >= len(display)-1 {
		p.ClearSelection()
		return nil, true
	}
	v := display[idx+1]
	p.activeID = v.ID
	p.active = &v
	return &v, false
}

// Retreat moves to the previous entry; it is a no-op at the first entry or
// when the active id is not in the display sequence.
func (p *Playlist) Retreat() *api.Video {
	display := p.Display()
	idx := indexOf(display, p.activeID)
	if idx <= 0 {
		return nil
	}
	v := display[idx-1]
	p.activeID = v.ID
	p.active = &v
	return &v
}

// ClearSelection drops the anchor and active video, reverting to the plain
// feed sequence.
func (p *Playlist) ClearSelection() {
	p.anchorID = ""
	p.anchor = nil
	p.activeID = ""
	p.active = nil
}

func indexOf(videos []api.Video, id string) int {
	if id == "" {
		return -1
	}
	for i, v := range videos {
		if v.ID == id {
			return i
		}
	}
	return -1
}
