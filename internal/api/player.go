package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// PlayerClient exposes playback control and status operations.
type PlayerClient struct {
	c *Client
}

// Player returns the playback family.
func (c *Client) Player() PlayerClient { return PlayerClient{c} }

// Status reports the current playback state. A 204 from the remote means
// nothing is playing anywhere and yields an idle status.
func (p PlayerClient) Status(ctx context.Context) (PlayerStatus, error) {
	raw, err := p.c.do(ctx, http.MethodGet, "/me/player", nil, nil)
	if err != nil {
		return PlayerStatus{}, err
	}
	if len(raw) == 0 {
		return PlayerStatus{}, nil
	}
	var w struct {
		IsPlaying    bool        `json:"is_playing"`
		ProgressMS   int         `json:"progress_ms"`
		ShuffleState bool        `json:"shuffle_state"`
		RepeatState  string      `json:"repeat_state"`
		Device       *wireDevice `json:"device"`
		Item         *wireTrack  `json:"item"`
	}
	if err := decode(raw, &w); err != nil {
		return PlayerStatus{}, err
	}
	status := PlayerStatus{
		Playing:    w.IsPlaying,
		ProgressMS: w.ProgressMS,
		Shuffle:    w.ShuffleState,
		Repeat:     w.RepeatState,
	}
	if w.Device != nil {
		d := w.Device.device()
		status.Device = &d
	}
	if w.Item != nil {
		item := w.Item.item()
		status.Track = &item
	}
	return status, nil
}

// Play resumes playback on the active device.
func (p PlayerClient) Play(ctx context.Context) error {
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/play", nil, nil)
	return err
}

// PlayContext starts playback of an album, artist, or playlist URI.
func (p PlayerClient) PlayContext(ctx context.Context, uri string) error {
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/play", nil, map[string]any{"context_uri": uri})
	return err
}

// PlayTrack starts playback of a single track URI.
func (p PlayerClient) PlayTrack(ctx context.Context, uri string) error {
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/play", nil, map[string]any{"uris": []string{uri}})
	return err
}

// Pause pauses playback.
func (p PlayerClient) Pause(ctx context.Context) error {
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/pause", nil, nil)
	return err
}

// Next skips to the following track.
func (p PlayerClient) Next(ctx context.Context) error {
	_, err := p.c.do(ctx, http.MethodPost, "/me/player/next", nil, nil)
	return err
}

// Previous skips back to the preceding track.
func (p PlayerClient) Previous(ctx context.Context) error {
	_, err := p.c.do(ctx, http.MethodPost, "/me/player/previous", nil, nil)
	return err
}

// Seek jumps to the given position in the playing track.
func (p PlayerClient) Seek(ctx context.Context, positionMS int) error {
	if positionMS < 0 {
		return errs.New(errs.KindUserInput, "seek position must be >= 0")
	}
	query := url.Values{"position_ms": {strconv.Itoa(positionMS)}}
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/seek", query, nil)
	return err
}

// SetVolume sets the active device volume, 0..100.
func (p PlayerClient) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return errs.Newf(errs.KindUserInput, "volume must be between 0 and 100, got %d", percent)
	}
	query := url.Values{"volume_percent": {strconv.Itoa(percent)}}
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/volume", query, nil)
	return err
}

// Shuffle toggles shuffle mode.
func (p PlayerClient) Shuffle(ctx context.Context, on bool) error {
	query := url.Values{"state": {strconv.FormatBool(on)}}
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/shuffle", query, nil)
	return err
}

// Repeat sets the repeat mode: off, track, or context.
func (p PlayerClient) Repeat(ctx context.Context, state string) error {
	switch state {
	case RepeatOff, RepeatTrack, RepeatContext:
	default:
		return errs.Newf(errs.KindUserInput, "repeat must be one of off, track, context; got %q", state)
	}
	query := url.Values{"state": {state}}
	_, err := p.c.do(ctx, http.MethodPut, "/me/player/repeat", query, nil)
	return err
}

// Queue returns the playback queue, truncated to limit items.
func (p PlayerClient) Queue(ctx context.Context, limit int) (Queue, error) {
	raw, err := p.c.do(ctx, http.MethodGet, "/me/player/queue", nil, nil)
	if err != nil {
		return Queue{}, err
	}
	var w struct {
		CurrentlyPlaying *wireTrack  `json:"currently_playing"`
		Queue            []wireTrack `json:"queue"`
	}
	if err := decode(raw, &w); err != nil {
		return Queue{}, err
	}
	q := Queue{Queue: trackItems(w.Queue)}
	if w.CurrentlyPlaying != nil {
		now := w.CurrentlyPlaying.item()
		q.NowPlaying = &now
	}
	if limit > 0 && len(q.Queue) > limit {
		q.Queue = q.Queue[:limit]
	}
	return q, nil
}

// RecentlyPlayed lists the user's most recent tracks, newest first.
func (p PlayerClient) RecentlyPlayed(ctx context.Context, limit int) ([]SearchItem, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}
	query := url.Values{"limit": {fmt.Sprint(limit)}}
	raw, err := p.c.do(ctx, http.MethodGet, "/me/player/recently-played", query, nil)
	if err != nil {
		return nil, err
	}
	var w page[wirePlayHistory]
	if err := decode(raw, &w); err != nil {
		return nil, err
	}
	items := make([]SearchItem, 0, len(w.Items))
	for _, h := range w.Items {
		items = append(items, h.Track.item())
	}
	return items, nil
}
