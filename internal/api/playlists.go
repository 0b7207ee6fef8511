package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// PlaylistsClient exposes playlist read and write operations.
type PlaylistsClient struct {
	c *Client
}

// Playlists returns the playlist family.
func (c *Client) Playlists() PlaylistsClient { return PlaylistsClient{c} }

// addChunk caps the number of URIs sent per mutation request.
const addChunk = 50

// Get fetches a single playlist's detail.
func (p PlaylistsClient) Get(ctx context.Context, id string) (PlaylistDetail, error) {
	raw, err := p.c.do(ctx, http.MethodGet, "/playlists/"+id, nil, nil)
	if err != nil {
		return PlaylistDetail{}, err
	}
	var w wirePlaylist
	if err := decode(raw, &w); err != nil {
		return PlaylistDetail{}, err
	}
	total := w.Tracks.Total
	return PlaylistDetail{
		Playlist:    w.summary(),
		URI:         w.URI,
		Description: w.Description,
		TracksTotal: &total,
	}, nil
}

// ListAll returns every playlist the user follows or owns, across pages.
func (p PlaylistsClient) ListAll(ctx context.Context) ([]Playlist, error) {
	pages, err := pageAll[wirePlaylist](ctx, p.c, "/me/playlists", nil)
	if err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(pages))
	for _, w := range pages {
		playlists = append(playlists, w.summary())
	}
	return playlists, nil
}

// ForUser returns a user's public playlists, across pages.
func (p PlaylistsClient) ForUser(ctx context.Context, userID string) ([]Playlist, error) {
	pages, err := pageAll[wirePlaylist](ctx, p.c, "/users/"+userID+"/playlists", nil)
	if err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(pages))
	for _, w := range pages {
		playlists = append(playlists, w.summary())
	}
	return playlists, nil
}

// Tracks returns the playlist's tracks in order, across pages. Entries whose
// track is null (removed or unavailable) are skipped.
func (p PlaylistsClient) Tracks(ctx context.Context, id string) ([]SearchItem, error) {
	pages, err := pageAll[wirePlaylistTrack](ctx, p.c, "/playlists/"+id+"/tracks", nil)
	if err != nil {
		return nil, err
	}
	items := make([]SearchItem, 0, len(pages))
	for _, w := range pages {
		if w.Track == nil {
			continue
		}
		items = append(items, w.Track.item())
	}
	return items, nil
}

// Create makes a new playlist for the user and returns its detail.
func (p PlaylistsClient) Create(ctx context.Context, userID, name, description string, public bool) (PlaylistDetail, error) {
	if name == "" {
		return PlaylistDetail{}, errs.New(errs.KindUserInput, "playlist name required")
	}
	body := map[string]any{"name": name, "public": public}
	if description != "" {
		body["description"] = description
	}
	raw, err := p.c.do(ctx, http.MethodPost, "/users/"+userID+"/playlists", nil, body)
	if err != nil {
		return PlaylistDetail{}, err
	}
	var w wirePlaylist
	if err := decode(raw, &w); err != nil {
		return PlaylistDetail{}, err
	}
	total := w.Tracks.Total
	return PlaylistDetail{Playlist: w.summary(), URI: w.URI, TracksTotal: &total}, nil
}

// EditDetails updates name, description, or visibility. Nil fields are left
// untouched.
func (p PlaylistsClient) EditDetails(ctx context.Context, id string, name, description *string, public *bool) error {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if description != nil {
		body["description"] = *description
	}
	if public != nil {
		body["public"] = *public
	}
	if len(body) == 0 {
		return errs.New(errs.KindUserInput, "nothing to edit")
	}
	_, err := p.c.do(ctx, http.MethodPut, "/playlists/"+id, nil, body)
	return err
}

// Follow adds the playlist to the user's library.
func (p PlaylistsClient) Follow(ctx context.Context, id string) error {
	_, err := p.c.do(ctx, http.MethodPut, "/playlists/"+id+"/followers", nil, map[string]any{})
	return err
}

// Unfollow removes the playlist from the user's library.
func (p PlaylistsClient) Unfollow(ctx context.Context, id string) error {
	_, err := p.c.do(ctx, http.MethodDelete, "/playlists/"+id+"/followers", nil, nil)
	return err
}

// AddTracks appends track URIs to the playlist, chunked to the server cap.
func (p PlaylistsClient) AddTracks(ctx context.Context, id string, uris []string) error {
	if len(uris) == 0 {
		return errs.New(errs.KindUserInput, "no tracks to add")
	}
	for start := 0; start < len(uris); start += addChunk {
		end := min(start+addChunk, len(uris))
		body := map[string]any{"uris": uris[start:end]}
		if _, err := p.c.do(ctx, http.MethodPost, "/playlists/"+id+"/tracks", nil, body); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTracks deletes every occurrence of the given track URIs.
func (p PlaylistsClient) RemoveTracks(ctx context.Context, id string, uris []string) error {
	if len(uris) == 0 {
		return errs.New(errs.KindUserInput, "no tracks to remove")
	}
	for start := 0; start < len(uris); start += addChunk {
		end := min(start+addChunk, len(uris))
		tracks := make([]map[string]any, 0, end-start)
		for _, uri := range uris[start:end] {
			tracks = append(tracks, map[string]any{"uri": uri})
		}
		body := map[string]any{"tracks": tracks}
		if _, err := p.c.do(ctx, http.MethodDelete, "/playlists/"+id+"/tracks", nil, body); err != nil {
			return err
		}
	}
	return nil
}

// Reorder moves the track at rangeStart before the insertBefore index.
func (p PlaylistsClient) Reorder(ctx context.Context, id string, rangeStart, insertBefore int) error {
	if rangeStart < 0 || insertBefore < 0 {
		return errs.New(errs.KindUserInput, "reorder positions must be >= 0")
	}
	body := map[string]any{"range_start": rangeStart, "insert_before": insertBefore}
	_, err := p.c.do(ctx, http.MethodPut, "/playlists/"+id+"/tracks", nil, body)
	return err
}

// Duplicate copies a playlist's tracks into a new playlist owned by userID.
// An empty name derives one from the source playlist.
func (p PlaylistsClient) Duplicate(ctx context.Context, id, userID, name string) (PlaylistDetail, error) {
	source, err := p.Get(ctx, id)
	if err != nil {
		return PlaylistDetail{}, err
	}
	tracks, err := p.Tracks(ctx, id)
	if err != nil {
		return PlaylistDetail{}, err
	}
	if name == "" {
		name = fmt.Sprintf("%s (copy)", source.Name)
	}
	copyDetail, err := p.Create(ctx, userID, name, source.Description, false)
	if err != nil {
		return PlaylistDetail{}, err
	}
	if len(tracks) > 0 {
		uris := make([]string, 0, len(tracks))
		for _, t := range tracks {
			uris = append(uris, t.URI)
		}
		if err := p.AddTracks(ctx, copyDetail.ID, uris); err != nil {
			return PlaylistDetail{}, err
		}
	}
	return copyDetail, nil
}

// Deduplicate removes later occurrences of tracks that appear more than
// once, keeping the first. Returns the number of entries removed.
func (p PlaylistsClient) Deduplicate(ctx context.Context, id string) (int, error) {
	tracks, err := p.Tracks(ctx, id)
	if err != nil {
		return 0, err
	}
	seen := map[string]bool{}
	duplicates := map[string][]int{}
	for pos, t := range tracks {
		if seen[t.URI] {
			duplicates[t.URI] = append(duplicates[t.URI], pos)
			continue
		}
		seen[t.URI] = true
	}
	if len(duplicates) == 0 {
		return 0, nil
	}
	removals := make([]map[string]any, 0, len(duplicates))
	removed := 0
	for uri, positions := range duplicates {
		removals = append(removals, map[string]any{"uri": uri, "positions": positions})
		removed += len(positions)
	}
	body := map[string]any{"tracks": removals}
	if _, err := p.c.do(ctx, http.MethodDelete, "/playlists/"+id+"/tracks", nil, body); err != nil {
		return 0, err
	}
	return removed, nil
}

// CoverImage returns the playlist's primary cover image URL, or "".
func (p PlaylistsClient) CoverImage(ctx context.Context, id string) (string, error) {
	raw, err := p.c.do(ctx, http.MethodGet, "/playlists/"+id+"/images", nil, nil)
	if err != nil {
		return "", err
	}
	var images []struct {
		URL string `json:"url"`
	}
	if err := decode(raw, &images); err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", nil
	}
	return images[0].URL, nil
}
