package api

import (
	"context"
	"net/http"
)

// AlbumsClient exposes album catalog reads.
type AlbumsClient struct {
	c *Client
}

// Albums returns the album family.
func (c *Client) Albums() AlbumsClient { return AlbumsClient{c} }

// Get fetches the album header, then pages through its tracks and sums
// their durations.
func (a AlbumsClient) Get(ctx context.Context, id string) (Album, error) {
	raw, err := a.c.do(ctx, http.MethodGet, "/albums/"+id, nil, nil)
	if err != nil {
		return Album{}, err
	}
	var w wireAlbum
	if err := decode(raw, &w); err != nil {
		return Album{}, err
	}

	tracks, err := pageAll[wireTrack](ctx, a.c, "/albums/"+id+"/tracks", nil)
	if err != nil {
		return Album{}, err
	}

	album := Album{
		ID:      w.ID,
		Name:    w.Name,
		URI:     w.URI,
		Artists: artistNames(w.Artists),
		Tracks:  trackItems(tracks),
	}
	for _, t := range album.Tracks {
		album.DurationMS += uint64(t.DurationMS)
	}
	return album, nil
}

// ArtistsClient exposes artist catalog reads.
type ArtistsClient struct {
	c *Client
}

// Artists returns the artist family.
func (c *Client) Artists() ArtistsClient { return ArtistsClient{c} }

// Get fetches a single artist's detail.
func (a ArtistsClient) Get(ctx context.Context, id string) (Artist, error) {
	raw, err := a.c.do(ctx, http.MethodGet, "/artists/"+id, nil, nil)
	if err != nil {
		return Artist{}, err
	}
	var w wireArtist
	if err := decode(raw, &w); err != nil {
		return Artist{}, err
	}
	return Artist{
		ID:        w.ID,
		Name:      w.Name,
		URI:       w.URI,
		Genres:    w.Genres,
		Followers: w.Followers.Total,
	}, nil
}
