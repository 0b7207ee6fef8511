package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// SearchClient exposes catalog search.
type SearchClient struct {
	c *Client
}

// Search returns the search family.
func (c *Client) Search() SearchClient { return SearchClient{c} }

// allKinds is the deterministic concatenation order for KindAll searches.
var allKinds = []Kind{KindTrack, KindAlbum, KindArtist, KindPlaylist}

// Search queries the catalog. KindAll issues one request per concrete kind
// and concatenates results in track, album, artist, playlist order.
// marketFromToken appends the from-token market parameter.
func (s SearchClient) Search(ctx context.Context, query string, kind Kind, limit int, marketFromToken bool) (SearchResults, error) {
	if query == "" {
		return SearchResults{}, errs.New(errs.KindUserInput, "search query required")
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}

	kinds := []Kind{kind}
	if kind == KindAll {
		kinds = allKinds
	}

	results := SearchResults{Kind: kind}
	for _, k := range kinds {
		items, err := s.searchKind(ctx, query, k, limit, marketFromToken)
		if err != nil {
			return SearchResults{}, err
		}
		results.Items = append(results.Items, items...)
	}
	return results, nil
}

func (s SearchClient) searchKind(ctx context.Context, query string, kind Kind, limit int, marketFromToken bool) ([]SearchItem, error) {
	values := url.Values{
		"q":     {query},
		"type":  {string(kind)},
		"limit": {fmt.Sprint(limit)},
	}
	if marketFromToken {
		values.Set("market", "from_token")
	}
	raw, err := s.c.do(ctx, http.MethodGet, "/search", values, nil)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindTrack:
		var w struct {
			Tracks page[wireTrack] `json:"tracks"`
		}
		if err := decode(raw, &w); err != nil {
			return nil, err
		}
		return trackItems(w.Tracks.Items), nil
	case KindAlbum:
		var w struct {
			Albums page[wireAlbum] `json:"albums"`
		}
		if err := decode(raw, &w); err != nil {
			return nil, err
		}
		items := make([]SearchItem, 0, len(w.Albums.Items))
		for _, a := range w.Albums.Items {
			items = append(items, a.item())
		}
		return items, nil
	case KindArtist:
		var w struct {
			Artists page[wireArtist] `json:"artists"`
		}
		if err := decode(raw, &w); err != nil {
			return nil, err
		}
		items := make([]SearchItem, 0, len(w.Artists.Items))
		for _, a := range w.Artists.Items {
			items = append(items, a.item())
		}
		return items, nil
	case KindPlaylist:
		var w struct {
			Playlists page[wirePlaylist] `json:"playlists"`
		}
		if err := decode(raw, &w); err != nil {
			return nil, err
		}
		items := make([]SearchItem, 0, len(w.Playlists.Items))
		for _, p := range w.Playlists.Items {
			items = append(items, p.item())
		}
		return items, nil
	default:
		return nil, errs.Newf(errs.KindUserInput, "unsupported search kind %q", kind)
	}
}
