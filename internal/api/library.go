package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// LibraryClient exposes the user's saved-track library.
type LibraryClient struct {
	c *Client
}

// Library returns the saved-track family.
func (c *Client) Library() LibraryClient { return LibraryClient{c} }

// List returns every saved track, across pages.
func (l LibraryClient) List(ctx context.Context) ([]SearchItem, error) {
	pages, err := pageAll[wireSavedTrack](ctx, l.c, "/me/tracks", nil)
	if err != nil {
		return nil, err
	}
	items := make([]SearchItem, 0, len(pages))
	for _, w := range pages {
		items = append(items, w.Track.item())
	}
	return items, nil
}

// Like saves tracks to the library.
func (l LibraryClient) Like(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return errs.New(errs.KindUserInput, "no track ids given")
	}
	query := url.Values{"ids": {strings.Join(ids, ",")}}
	_, err := l.c.do(ctx, http.MethodPut, "/me/tracks", query, nil)
	return err
}

// Unlike removes tracks from the library.
func (l LibraryClient) Unlike(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return errs.New(errs.KindUserInput, "no track ids given")
	}
	query := url.Values{"ids": {strings.Join(ids, ",")}}
	_, err := l.c.do(ctx, http.MethodDelete, "/me/tracks", query, nil)
	return err
}

// Check reports, per id, whether the track is saved.
func (l LibraryClient) Check(ctx context.Context, ids ...string) ([]bool, error) {
	if len(ids) == 0 {
		return nil, errs.New(errs.KindUserInput, "no track ids given")
	}
	query := url.Values{"ids": {strings.Join(ids, ",")}}
	raw, err := l.c.do(ctx, http.MethodGet, "/me/tracks/contains", query, nil)
	if err != nil {
		return nil, err
	}
	var saved []bool
	if err := decode(raw, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// UsersClient exposes the signed-in user's profile.
type UsersClient struct {
	c *Client
}

// Users returns the profile family.
func (c *Client) Users() UsersClient { return UsersClient{c} }

// Me fetches the signed-in user's profile.
func (u UsersClient) Me(ctx context.Context) (User, error) {
	raw, err := u.c.do(ctx, http.MethodGet, "/me", nil, nil)
	if err != nil {
		return User{}, err
	}
	var w struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Country     string `json:"country"`
	}
	if err := decode(raw, &w); err != nil {
		return User{}, err
	}
	return User{ID: w.ID, DisplayName: w.DisplayName, Country: w.Country}, nil
}
