package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dheebz/spotify-cli-sub001/internal/config"
	"github.com/Dheebz/spotify-cli-sub001/internal/paths"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

// newTestContext builds a Context against a temp cache dir and the given
// API server, with a valid token already persisted.
func newTestContext(t *testing.T, apiBase string) *Context {
	t.Helper()

	root := t.TempDir()
	t.Setenv(paths.EnvCacheDir, root)
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvAPIBase, apiBase)

	a, err := New(Options{ConfigPath: "/nonexistent/config.toml"})
	require.NoError(t, err)

	err = a.Meta.Save(store.MetadataDoc{
		Auth: &store.Token{
			AccessToken: "T1",
			ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		},
		Client: &store.ClientInfo{ClientID: "cid"},
	})
	require.NoError(t, err)
	return a
}

func TestSync_RefreshesBothSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/player/devices":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"devices": []map[string]any{
					{"id": "d1", "name": "Desk", "type": "Computer", "is_active": true, "volume_percent": 40},
				},
			})
		case "/me/playlists":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "p1", "name": "Radar", "owner": map[string]any{"id": "me"}, "tracks": map[string]any{"total": 3}},
					{"id": "p2", "name": "Mix", "owner": map[string]any{"id": "me"}, "tracks": map[string]any{"total": 9}},
				},
				"next": nil,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := newTestContext(t, srv.URL)

	report, err := a.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Devices)
	require.Equal(t, 2, report.Playlists)

	snap, err := a.Devices.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Items, 1)
	require.Equal(t, "Desk", snap.Items[0].Name)

	pls, err := a.Playlists.Load()
	require.NoError(t, err)
	require.NotNil(t, pls)
	require.Len(t, pls.Items, 2)
}

func TestCurrentUser_FetchesOnceThenReadsCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			http.NotFound(w, r)
			return
		}
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "listener", "display_name": "Listener", "country": "AU",
		})
	}))
	defer srv.Close()

	a := newTestContext(t, srv.URL)

	got, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "listener", got)

	again, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "listener", again)
	require.Equal(t, 1, calls, "profile should be fetched once and then cached")

	country, err := a.Auth.Country()
	require.NoError(t, err)
	require.Equal(t, "AU", country)
}

func TestAPI_NotBuiltForLocalOnlyUse(t *testing.T) {
	a := newTestContext(t, "http://127.0.0.1:1")

	// Pins and cache inspection must work without ever dialing out.
	require.NoError(t, a.Pins.Upsert("focus", "https://open.spotify.com/playlist/abc"))
	pin, err := a.Pins.Get("focus")
	require.NoError(t, err)
	require.NotNil(t, pin)
	require.Nil(t, a.apiC)
}
