package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
)

func TestSnapshot_AbsentMeansNeverSynced(t *testing.T) {
	devices := NewDevices(t.TempDir())

	snap, err := devices.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.False(t, devices.Exists())
}

func TestSnapshot_EmptySyncIsDistinctFromNever(t *testing.T) {
	devices := NewDevices(t.TempDir())
	require.NoError(t, devices.Save(nil))

	snap, err := devices.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Items)
	assert.NotZero(t, snap.UpdatedAt)
	assert.True(t, devices.Exists())
}

func TestSnapshot_SaveReplacesWhole(t *testing.T) {
	playlists := NewPlaylists(t.TempDir())
	require.NoError(t, playlists.Save([]api.Playlist{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}))
	require.NoError(t, playlists.Save([]api.Playlist{{ID: "c", Name: "C"}}))

	snap, err := playlists.Load()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "c", snap.Items[0].ID)
}

func TestSnapshot_StampsCurrentTime(t *testing.T) {
	store := NewSnapshotStore[api.Device](filepath.Join(t.TempDir(), "devices.json"))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Save([]api.Device{{ID: "d1", Name: "Kitchen"}}))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), snap.UpdatedAt)
}

func TestSearchCache_RoundTrip(t *testing.T) {
	cache := NewSearchCache(t.TempDir())

	doc, err := cache.Load()
	require.NoError(t, err)
	assert.Nil(t, doc)

	results := api.SearchResults{Kind: api.KindTrack, Items: []api.SearchItem{{ID: "t1", Kind: api.KindTrack}}}
	require.NoError(t, cache.Save("query text", results))

	doc, err = cache.Load()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "query text", doc.Query)
	require.Len(t, doc.Results.Items, 1)
	assert.Equal(t, "t1", doc.Results.Items[0].ID)
}

func TestMetadata_PartialDocumentIsNormal(t *testing.T) {
	meta := NewMetadata(t.TempDir())

	doc, err := meta.Load()
	require.NoError(t, err)
	assert.Nil(t, doc.Auth)
	assert.Nil(t, doc.Client)

	require.NoError(t, meta.Update(func(d *MetadataDoc) { d.Settings.Country = "DE" }))

	doc, err = meta.Load()
	require.NoError(t, err)
	assert.Nil(t, doc.Auth)
	assert.Equal(t, "DE", doc.Settings.Country)
}

func TestToken_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, Token{AccessToken: "a"}.Expired(now), "no expiry never expires locally")
	assert.True(t, Token{AccessToken: "a", ExpiresAt: now.Add(-time.Second).Unix()}.Expired(now))
	assert.False(t, Token{AccessToken: "a", ExpiresAt: now.Add(time.Hour).Unix()}.Expired(now))
}
