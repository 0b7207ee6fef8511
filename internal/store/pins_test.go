package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPins_RoundTrip(t *testing.T) {
	pins := NewPins(t.TempDir())

	require.NoError(t, pins.Upsert("Release Radar", "https://open.spotify.com/playlist/x"))

	items, err := pins.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Release Radar", items[0].Name)

	// Remove with different casing still hits the entry.
	removed, err := pins.Remove("release radar")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err = pins.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPins_UpsertReplacesInPlace(t *testing.T) {
	pins := NewPins(t.TempDir())

	require.NoError(t, pins.Upsert("radar", "https://example.com/a"))
	require.NoError(t, pins.Upsert("other", "https://example.com/b"))
	require.NoError(t, pins.Upsert("RADAR", "https://example.com/c"))

	items, err := pins.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "RADAR", items[0].Name, "original position kept, name overwritten")
	assert.Equal(t, "https://example.com/c", items[0].URL)
	assert.Equal(t, "other", items[1].Name)
}

func TestPins_RemoveMissingReportsFalse(t *testing.T) {
	pins := NewPins(t.TempDir())

	removed, err := pins.Remove("ghost")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPins_GetIsCaseInsensitive(t *testing.T) {
	pins := NewPins(t.TempDir())
	require.NoError(t, pins.Upsert("Discover Weekly", "https://example.com/dw"))

	pin, err := pins.Get("dIsCoVeR wEeKlY")
	require.NoError(t, err)
	require.NotNil(t, pin)
	assert.Equal(t, "https://example.com/dw", pin.URL)

	pin, err = pins.Get("unknown")
	require.NoError(t, err)
	assert.Nil(t, pin)
}
