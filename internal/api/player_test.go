package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

func TestStatus_NoContentMeansIdle(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	status, err := c.Player().Status(context.Background())
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !status.Idle() {
		t.Fatalf("status = %#v, want idle", status)
	}
}

func TestStatus_DecodesPlayingState(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"is_playing":    true,
			"progress_ms":   1500,
			"shuffle_state": true,
			"repeat_state":  "context",
			"device":        map[string]any{"id": "d1", "name": "Kitchen", "volume_percent": 40},
			"item": map[string]any{
				"id": "t1", "name": "Song", "uri": "spotify:track:t1",
				"duration_ms": 20000,
				"artists":     []map[string]any{{"name": "Band"}},
				"album":       map[string]any{"name": "Record"},
			},
		})
	}))

	status, err := c.Player().Status(context.Background())
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !status.Playing || status.Repeat != "context" || !status.Shuffle {
		t.Fatalf("status = %#v, want playing shuffle repeat=context", status)
	}
	if status.Device == nil || status.Device.Name != "Kitchen" {
		t.Fatalf("device = %#v, want Kitchen", status.Device)
	}
	if status.Track == nil || status.Track.Kind != KindTrack || status.Track.Album != "Record" {
		t.Fatalf("track = %#v, want track Song on Record", status.Track)
	}
	if len(status.Track.Artists) != 1 || status.Track.Artists[0] != "Band" {
		t.Fatalf("artists = %v, want [Band]", status.Track.Artists)
	}
}

func TestQueue_TruncatesToLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"currently_playing": map[string]any{"id": "now", "name": "Now", "uri": "spotify:track:now"},
			"queue": []map[string]any{
				{"id": "q1", "name": "One", "uri": "spotify:track:q1"},
				{"id": "q2", "name": "Two", "uri": "spotify:track:q2"},
				{"id": "q3", "name": "Three", "uri": "spotify:track:q3"},
			},
		})
	}))

	q, err := c.Player().Queue(context.Background(), 2)
	if err != nil {
		t.Fatalf("Queue returned error: %v", err)
	}
	if q.NowPlaying == nil || q.NowPlaying.ID != "now" {
		t.Fatalf("now playing = %#v, want id=now", q.NowPlaying)
	}
	if len(q.Queue) != 2 || q.Queue[1].ID != "q2" {
		t.Fatalf("queue = %#v, want first two items", q.Queue)
	}
}

func TestSetVolume_RejectsOutOfRange(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	for _, v := range []int{-1, 101} {
		err := c.Player().SetVolume(context.Background(), v)
		if errs.KindOf(err) != errs.KindUserInput {
			t.Fatalf("SetVolume(%d) kind = %v, want UserInput", v, errs.KindOf(err))
		}
	}
}

func TestRepeat_RejectsUnknownState(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	err := c.Player().Repeat(context.Background(), "sometimes")
	if errs.KindOf(err) != errs.KindUserInput {
		t.Fatalf("kind = %v, want UserInput", errs.KindOf(err))
	}
}
