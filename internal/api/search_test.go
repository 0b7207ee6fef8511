package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func searchHandler(t *testing.T, queries *[]string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		kind := r.URL.Query().Get("type")
		*queries = append(*queries, kind)

		item := func(id string) map[string]any {
			return map[string]any{"id": id, "name": id, "uri": "spotify:" + kind + ":" + id}
		}
		envelope := map[string]any{}
		switch kind {
		case "track":
			envelope["tracks"] = map[string]any{"items": []any{item("t1")}}
		case "album":
			envelope["albums"] = map[string]any{"items": []any{item("al1")}}
		case "artist":
			envelope["artists"] = map[string]any{"items": []any{item("ar1")}}
		case "playlist":
			envelope["playlists"] = map[string]any{"items": []any{item("p1")}}
		}
		_ = json.NewEncoder(w).Encode(envelope)
	})
}

func TestSearch_AllConcatenatesInDeterministicOrder(t *testing.T) {
	var queried []string
	c := newTestClient(t, searchHandler(t, &queried))

	results, err := c.Search().Search(context.Background(), "radar", KindAll, 10, false)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	wantOrder := []string{"track", "album", "artist", "playlist"}
	if len(queried) != len(wantOrder) {
		t.Fatalf("queried kinds = %v, want %v", queried, wantOrder)
	}
	for i, k := range wantOrder {
		if queried[i] != k {
			t.Fatalf("queried kinds = %v, want %v", queried, wantOrder)
		}
	}

	if len(results.Items) != 4 {
		t.Fatalf("items = %#v, want 4", results.Items)
	}
	gotKinds := []Kind{results.Items[0].Kind, results.Items[1].Kind, results.Items[2].Kind, results.Items[3].Kind}
	want := []Kind{KindTrack, KindAlbum, KindArtist, KindPlaylist}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("item kinds = %v, want %v", gotKinds, want)
		}
	}
}

func TestSearch_MarketFromToken(t *testing.T) {
	var gotMarket string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMarket = r.URL.Query().Get("market")
		_ = json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
	}))

	if _, err := c.Search().Search(context.Background(), "radar", KindTrack, 5, true); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotMarket != "from_token" {
		t.Fatalf("market = %q, want from_token", gotMarket)
	}
}
