package uri

import (
	"testing"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

func TestParse_AcceptedForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		wantKind api.Kind
		wantID   string
	}{
		{"spotify:track:abc123", api.KindTrack, "abc123"},
		{"spotify:user:alice:playlist:p1", api.KindPlaylist, "p1"},
		{"spotify:album:X?si=y", api.KindAlbum, "X"},
		{"spotify:artist:Z:extra", api.KindArtist, "Z"},
		{"  spotify:track:ab c123  ", api.KindTrack, "abc123"},
		{"https://open.spotify.com/album/X?si=y", api.KindAlbum, "X"},
		{"https://open.spotify.com/track/t/extra", api.KindTrack, "t"},
		{"http://play.spotify.com/playlist/p9", api.KindPlaylist, "p9"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
			}
			if res.Kind != tc.wantKind || res.ID != tc.wantID {
				t.Fatalf("Parse(%q) = (%s, %s), want (%s, %s)", tc.in, res.Kind, res.ID, tc.wantKind, tc.wantID)
			}
		})
	}
}

func TestParse_RejectsWithoutGuessing(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"not-a-url",
		"spotify:show:s1",
		"spotify:track:",
		"https://example.com/track/abc",
		"https://notspotify.com/track/abc",
		"https://open.spotify.com/track",
	} {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", in)
		}
		if errs.KindOf(err) != errs.KindUserInput {
			t.Fatalf("Parse(%q) kind = %v, want UserInput", in, errs.KindOf(err))
		}
	}
}

func TestParse_RoundTripsThroughBuilder(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"spotify:track:abc123",
		"spotify:user:alice:playlist:p1",
		"https://open.spotify.com/album/X?si=y",
	} {
		res, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		again, err := Parse(res.URI())
		if err != nil {
			t.Fatalf("Parse(round-trip of %q) returned error: %v", in, err)
		}
		if again != res {
			t.Fatalf("round trip of %q = %#v, want %#v", in, again, res)
		}
		viaURL, err := Parse(res.URL())
		if err != nil {
			t.Fatalf("Parse(URL of %q) returned error: %v", in, err)
		}
		if viaURL != res {
			t.Fatalf("URL round trip of %q = %#v, want %#v", in, viaURL, res)
		}
	}
}
