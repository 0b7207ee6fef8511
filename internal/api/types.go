package api

import "strings"

// Kind identifies a resource family in search results and URIs.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
	KindPlaylist Kind = "playlist"
	KindAll      Kind = "all"
)

// ParseKind maps user input onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTrack:
		return KindTrack, true
	case KindAlbum:
		return KindAlbum, true
	case KindArtist:
		return KindArtist, true
	case KindPlaylist:
		return KindPlaylist, true
	case KindAll:
		return KindAll, true
	}
	return "", false
}

// Device is a playback target known to the remote.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	Active        bool   `json:"active,omitempty"`
	VolumePercent *int   `json:"volume_percent,omitempty"`
}

// Playlist is the summary shape kept in the local snapshot.
type Playlist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Owner         string `json:"owner,omitempty"`
	Collaborative bool   `json:"collaborative"`
	Public        *bool  `json:"public,omitempty"`
}

// WritableBy reports whether the signed-in user may modify the playlist:
// collaborative, or owner equal to the user ignoring case.
func (p Playlist) WritableBy(user string) bool {
	return p.Collaborative || strings.EqualFold(p.Owner, user)
}

// PlaylistDetail is the full playlist shape returned by a single-playlist get.
type PlaylistDetail struct {
	Playlist
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
	TracksTotal *int   `json:"tracks_total,omitempty"`
}

// SearchItem is the tagged variant covering every searchable kind. Only the
// fields its Kind defines are filled.
type SearchItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	Kind       Kind     `json:"kind"`
	Artists    []string `json:"artists,omitempty"`
	Album      string   `json:"album,omitempty"`
	DurationMS uint32   `json:"duration_ms,omitempty"`
	Owner      string   `json:"owner,omitempty"`
	Score      float64  `json:"score,omitempty"`
}

// SearchResults is a kind-tagged list of search items.
type SearchResults struct {
	Kind  Kind         `json:"kind"`
	Items []SearchItem `json:"items"`
}

// PlayerStatus describes the current playback state. A nil Track with no
// Device means the player is idle.
type PlayerStatus struct {
	Playing    bool        `json:"playing"`
	ProgressMS int         `json:"progress_ms,omitempty"`
	Shuffle    bool        `json:"shuffle"`
	Repeat     string      `json:"repeat"`
	Device     *Device     `json:"device,omitempty"`
	Track      *SearchItem `json:"track,omitempty"`
}

// Idle reports whether nothing is playing on any device.
func (s PlayerStatus) Idle() bool { return s.Device == nil && s.Track == nil }

// Queue is the upcoming playback queue.
type Queue struct {
	NowPlaying *SearchItem  `json:"now_playing,omitempty"`
	Queue      []SearchItem `json:"queue"`
}

// Artist is the detail shape for a single artist.
type Artist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	URI       string   `json:"uri"`
	Genres    []string `json:"genres,omitempty"`
	Followers int      `json:"followers"`
}

// Album is the detail shape for a single album, with tracks accumulated
// across pages and durations summed.
type Album struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	URI        string       `json:"uri"`
	Artists    []string     `json:"artists,omitempty"`
	Tracks     []SearchItem `json:"tracks"`
	DurationMS uint64       `json:"duration_ms"`
}

// User is the signed-in user's profile subset the CLI needs.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Country     string `json:"country,omitempty"`
}

// RepeatState values accepted by the player repeat operation.
const (
	RepeatOff     = "off"
	RepeatTrack   = "track"
	RepeatContext = "context"
)
