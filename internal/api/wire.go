package api

// Raw Web API shapes. Each decoder maps its specific shape onto the tagged
// SearchItem variant and fills only the fields its kind defines.

type wireArtistRef struct {
	Name string `json:"name"`
}

type wireOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type wireTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	URI        string          `json:"uri"`
	DurationMS uint32          `json:"duration_ms"`
	Artists    []wireArtistRef `json:"artists"`
	Album      struct {
		Name string `json:"name"`
	} `json:"album"`
}

func (w wireTrack) item() SearchItem {
	return SearchItem{
		ID:         w.ID,
		Name:       w.Name,
		URI:        w.URI,
		Kind:       KindTrack,
		Artists:    artistNames(w.Artists),
		Album:      w.Album.Name,
		DurationMS: w.DurationMS,
	}
}

type wireAlbum struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	URI     string          `json:"uri"`
	Artists []wireArtistRef `json:"artists"`
}

func (w wireAlbum) item() SearchItem {
	return SearchItem{
		ID:      w.ID,
		Name:    w.Name,
		URI:     w.URI,
		Kind:    KindAlbum,
		Artists: artistNames(w.Artists),
	}
}

type wireArtist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	URI       string   `json:"uri"`
	Genres    []string `json:"genres"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
}

func (w wireArtist) item() SearchItem {
	return SearchItem{ID: w.ID, Name: w.Name, URI: w.URI, Kind: KindArtist}
}

type wirePlaylist struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URI           string    `json:"uri"`
	Collaborative bool      `json:"collaborative"`
	Public        *bool     `json:"public"`
	Description   string    `json:"description"`
	Owner         wireOwner `json:"owner"`
	Tracks        struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

func (w wirePlaylist) item() SearchItem {
	return SearchItem{
		ID:    w.ID,
		Name:  w.Name,
		URI:   w.URI,
		Kind:  KindPlaylist,
		Owner: w.Owner.ID,
	}
}

func (w wirePlaylist) summary() Playlist {
	return Playlist{
		ID:            w.ID,
		Name:          w.Name,
		Owner:         w.Owner.ID,
		Collaborative: w.Collaborative,
		Public:        w.Public,
	}
}

// wirePlaylistTrack is the playlist-tracks page entry; null tracks appear for
// removed or unavailable items and are skipped.
type wirePlaylistTrack struct {
	Track *wireTrack `json:"track"`
}

// wireSavedTrack is the library page entry.
type wireSavedTrack struct {
	Track wireTrack `json:"track"`
}

// wirePlayHistory is the recently-played page entry.
type wirePlayHistory struct {
	Track wireTrack `json:"track"`
}

type wireDevice struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"`
}

func (w wireDevice) device() Device {
	return Device{
		ID:            w.ID,
		Name:          w.Name,
		Type:          w.Type,
		Active:        w.IsActive,
		VolumePercent: w.VolumePercent,
	}
}

func artistNames(refs []wireArtistRef) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

func trackItems(tracks []wireTrack) []SearchItem {
	items := make([]SearchItem, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, t.item())
	}
	return items
}
