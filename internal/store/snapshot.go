package store

import (
	"path/filepath"
	"time"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/paths"
)

// Snapshot is a timestamped dump of a list of domain objects. A missing
// snapshot file means "never synced"; a present file with zero items means
// "synced but empty".
type Snapshot[T any] struct {
	UpdatedAt int64 `json:"updated_at"`
	Items     []T   `json:"items"`
}

// SnapshotStore persists a Snapshot[T] as a whole document.
type SnapshotStore[T any] struct {
	file *File[Snapshot[T]]
	now  func() time.Time
}

// NewSnapshotStore builds a snapshot store at the given path.
func NewSnapshotStore[T any](path string) *SnapshotStore[T] {
	return &SnapshotStore[T]{file: NewFile[Snapshot[T]](path), now: time.Now}
}

// Load returns the snapshot, or nil when never synced.
func (s *SnapshotStore[T]) Load() (*Snapshot[T], error) {
	return s.file.Load()
}

// Save replaces the snapshot whole, stamping the current time.
func (s *SnapshotStore[T]) Save(items []T) error {
	return s.file.Save(Snapshot[T]{UpdatedAt: s.now().Unix(), Items: items})
}

// Exists reports whether a sync ever happened.
func (s *SnapshotStore[T]) Exists() bool { return s.file.Exists() }

// NewDevices builds the device snapshot store under the cache root.
func NewDevices(root string) *SnapshotStore[api.Device] {
	return NewSnapshotStore[api.Device](filepath.Join(root, paths.DevicesFile))
}

// NewPlaylists builds the playlist snapshot store under the cache root.
func NewPlaylists(root string) *SnapshotStore[api.Playlist] {
	return NewSnapshotStore[api.Playlist](filepath.Join(root, paths.PlaylistsFile))
}

// SearchDoc is the persisted "last search" document.
type SearchDoc struct {
	Query   string            `json:"query"`
	Results api.SearchResults `json:"results"`
}

// SearchCache persists the most recent search for --last flows.
type SearchCache struct {
	file *File[SearchDoc]
}

// NewSearchCache builds the last-search store under the cache root.
func NewSearchCache(root string) *SearchCache {
	return &SearchCache{file: NewFile[SearchDoc](filepath.Join(root, paths.SearchFile))}
}

// Load returns the last search, or nil when none was recorded.
func (s *SearchCache) Load() (*SearchDoc, error) { return s.file.Load() }

// Save replaces the last search whole.
func (s *SearchCache) Save(query string, results api.SearchResults) error {
	return s.file.Save(SearchDoc{Query: query, Results: results})
}
