// Package store persists spotify-cli's local cache documents.
//
// Every document is a single pretty-printed JSON file under the cache root.
// Writes go to a temporary sibling and are renamed into place so a crash
// never leaves a half-written document behind. The metadata file holds the
// token and is kept owner-readable only on POSIX systems.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// File reads and writes a single JSON document of type T at a fixed path.
type File[T any] struct {
	path   string
	secret bool
}

// NewFile builds a store for a world-default-permission document.
func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

// NewSecretFile builds a store whose file is chmodded to 0600 after write.
func NewSecretFile[T any](path string) *File[T] {
	return &File[T]{path: path, secret: true}
}

// Path returns the backing file path.
func (f *File[T]) Path() string { return f.path }

// Exists reports whether the backing file is present.
func (f *File[T]) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads the document. A missing file yields (nil, nil); a present but
// undecodable file yields a decode failure rather than a silent default.
func (f *File[T]) Load() (*T, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(f.path), err)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(errs.KindDecodeFailure, fmt.Errorf("decode %s: %w", filepath.Base(f.path), err))
	}
	return &doc, nil
}

// Save writes the whole document, creating parent directories as needed.
func (f *File[T]) Save(doc T) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(f.path), err)
	}
	raw = append(raw, '\n')

	mode := os.FileMode(0o644)
	if f.secret {
		mode = 0o600
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, mode); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(f.path), err)
	}
	if f.secret {
		// Rename keeps the tmp file's mode, but an earlier non-secret write
		// may have left the file wider open.
		if err := os.Chmod(f.path, 0o600); err != nil {
			return fmt.Errorf("restrict %s: %w", filepath.Base(f.path), err)
		}
	}
	return nil
}
