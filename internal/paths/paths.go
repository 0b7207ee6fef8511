// Package paths resolves the on-disk cache root for spotify-cli.
//
// Resolution precedence, highest first:
//
//  1. SPOTIFY_CLI_CACHE_DIR (explicit override)
//  2. XDG_CACHE_HOME/spotify-cli
//  3. platform local-app-data (LOCALAPPDATA on Windows, ~/Library/Caches on macOS)
//  4. HOME/.cache/spotify-cli
//
// Resolution is pure; Ensure creates the directory as a separate step.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under shared cache locations.
const AppName = "spotify-cli"

// EnvCacheDir is the explicit cache-root override.
const EnvCacheDir = "SPOTIFY_CLI_CACHE_DIR"

// Cache file names under the cache root.
const (
	MetadataFile  = "metadata.json"
	DevicesFile   = "devices.json"
	PlaylistsFile = "playlists.json"
	SearchFile    = "search.json"
	PinsFile      = "pins.json"
)

// CacheRoot resolves the cache root directory without creating it.
func CacheRoot() (string, error) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	if dir := platformCacheDir(); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache root: no cache dir or home dir: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Ensure creates dir (and parents) with user-only permissions.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	return nil
}

func platformCacheDir() string {
	switch runtime.GOOS {
	case "windows":
		for _, key := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(key); dir != "" {
				return dir
			}
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "AppData", "Local")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Caches")
		}
	}
	return ""
}
