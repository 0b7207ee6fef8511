package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvAPIBase, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "" {
		t.Fatalf("ClientID = %q, want empty", cfg.ClientID)
	}
	if !cfg.MarketFromToken {
		t.Fatalf("MarketFromToken = false, want true by default")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
client_id = "  abc123  "
redirect_uri = "http://127.0.0.1:9000/callback"
api_base = "https://api.example.test/v1/"
market_from_token = false
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "abc123" {
		t.Fatalf("ClientID = %q, want %q", cfg.ClientID, "abc123")
	}
	if cfg.RedirectURI != "http://127.0.0.1:9000/callback" {
		t.Fatalf("RedirectURI = %q", cfg.RedirectURI)
	}
	if cfg.APIBase != "https://api.example.test/v1" {
		t.Fatalf("APIBase = %q, want trailing slash trimmed", cfg.APIBase)
	}
	if cfg.MarketFromToken {
		t.Fatalf("MarketFromToken = true, want false from file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
client_id = "from-file"
api_base = "https://file.example.test"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv(EnvClientID, "from-env")
	t.Setenv(EnvAPIBase, "https://env.example.test/")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "from-env" {
		t.Fatalf("ClientID = %q, want env to win", cfg.ClientID)
	}
	if cfg.APIBase != "https://env.example.test" {
		t.Fatalf("APIBase = %q, want env to win with slash trimmed", cfg.APIBase)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`client_id = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
