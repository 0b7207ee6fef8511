package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Environment variable names recognized at load time.
const (
	EnvClientID = "SPOTIFY_CLI_CLIENT_ID"
	EnvAPIBase  = "SPOTIFY_CLI_API_BASE"
)

// Config captures everything the CLI needs outside the cache files.
type Config struct {
	ClientID        string
	RedirectURI     string
	APIBase         string
	MarketFromToken bool
}

const defaultConfigPath = "~/.config/spotify-cli/config.toml"

// Load locates and parses the config file, then applies env overrides.
// A missing file is fine; a present but unparsable one is an error.
func Load(path string) (Config, error) {
	// A .env in the working directory is a development convenience;
	// missing is the normal case.
	_ = godotenv.Load()

	cfg := Config{MarketFromToken: true}

	resolved, err := resolvePath(path)
	if err == nil {
		if err := cfg.readFile(resolved); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvClientID)); v != "" {
		cfg.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var parsed struct {
		ClientID        string `toml:"client_id"`
		RedirectURI     string `toml:"redirect_uri"`
		APIBase         string `toml:"api_base"`
		MarketFromToken *bool  `toml:"market_from_token"`
	}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.ClientID = strings.TrimSpace(parsed.ClientID)
	c.RedirectURI = strings.TrimSpace(parsed.RedirectURI)
	c.APIBase = strings.TrimSpace(parsed.APIBase)
	if parsed.MarketFromToken != nil {
		c.MarketFromToken = *parsed.MarketFromToken
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
