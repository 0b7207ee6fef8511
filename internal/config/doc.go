// Package config handles loading spotify-cli configuration.
//
// # Overview
//
// Settings come from three places, lowest precedence first:
//
//  1. Built-in defaults
//  2. The TOML config file (~/.config/spotify-cli/config.toml by default)
//  3. Environment variables (SPOTIFY_CLI_CLIENT_ID, SPOTIFY_CLI_API_BASE)
//
// A .env file in the working directory is loaded into the environment
// before resolution, so development setups can keep the client ID out of
// the shell profile.
//
// # TOML Format
//
// Example config.toml:
//
//	client_id = "your-app-client-id"
//	redirect_uri = "http://127.0.0.1:8888/callback"
//	api_base = "https://api.spotify.com/v1"
//	market_from_token = true
//
// All fields are optional. Tilde expansion is performed on the config
// file path.
//
// # Error Handling
//
// A missing config file is not an error; the CLI works with env vars
// alone. A present but unparsable file is reported so a typo does not
// silently fall back to defaults.
package config
