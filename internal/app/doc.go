// Package app provides the composition root for spotify-cli.
//
// # Overview
//
// The Context type wires configuration, logging, the JSON cache stores,
// and the auth service together, and hands out the API client and the
// target resolver on demand. Commands receive a *Context and pull what
// they need from it.
//
// # Lazy API construction
//
// The API client is built on first use. Commands that only read local
// caches (pin listing, cache status, completion feeds) never construct
// it and therefore never touch the stored token.
//
// # CurrentUser
//
// The signed-in user's id is needed to decide playlist writability. It
// is fetched from the profile endpoint once, persisted in metadata.json,
// and read from there on every later call.
package app
