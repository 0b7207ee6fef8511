package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/auth"
	"github.com/Dheebz/spotify-cli-sub001/internal/config"
	"github.com/Dheebz/spotify-cli-sub001/internal/paths"
	"github.com/Dheebz/spotify-cli-sub001/internal/resolver"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

// Options configure the application context.
type Options struct {
	ConfigPath string // empty uses ~/.config/spotify-cli/config.toml
	Verbose    bool   // debug logging to stderr
}

// Context is the composition root: it owns configuration, logging, the
// cache stores, and the auth service, and hands out the API client and
// resolver on demand.
type Context struct {
	Config config.Config
	Log    *zap.Logger

	Root      string // cache directory
	Meta      *store.Metadata
	Devices   *store.SnapshotStore[api.Device]
	Playlists *store.SnapshotStore[api.Playlist]
	Search    *store.SearchCache
	Pins      *store.Pins
	Auth      *auth.Service

	apiOnce sync.Once
	apiC    *api.Client
	apiErr  error
}

// New loads configuration, prepares the cache directory, and wires the
// stores and auth service together. No network traffic happens here.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	root, err := paths.CacheRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	if err := paths.Ensure(root); err != nil {
		return nil, fmt.Errorf("prepare cache dir: %w", err)
	}

	log := newLogger(opts.Verbose)

	meta := store.NewMetadata(root)
	a := &Context{
		Config:    cfg,
		Log:       log,
		Root:      root,
		Meta:      meta,
		Devices:   store.NewDevices(root),
		Playlists: store.NewPlaylists(root),
		Search:    store.NewSearchCache(root),
		Pins:      store.NewPins(root),
		Auth:      auth.NewService(meta, log),
	}
	return a, nil
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// API returns the shared API client, constructing it on first use so
// read-only local commands never touch the token.
func (a *Context) API() (*api.Client, error) {
	a.apiOnce.Do(func() {
		base := a.Config.APIBase
		if base == "" {
			base = api.DefaultBaseURL
		}
		a.apiC, a.apiErr = api.NewClient(base, a.Auth, a.Log)
	})
	return a.apiC, a.apiErr
}

// CurrentUser returns the signed-in user's id, fetching and persisting the
// profile on first use. Subsequent calls read the cached value.
func (a *Context) CurrentUser(ctx context.Context) (string, error) {
	name, err := a.Auth.UserName()
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}

	client, err := a.API()
	if err != nil {
		return "", err
	}
	user, err := client.Users().Me(ctx)
	if err != nil {
		return "", err
	}
	if err := a.Auth.SetUserName(user.ID); err != nil {
		return "", err
	}
	if user.Country != "" {
		if err := a.Auth.SetCountry(user.Country); err != nil {
			return "", err
		}
	}
	return user.ID, nil
}

// Resolver builds the target resolver over the local caches and remote
// search.
func (a *Context) Resolver() (*resolver.Resolver, error) {
	client, err := a.API()
	if err != nil {
		return nil, err
	}
	remote := &apiRemote{client: client, market: a.Config.MarketFromToken}
	return resolver.New(a.Playlists, a.Search, a.Pins, remote, a, a.Log), nil
}

// apiRemote adapts the API client to the resolver's remote interface.
type apiRemote struct {
	client *api.Client
	market bool
}

func (r *apiRemote) SearchPlaylists(ctx context.Context, query string) ([]api.SearchItem, error) {
	return r.SearchKind(ctx, query, api.KindPlaylist)
}

func (r *apiRemote) SearchKind(ctx context.Context, query string, kind api.Kind) ([]api.SearchItem, error) {
	res, err := r.client.Search().Search(ctx, query, kind, 0, r.market)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (r *apiRemote) PlaylistDetail(ctx context.Context, id string) (api.PlaylistDetail, error) {
	return r.client.Playlists().Get(ctx, id)
}
