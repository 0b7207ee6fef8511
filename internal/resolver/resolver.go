// Package resolver selects concrete resources from free-text queries, pin
// aliases, or the cached last search, ranking playlist candidates by fuzzy
// score and writability for write flows.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
	"github.com/Dheebz/spotify-cli-sub001/internal/uri"
)

// UserSource yields the signed-in user's id, fetching the profile once if it
// was never persisted.
type UserSource interface {
	CurrentUser(ctx context.Context) (string, error)
}

// Remote is the subset of api operations the resolver needs.
type Remote interface {
	SearchPlaylists(ctx context.Context, query string) ([]api.SearchItem, error)
	PlaylistDetail(ctx context.Context, id string) (api.PlaylistDetail, error)
	SearchKind(ctx context.Context, query string, kind api.Kind) ([]api.SearchItem, error)
}

// Resolver mediates target selection for commands.
type Resolver struct {
	playlists *store.SnapshotStore[api.Playlist]
	search    *store.SearchCache
	pins      *store.Pins
	remote    Remote
	user      UserSource
	log       *zap.Logger
}

// New builds a Resolver over the local stores and remote search.
func New(
	playlists *store.SnapshotStore[api.Playlist],
	search *store.SearchCache,
	pins *store.Pins,
	remote Remote,
	user UserSource,
	log *zap.Logger,
) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{playlists: playlists, search: search, pins: pins, remote: remote, user: user, log: log}
}

// WriteOptions select a playlist for a mutation.
type WriteOptions struct {
	Query string
	Last  bool // reuse the most recent cached playlist search
	Pick  int  // 1-indexed selection among ranked candidates
}

const readOnlyMsg = "read-only, choose an owned or collaborative playlist"

// PlaylistForWrite chooses a playlist the signed-in user may modify.
func (r *Resolver) PlaylistForWrite(ctx context.Context, opts WriteOptions) (api.Playlist, error) {
	user, err := r.user.CurrentUser(ctx)
	if err != nil {
		return api.Playlist{}, err
	}

	if opts.Last {
		return r.fromLastSearch(ctx, user, opts.Pick)
	}
	if opts.Query == "" {
		return api.Playlist{}, errs.New(errs.KindUserInput, "playlist query required")
	}

	local, err := r.fromLocalCache(opts.Query, user, opts.Pick)
	if err != nil {
		return api.Playlist{}, err
	}
	if local != nil {
		return *local, nil
	}
	return r.fromRemoteSearch(ctx, user, opts.Query, opts.Pick)
}

// fromLocalCache ranks the playlist snapshot. A nil result with nil error
// means the cache had no match and the caller should search remotely.
func (r *Resolver) fromLocalCache(query, user string, pick int) (*api.Playlist, error) {
	snap, err := r.playlists.Load()
	if err != nil || snap == nil {
		return nil, err
	}
	ranked := RankPlaylists(snap.Items, query, user)
	matches := ranked[:0:0]
	for _, m := range ranked {
		if m.Score > 0 {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	chosen, err := pickMatch(matches, pick)
	if err != nil {
		return nil, err
	}
	if !chosen.Writable {
		return nil, errs.New(errs.KindReadOnlyTarget, readOnlyMsg)
	}
	r.log.Debug("resolved playlist from cache",
		zap.String("query", query), zap.String("playlist", chosen.Playlist.Name))
	return &chosen.Playlist, nil
}

func (r *Resolver) fromRemoteSearch(ctx context.Context, user, query string, pick int) (api.Playlist, error) {
	items, err := r.remote.SearchPlaylists(ctx, query)
	if err != nil {
		return api.Playlist{}, err
	}
	if len(items) == 0 {
		return api.Playlist{}, errs.Newf(errs.KindNotFound, "no playlist matches %q", query)
	}
	item, err := pickItem(items, pick)
	if err != nil {
		return api.Playlist{}, err
	}
	return r.verifyWritable(ctx, item.ID, user)
}

func (r *Resolver) fromLastSearch(ctx context.Context, user string, pick int) (api.Playlist, error) {
	doc, err := r.search.Load()
	if err != nil {
		return api.Playlist{}, err
	}
	if doc == nil {
		return api.Playlist{}, errs.New(errs.KindNotFound, "no cached search results")
	}
	items := itemsOfKind(doc.Results.Items, api.KindPlaylist)
	if len(items) == 0 {
		return api.Playlist{}, errs.New(errs.KindNotFound, "last search has no playlist results")
	}
	item, err := pickItem(items, pick)
	if err != nil {
		return api.Playlist{}, err
	}
	return r.verifyWritable(ctx, item.ID, user)
}

// verifyWritable fetches the playlist detail and checks it against the
// signed-in user.
func (r *Resolver) verifyWritable(ctx context.Context, id, user string) (api.Playlist, error) {
	detail, err := r.remote.PlaylistDetail(ctx, id)
	if err != nil {
		return api.Playlist{}, err
	}
	if !detail.WritableBy(user) {
		return api.Playlist{}, errs.New(errs.KindReadOnlyTarget, readOnlyMsg)
	}
	return detail.Playlist, nil
}

// Target resolves a play argument: a URI or web URL, a pin alias, the cached
// last search via last, or a free-text remote search of the given kind.
func (r *Resolver) Target(ctx context.Context, arg string, kind api.Kind, last bool, pick int) (uri.Resource, error) {
	if last {
		doc, err := r.search.Load()
		if err != nil {
			return uri.Resource{}, err
		}
		if doc == nil {
			return uri.Resource{}, errs.New(errs.KindNotFound, "no cached search results")
		}
		item, err := pickItem(doc.Results.Items, pick)
		if err != nil {
			return uri.Resource{}, err
		}
		return uri.Parse(item.URI)
	}
	if arg == "" {
		return uri.Resource{}, errs.New(errs.KindUserInput, "target required")
	}

	if res, err := uri.Parse(arg); err == nil {
		return res, nil
	}

	pin, err := r.pins.Get(arg)
	if err != nil {
		return uri.Resource{}, err
	}
	if pin != nil {
		return uri.Parse(pin.URL)
	}

	if kind == "" || kind == api.KindAll {
		kind = api.KindTrack
	}
	items, err := r.remote.SearchKind(ctx, arg, kind)
	if err != nil {
		return uri.Resource{}, err
	}
	if len(items) == 0 {
		return uri.Resource{}, errs.Newf(errs.KindNotFound, "no %s matches %q", kind, arg)
	}
	item, err := pickItem(items, pick)
	if err != nil {
		return uri.Resource{}, err
	}
	return uri.Parse(item.URI)
}

func pickMatch(matches []Match, pick int) (Match, error) {
	idx, err := pickIndex(len(matches), pick)
	if err != nil {
		return Match{}, err
	}
	return matches[idx], nil
}

func pickItem(items []api.SearchItem, pick int) (api.SearchItem, error) {
	idx, err := pickIndex(len(items), pick)
	if err != nil {
		return api.SearchItem{}, err
	}
	return items[idx], nil
}

// pickIndex validates a 1-indexed pick against n candidates.
func pickIndex(n, pick int) (int, error) {
	if pick < 1 {
		return 0, errs.New(errs.KindUserInput, "pick must be >= 1")
	}
	if pick > n {
		return 0, errs.Newf(errs.KindUserInput, "pick out of range: %d of %d", pick, n)
	}
	return pick - 1, nil
}

func itemsOfKind(items []api.SearchItem, kind api.Kind) []api.SearchItem {
	var out []api.SearchItem
	for _, item := range items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}
