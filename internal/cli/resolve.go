package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/picker"
	"github.com/Dheebz/spotify-cli-sub001/internal/resolver"
)

// targetFlags are the shared selection flags for resolver-driven commands.
type targetFlags struct {
	last bool
	pick int
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.last, "last", false, "reuse the most recent cached search")
	cmd.Flags().IntVar(&f.pick, "pick", 1, "1-indexed selection among ranked candidates")
}

// writablePlaylist resolves the playlist a mutation should hit. When the
// pick flag was not given and the session is interactive, ambiguous cached
// matches go through the picker instead of silently taking the top one.
func writablePlaylist(cmd *cobra.Command, query string, flags targetFlags) (api.Playlist, error) {
	res, err := appCtx.Resolver()
	if err != nil {
		return api.Playlist{}, err
	}

	pick := flags.pick
	if !cmd.Flags().Changed("pick") && !flags.last && query != "" && !jsonOut && picker.Interactive() {
		if chosen, ok, err := pickCached(query); err != nil {
			return api.Playlist{}, err
		} else if ok {
			return chosen, nil
		}
	}

	return res.PlaylistForWrite(cmd.Context(), resolver.WriteOptions{
		Query: query,
		Last:  flags.last,
		Pick:  pick,
	})
}

// pickCached offers ranked cached candidates interactively. It reports
// ok=false when the cache cannot settle the choice, handing resolution back
// to the resolver.
func pickCached(query string) (api.Playlist, bool, error) {
	snap, err := appCtx.Playlists.Load()
	if err != nil || snap == nil || len(snap.Items) == 0 {
		return api.Playlist{}, false, nil
	}
	user, err := appCtx.Auth.UserName()
	if err != nil || user == "" {
		return api.Playlist{}, false, nil
	}

	matches := resolver.RankPlaylists(snap.Items, query, user)
	writable := make([]resolver.Match, 0, len(matches))
	for _, m := range matches {
		if m.Writable && m.Score > 0 {
			writable = append(writable, m)
		}
	}
	if len(writable) < 2 {
		return api.Playlist{}, false, nil
	}

	items := make([]picker.Item, 0, len(writable))
	for _, m := range writable {
		items = append(items, picker.Item{Label: m.Playlist.Name, Detail: "by " + m.Playlist.Owner})
	}
	idx, err := picker.Pick("pick a playlist", items)
	if err != nil {
		return api.Playlist{}, false, err
	}
	return writable[idx].Playlist, true, nil
}
