package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/uri"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Inspect and edit playlists",
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		playlists, err := client.Playlists().ListAll(cmd.Context())
		if err != nil {
			return err
		}
		// Keep the resolver's cache in step with what was just shown.
		if err := appCtx.Playlists.Save(playlists); err != nil {
			return err
		}
		return emit(playlists, func() string { return formatPlaylists(playlists) })
	},
}

var (
	getFlags      targetFlags
	getShowTracks bool
)

var playlistGetCmd = &cobra.Command{
	Use:   "get <target>",
	Short: "Show one playlist by link, pin, or search query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := appCtx.Resolver()
		if err != nil {
			return err
		}
		target, err := res.Target(cmd.Context(), strings.Join(args, " "), api.KindPlaylist, getFlags.last, getFlags.pick)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		detail, err := client.Playlists().Get(cmd.Context(), target.ID)
		if err != nil {
			return err
		}
		if !getShowTracks {
			return emit(detail, func() string { return formatDetail(detail) })
		}
		tracks, err := client.Playlists().Tracks(cmd.Context(), target.ID)
		if err != nil {
			return err
		}
		payload := struct {
			api.PlaylistDetail
			Tracks []api.SearchItem `json:"tracks"`
		}{detail, tracks}
		return emit(payload, func() string {
			return formatDetail(detail) + "\n" + formatItems(tracks)
		})
	},
}

var playlistUserCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "List another user's public playlists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		playlists, err := client.Playlists().ForUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(playlists, func() string { return formatPlaylists(playlists) })
	},
}

var (
	createDescription string
	createPublic      bool
)

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := appCtx.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		detail, err := client.Playlists().Create(cmd.Context(), user, strings.Join(args, " "), createDescription, createPublic)
		if err != nil {
			return err
		}
		return emit(detail, func() string {
			return onStyle.Render("created ") + formatDetail(detail)
		})
	},
}

var (
	addFlags    targetFlags
	addPlaylist string
)

var playlistAddCmd = &cobra.Command{
	Use:   "add <track-link>...",
	Short: "Add tracks to a writable playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uris, err := trackURIs(args)
		if err != nil {
			return err
		}
		target, err := writablePlaylist(cmd, addPlaylist, addFlags)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Playlists().AddTracks(cmd.Context(), target.ID, uris); err != nil {
			return err
		}
		return emit(target, func() string {
			return onStyle.Render(fmt.Sprintf("added %d track(s) to ", len(uris))) + target.Name
		})
	},
}

var (
	removeFlags    targetFlags
	removePlaylist string
)

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <track-link>...",
	Short: "Remove tracks from a writable playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uris, err := trackURIs(args)
		if err != nil {
			return err
		}
		target, err := writablePlaylist(cmd, removePlaylist, removeFlags)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Playlists().RemoveTracks(cmd.Context(), target.ID, uris); err != nil {
			return err
		}
		return emit(target, func() string {
			return onStyle.Render(fmt.Sprintf("removed %d track(s) from ", len(uris))) + target.Name
		})
	},
}

var (
	editFlags       targetFlags
	editName        string
	editDescription string
	editPublic      string
)

var playlistEditCmd = &cobra.Command{
	Use:   "edit <query>",
	Short: "Change a playlist's name, description, or visibility",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := writablePlaylist(cmd, strings.Join(args, " "), editFlags)
		if err != nil {
			return err
		}

		var name, description *string
		var public *bool
		if cmd.Flags().Changed("name") {
			name = &editName
		}
		if cmd.Flags().Changed("description") {
			description = &editDescription
		}
		if cmd.Flags().Changed("public") {
			v, err := strconv.ParseBool(editPublic)
			if err != nil {
				return errs.Newf(errs.KindUserInput, "public takes true or false, got %q", editPublic)
			}
			public = &v
		}
		if name == nil && description == nil && public == nil {
			return errs.New(errs.KindUserInput, "nothing to edit, pass --name, --description, or --public")
		}

		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Playlists().EditDetails(cmd.Context(), target.ID, name, description, public); err != nil {
			return err
		}
		return emit(target, func() string {
			return onStyle.Render("updated ") + target.Name
		})
	},
}

var (
	reorderFlags    targetFlags
	reorderPlaylist string
)

var playlistReorderCmd = &cobra.Command{
	Use:   "reorder <from> <to>",
	Short: "Move a track from one position to another (1-indexed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err1 := strconv.Atoi(args[0])
		to, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || from < 1 || to < 1 {
			return errs.New(errs.KindUserInput, "reorder takes two 1-indexed positions")
		}
		target, err := writablePlaylist(cmd, reorderPlaylist, reorderFlags)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Playlists().Reorder(cmd.Context(), target.ID, from-1, to-1); err != nil {
			return err
		}
		return emit(target, func() string {
			return onStyle.Render(fmt.Sprintf("moved track %d to %d in ", from, to)) + target.Name
		})
	},
}

var followFlags targetFlags

var playlistFollowCmd = &cobra.Command{
	Use:   "follow <target>",
	Short: "Follow a playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  followRun(true),
}

var unfollowFlags targetFlags

var playlistUnfollowCmd = &cobra.Command{
	Use:   "unfollow <target>",
	Short: "Unfollow a playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  followRun(false),
}

func followRun(follow bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		flags := unfollowFlags
		verb := "unfollowed"
		if follow {
			flags = followFlags
			verb = "followed"
		}
		res, err := appCtx.Resolver()
		if err != nil {
			return err
		}
		target, err := res.Target(cmd.Context(), strings.Join(args, " "), api.KindPlaylist, flags.last, flags.pick)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if follow {
			err = client.Playlists().Follow(cmd.Context(), target.ID)
		} else {
			err = client.Playlists().Unfollow(cmd.Context(), target.ID)
		}
		if err != nil {
			return err
		}
		return emit(target, func() string {
			return onStyle.Render(verb+" ") + target.URI()
		})
	}
}

var (
	duplicateFlags targetFlags
	duplicateName  string
)

var playlistDuplicateCmd = &cobra.Command{
	Use:   "duplicate <target>",
	Short: "Copy a playlist's tracks into a new playlist you own",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := appCtx.Resolver()
		if err != nil {
			return err
		}
		target, err := res.Target(cmd.Context(), strings.Join(args, " "), api.KindPlaylist, duplicateFlags.last, duplicateFlags.pick)
		if err != nil {
			return err
		}
		user, err := appCtx.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		detail, err := client.Playlists().Duplicate(cmd.Context(), target.ID, user, duplicateName)
		if err != nil {
			return err
		}
		return emit(detail, func() string {
			return onStyle.Render("duplicated into ") + detail.Name
		})
	},
}

var deduplicateFlags targetFlags

var playlistDeduplicateCmd = &cobra.Command{
	Use:   "deduplicate <query>",
	Short: "Remove repeated tracks from a writable playlist, keeping the first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := writablePlaylist(cmd, strings.Join(args, " "), deduplicateFlags)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		removed, err := client.Playlists().Deduplicate(cmd.Context(), target.ID)
		if err != nil {
			return err
		}
		return emit(map[string]any{"playlist": target, "removed": removed}, func() string {
			if removed == 0 {
				return dimStyle.Render("no duplicates in ") + target.Name
			}
			return onStyle.Render(fmt.Sprintf("removed %d duplicate(s) from ", removed)) + target.Name
		})
	},
}

var coverFlags targetFlags

var playlistCoverCmd = &cobra.Command{
	Use:   "cover <target>",
	Short: "Show a playlist's cover image URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := appCtx.Resolver()
		if err != nil {
			return err
		}
		target, err := res.Target(cmd.Context(), strings.Join(args, " "), api.KindPlaylist, coverFlags.last, coverFlags.pick)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		url, err := client.Playlists().CoverImage(cmd.Context(), target.ID)
		if err != nil {
			return err
		}
		return emit(map[string]string{"url": url}, func() string { return url })
	},
}

// trackURIs parses user-supplied links into canonical track URIs.
func trackURIs(args []string) ([]string, error) {
	uris := make([]string, 0, len(args))
	for _, arg := range args {
		res, err := uri.Parse(arg)
		if err != nil {
			return nil, err
		}
		if res.Kind != api.KindTrack {
			return nil, errs.Newf(errs.KindUserInput, "%q is a %s, want a track", arg, res.Kind)
		}
		uris = append(uris, res.URI())
	}
	return uris, nil
}

func init() {
	getFlags.register(playlistGetCmd)
	playlistGetCmd.Flags().BoolVar(&getShowTracks, "tracks", false, "include the track listing")

	playlistCreateCmd.Flags().StringVar(&createDescription, "description", "", "playlist description")
	playlistCreateCmd.Flags().BoolVar(&createPublic, "public", false, "make the playlist public")

	addFlags.register(playlistAddCmd)
	playlistAddCmd.Flags().StringVar(&addPlaylist, "playlist", "", "playlist query (required unless --last)")

	removeFlags.register(playlistRemoveCmd)
	playlistRemoveCmd.Flags().StringVar(&removePlaylist, "playlist", "", "playlist query (required unless --last)")

	editFlags.register(playlistEditCmd)
	playlistEditCmd.Flags().StringVar(&editName, "name", "", "new name")
	playlistEditCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	playlistEditCmd.Flags().StringVar(&editPublic, "public", "", "new visibility (true or false)")

	reorderFlags.register(playlistReorderCmd)
	playlistReorderCmd.Flags().StringVar(&reorderPlaylist, "playlist", "", "playlist query (required unless --last)")

	followFlags.register(playlistFollowCmd)
	unfollowFlags.register(playlistUnfollowCmd)

	duplicateFlags.register(playlistDuplicateCmd)
	playlistDuplicateCmd.Flags().StringVar(&duplicateName, "name", "", "name for the copy (defaults to \"<name> (copy)\")")

	deduplicateFlags.register(playlistDeduplicateCmd)
	coverFlags.register(playlistCoverCmd)

	playlistCmd.AddCommand(
		playlistListCmd,
		playlistGetCmd,
		playlistUserCmd,
		playlistCreateCmd,
		playlistAddCmd,
		playlistRemoveCmd,
		playlistEditCmd,
		playlistReorderCmd,
		playlistFollowCmd,
		playlistUnfollowCmd,
		playlistDuplicateCmd,
		playlistDeduplicateCmd,
		playlistCoverCmd,
	)
}
