package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/uri"
)

var playCmd = &cobra.Command{
	Use:   "play <url-or-uri>",
	Short: "Play a track, album, artist, or playlist by its link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := uri.Parse(args[0])
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		switch res.Kind {
		case api.KindTrack:
			err = client.Player().PlayTrack(cmd.Context(), res.URI())
		case api.KindAlbum, api.KindArtist, api.KindPlaylist:
			err = client.Player().PlayContext(cmd.Context(), res.URI())
		default:
			return errs.Newf(errs.KindUserInput, "cannot play a %s", res.Kind)
		}
		if err != nil {
			return err
		}
		return emit(res, func() string {
			return onStyle.Render("playing ") + res.URI()
		})
	},
}
