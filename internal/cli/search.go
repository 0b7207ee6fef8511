package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <kind> <query>...",
	Short: "Search the catalog (track, album, artist, playlist, or all)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := api.ParseKind(args[0])
		if !ok {
			return errs.Newf(errs.KindUserInput, "unknown search kind %q, want track, album, artist, playlist, or all", args[0])
		}
		query := strings.Join(args[1:], " ")

		client, err := appCtx.API()
		if err != nil {
			return err
		}
		results, err := client.Search().Search(cmd.Context(), query, kind, searchLimit, appCtx.Config.MarketFromToken)
		if err != nil {
			return err
		}
		// Record the search so --last flows can reuse it.
		if err := appCtx.Search.Save(query, results); err != nil {
			return err
		}
		return emit(results, func() string { return formatItems(results.Items) })
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "max results per kind")
}
