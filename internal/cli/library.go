package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved tracks",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		items, err := client.Library().List(cmd.Context())
		if err != nil {
			return err
		}
		return emit(items, func() string { return formatItems(items) })
	},
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <track-link>...",
	Short: "Save tracks to the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := trackIDs(args)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Library().Like(cmd.Context(), ids...); err != nil {
			return err
		}
		return emit(map[string]any{"saved": ids}, func() string {
			return onStyle.Render(fmt.Sprintf("saved %d track(s)", len(ids)))
		})
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <track-link>...",
	Short: "Remove tracks from the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := trackIDs(args)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Library().Unlike(cmd.Context(), ids...); err != nil {
			return err
		}
		return emit(map[string]any{"removed": ids}, func() string {
			return onStyle.Render(fmt.Sprintf("removed %d track(s)", len(ids)))
		})
	},
}

var libraryCheckCmd = &cobra.Command{
	Use:   "check <track-link>...",
	Short: "Report which tracks are already saved",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := trackIDs(args)
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		saved, err := client.Library().Check(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		payload := make(map[string]bool, len(ids))
		for n, id := range ids {
			payload[id] = n < len(saved) && saved[n]
		}
		return emit(payload, func() string {
			var b strings.Builder
			for n, id := range ids {
				mark := offStyle.Render("not saved")
				if n < len(saved) && saved[n] {
					mark = onStyle.Render("saved")
				}
				b.WriteString(id + " " + mark + "\n")
			}
			return b.String()
		})
	},
}

// trackIDs parses track links and returns bare ids.
func trackIDs(args []string) ([]string, error) {
	uris, err := trackURIs(args)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(uris))
	for _, u := range uris {
		parts := strings.Split(u, ":")
		ids = append(ids, parts[len(parts)-1])
	}
	return ids, nil
}

func init() {
	libraryCmd.AddCommand(libraryListCmd, librarySaveCmd, libraryRemoveCmd, libraryCheckCmd)
}
