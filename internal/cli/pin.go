package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/uri"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Keep named shortcuts to resources",
}

var pinAddCmd = &cobra.Command{
	Use:   "add <name> <url-or-uri>",
	Short: "Add or replace a pin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, target := args[0], args[1]
		// Validate the target before persisting so a typo never pins junk.
		res, err := uri.Parse(target)
		if err != nil {
			return err
		}
		if err := appCtx.Pins.Upsert(name, res.URL()); err != nil {
			return err
		}
		return emit(map[string]string{"name": name, "url": res.URL()}, func() string {
			return onStyle.Render("pinned ") + name + dimStyle.Render(" -> "+res.URL())
		})
	},
}

var pinRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a pin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := appCtx.Pins.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return errs.Newf(errs.KindNotFound, "no pin named %q", args[0])
		}
		return emit(map[string]string{"removed": args[0]}, func() string {
			return onStyle.Render("removed ") + args[0]
		})
	},
}

var pinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := appCtx.Pins.List()
		if err != nil {
			return err
		}
		return emit(pins, func() string {
			if len(pins) == 0 {
				return dimStyle.Render("no pins")
			}
			out := ""
			for _, p := range pins {
				out += headStyle.Render(p.Name) + dimStyle.Render(" "+p.URL) + "\n"
			}
			return out
		})
	},
}

func init() {
	pinCmd.AddCommand(pinAddCmd, pinRemoveCmd, pinListCmd)
}
