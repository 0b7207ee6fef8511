// Package cli defines the command surface. Every command is a thin
// adapter: parse flags, pull what it needs from the app context, call one
// or more core operations, and hand the result to the formatter.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/app"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	appCtx *app.Context
)

var rootCmd = &cobra.Command{
	Use:   "spotify-cli",
	Short: "Control Spotify playback, playlists, and your library from the shell",
	Long: `spotify-cli is a command-line client for the Spotify Web API.
It controls playback, searches the catalog, edits playlists and the
library, and keeps small local caches so interactive flows work without
hitting the network.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/spotify-cli/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(
		authCmd,
		playCmd,
		playerCmd,
		playlistCmd,
		searchCmd,
		libraryCmd,
		pinCmd,
		cacheCmd,
		syncCmd,
		completionsCmd,
		completeCmd,
	)
}

func initApp() error {
	var err error
	appCtx, err = app.New(app.Options{ConfigPath: cfgFile, Verbose: verbose})
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		msg := err.Error()
		if hint := errs.HintOf(err); hint != "" {
			msg += " hint: " + hint
		}
		fmt.Fprintf(os.Stderr, "spotify-cli: %s\n", msg)
		return errs.ExitCode(err)
	}
	return errs.ExitOK
}

// Root exposes the command tree for main.
func Root() *cobra.Command { return rootCmd }
