package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

var installCompletion bool

var completionsCmd = &cobra.Command{
	Use:       "completions {bash|zsh|fish}",
	Short:     "Generate a shell completion script",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := args[0]
		if !installCompletion {
			return generateCompletion(cmd, shell, os.Stdout)
		}

		path, err := completionPath(shell)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("prepare completion dir: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("write completion script: %w", err)
		}
		defer f.Close()
		if err := generateCompletion(cmd, shell, f); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "installed "+path)
		return nil
	},
}

func generateCompletion(cmd *cobra.Command, shell string, dst *os.File) error {
	root := cmd.Root()
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(dst, true)
	case "zsh":
		return root.GenZshCompletion(dst)
	case "fish":
		return root.GenFishCompletion(dst, true)
	default:
		return errs.Newf(errs.KindUserInput, "unsupported shell %q", shell)
	}
}

func completionPath(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	switch shell {
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "spotify-cli"), nil
	case "zsh":
		return filepath.Join(home, ".zfunc", "_spotify-cli"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "spotify-cli.fish"), nil
	default:
		return "", errs.Newf(errs.KindUserInput, "unsupported shell %q", shell)
	}
}

// completeCmd feeds dynamic completion values from the local caches only;
// it must never touch the network.
var completeCmd = &cobra.Command{
	Use:       "complete {playlist|pin|device}",
	Short:     "Print completion candidates from the local caches",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"playlist", "pin", "device"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var names []string
		switch args[0] {
		case "playlist":
			snap, err := appCtx.Playlists.Load()
			if err != nil {
				return err
			}
			if snap != nil {
				for _, p := range snap.Items {
					names = append(names, p.Name)
				}
			}
		case "pin":
			pins, err := appCtx.Pins.List()
			if err != nil {
				return err
			}
			for _, p := range pins {
				names = append(names, p.Name)
			}
		case "device":
			snap, err := appCtx.Devices.Load()
			if err != nil {
				return err
			}
			if snap != nil {
				for _, d := range snap.Items {
					names = append(names, d.Name)
				}
			}
		default:
			return errs.Newf(errs.KindUserInput, "unknown completion source %q", args[0])
		}
		for _, n := range names {
			fmt.Fprintln(os.Stdout, n)
		}
		return nil
	},
}

func init() {
	completionsCmd.Flags().BoolVar(&installCompletion, "install", false, "write the script to the shell's completion directory")
}
