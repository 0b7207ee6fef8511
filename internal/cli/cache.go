package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect local caches and cached settings",
}

type cacheEntry struct {
	Present   bool  `json:"present"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
	Items     int   `json:"items,omitempty"`
}

type cacheReport struct {
	Root      string     `json:"root"`
	Devices   cacheEntry `json:"devices"`
	Playlists cacheEntry `json:"playlists"`
	Search    cacheEntry `json:"search"`
	Pins      cacheEntry `json:"pins"`
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is cached and how stale it is",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := cacheReport{Root: appCtx.Root}

		if snap, err := appCtx.Devices.Load(); err == nil && snap != nil {
			report.Devices = cacheEntry{Present: true, UpdatedAt: snap.UpdatedAt, Items: len(snap.Items)}
		}
		if snap, err := appCtx.Playlists.Load(); err == nil && snap != nil {
			report.Playlists = cacheEntry{Present: true, UpdatedAt: snap.UpdatedAt, Items: len(snap.Items)}
		}
		if doc, err := appCtx.Search.Load(); err == nil && doc != nil {
			report.Search = cacheEntry{Present: true, Items: len(doc.Results.Items)}
		}
		if pins, err := appCtx.Pins.List(); err == nil && len(pins) > 0 {
			report.Pins = cacheEntry{Present: true, Items: len(pins)}
		}

		return emit(report, func() string {
			var b strings.Builder
			b.WriteString(dimStyle.Render(report.Root) + "\n")
			b.WriteString(cacheLine("devices", report.Devices))
			b.WriteString(cacheLine("playlists", report.Playlists))
			b.WriteString(cacheLine("search", report.Search))
			b.WriteString(cacheLine("pins", report.Pins))
			return b.String()
		})
	},
}

func cacheLine(name string, e cacheEntry) string {
	if !e.Present {
		return fmt.Sprintf("%s %s\n", headStyle.Render(name), dimStyle.Render("never synced"))
	}
	line := fmt.Sprintf("%s %d item(s)", headStyle.Render(name), e.Items)
	if e.UpdatedAt != 0 {
		line += dimStyle.Render(" as of " + stamp(e.UpdatedAt))
	}
	return line + "\n"
}

var cacheCountryCmd = &cobra.Command{
	Use:   "country [code]",
	Short: "Show or set the cached market country",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			code := strings.ToUpper(strings.TrimSpace(args[0]))
			if err := appCtx.Auth.SetCountry(code); err != nil {
				return err
			}
			return emit(map[string]string{"country": code}, func() string {
				return onStyle.Render("country ") + code
			})
		}
		code, err := appCtx.Auth.Country()
		if err != nil {
			return err
		}
		return emit(map[string]string{"country": code}, func() string {
			if code == "" {
				return dimStyle.Render("country not set")
			}
			return code
		})
	},
}

var cacheUserCmd = &cobra.Command{
	Use:   "user [name]",
	Short: "Show or set the cached user id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			name := strings.TrimSpace(args[0])
			if err := appCtx.Auth.SetUserName(name); err != nil {
				return err
			}
			return emit(map[string]string{"user": name}, func() string {
				return onStyle.Render("user ") + name
			})
		}
		name, err := appCtx.Auth.UserName()
		if err != nil {
			return err
		}
		return emit(map[string]string{"user": name}, func() string {
			if name == "" {
				return dimStyle.Render("user not cached")
			}
			return name
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the device and playlist caches from the remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := appCtx.Sync(cmd.Context())
		if err != nil {
			return err
		}
		return emit(report, func() string {
			return onStyle.Render("synced ") +
				fmt.Sprintf("%d device(s), %d playlist(s)", report.Devices, report.Playlists)
		})
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd, cacheCountryCmd, cacheUserCmd)
}
