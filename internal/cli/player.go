package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Inspect and control playback",
}

// simplePlayerCmd wires a no-argument player verb.
func simplePlayerCmd(use, short string, call func(client *api.Client, cmd *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := appCtx.API()
			if err != nil {
				return err
			}
			if err := call(client, cmd); err != nil {
				return err
			}
			return emit(map[string]string{"ok": use}, func() string { return onStyle.Render(use) })
		},
	}
}

var playerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is playing and where",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		status, err := client.Player().Status(cmd.Context())
		if err != nil {
			return err
		}
		return emit(status, func() string { return formatPlayerStatus(status) })
	},
}

var playerSeekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track (seconds or mm:ss)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Player().Seek(cmd.Context(), ms); err != nil {
			return err
		}
		return emit(map[string]int{"position_ms": ms}, func() string {
			return onStyle.Render("seeked to ") + formatDuration(uint64(ms))
		})
	},
}

var playerVolumeCmd = &cobra.Command{
	Use:   "volume <0-100>",
	Short: "Set the active device volume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := strconv.Atoi(args[0])
		if err != nil {
			return errs.Newf(errs.KindUserInput, "volume must be a number, got %q", args[0])
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Player().SetVolume(cmd.Context(), percent); err != nil {
			return err
		}
		return emit(map[string]int{"volume": percent}, func() string {
			return onStyle.Render("volume ") + strconv.Itoa(percent) + "%"
		})
	},
}

var playerShuffleCmd = &cobra.Command{
	Use:   "shuffle {on|off}",
	Short: "Toggle shuffle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch strings.ToLower(args[0]) {
		case "on":
			on = true
		case "off":
		default:
			return errs.Newf(errs.KindUserInput, "shuffle takes on or off, got %q", args[0])
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Player().Shuffle(cmd.Context(), on); err != nil {
			return err
		}
		return emit(map[string]bool{"shuffle": on}, func() string {
			return onStyle.Render("shuffle ") + onOff(on)
		})
	},
}

var playerRepeatCmd = &cobra.Command{
	Use:   "repeat {off|track|context}",
	Short: "Set the repeat mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		state := strings.ToLower(args[0])
		if err := client.Player().Repeat(cmd.Context(), state); err != nil {
			return err
		}
		return emit(map[string]string{"repeat": state}, func() string {
			return onStyle.Render("repeat ") + state
		})
	},
}

var queueLimit int

var playerQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the upcoming queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		queue, err := client.Player().Queue(cmd.Context(), queueLimit)
		if err != nil {
			return err
		}
		return emit(queue, func() string { return formatQueue(queue) })
	},
}

var recentLimit int

var playerRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently played tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		items, err := client.Player().RecentlyPlayed(cmd.Context(), recentLimit)
		if err != nil {
			return err
		}
		return emit(items, func() string { return formatItems(items) })
	},
}

var playerDevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List or switch playback devices",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices known to the remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		devices, err := client.Devices().List(cmd.Context())
		if err != nil {
			return err
		}
		// Refresh the completion cache as a side effect.
		if err := appCtx.Devices.Save(devices); err != nil {
			return err
		}
		return emit(devices, func() string { return formatDevices(devices) })
	},
}

var devicesSetCmd = &cobra.Command{
	Use:   "set <name-or-id>",
	Short: "Transfer playback to a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := findDevice(cmd, args[0])
		if err != nil {
			return err
		}
		client, err := appCtx.API()
		if err != nil {
			return err
		}
		if err := client.Devices().SetActive(cmd.Context(), device.ID); err != nil {
			return err
		}
		return emit(device, func() string {
			return onStyle.Render("playing on ") + device.Name
		})
	},
}

// findDevice matches by id or case-insensitive name, checking the cached
// snapshot before asking the remote.
func findDevice(cmd *cobra.Command, ref string) (api.Device, error) {
	if snap, err := appCtx.Devices.Load(); err == nil && snap != nil {
		if d, ok := matchDevice(snap.Items, ref); ok {
			return d, nil
		}
	}

	client, err := appCtx.API()
	if err != nil {
		return api.Device{}, err
	}
	devices, err := client.Devices().List(cmd.Context())
	if err != nil {
		return api.Device{}, err
	}
	if err := appCtx.Devices.Save(devices); err != nil {
		return api.Device{}, err
	}
	if d, ok := matchDevice(devices, ref); ok {
		return d, nil
	}
	return api.Device{}, errs.WithHint(errs.KindNotFound,
		fmt.Errorf("no device matches %q", ref),
		"run spotify-cli player devices list to see what is available")
}

func matchDevice(devices []api.Device, ref string) (api.Device, bool) {
	for _, d := range devices {
		if d.ID == ref || strings.EqualFold(d.Name, ref) {
			return d, true
		}
	}
	return api.Device{}, false
}

func parsePosition(s string) (int, error) {
	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, err1 := strconv.Atoi(mins)
		sec, err2 := strconv.Atoi(secs)
		if err1 != nil || err2 != nil || m < 0 || sec < 0 || sec > 59 {
			return 0, errs.Newf(errs.KindUserInput, "bad position %q, want seconds or mm:ss", s)
		}
		return (m*60 + sec) * 1000, nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs < 0 {
		return 0, errs.Newf(errs.KindUserInput, "bad position %q, want seconds or mm:ss", s)
	}
	return secs * 1000, nil
}

func init() {
	playerQueueCmd.Flags().IntVar(&queueLimit, "limit", 0, "max queue entries to show")
	playerRecentCmd.Flags().IntVar(&recentLimit, "limit", 0, "max tracks to show")

	playerDevicesCmd.AddCommand(devicesListCmd, devicesSetCmd)
	playerCmd.AddCommand(
		playerStatusCmd,
		simplePlayerCmd("play", "Resume playback", func(c *api.Client, cmd *cobra.Command) error {
			return c.Player().Play(cmd.Context())
		}),
		simplePlayerCmd("pause", "Pause playback", func(c *api.Client, cmd *cobra.Command) error {
			return c.Player().Pause(cmd.Context())
		}),
		simplePlayerCmd("next", "Skip to the next track", func(c *api.Client, cmd *cobra.Command) error {
			return c.Player().Next(cmd.Context())
		}),
		simplePlayerCmd("previous", "Return to the previous track", func(c *api.Client, cmd *cobra.Command) error {
			return c.Player().Previous(cmd.Context())
		}),
		playerSeekCmd,
		playerVolumeCmd,
		playerShuffleCmd,
		playerRepeatCmd,
		playerQueueCmd,
		playerRecentCmd,
		playerDevicesCmd,
	)
}
