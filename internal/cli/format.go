package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
)

var (
	headStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	indexStyle = lipgloss.NewStyle().Faint(true).Width(4)
)

// emit writes v as JSON under --json, otherwise the rendered human form.
func emit(v any, human func() string) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Println(strings.TrimRight(human(), "\n"))
	return nil
}

func formatDuration(ms uint64) string {
	d := time.Duration(ms) * time.Millisecond
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func formatItem(i api.SearchItem) string {
	switch i.Kind {
	case api.KindTrack:
		line := fmt.Sprintf("%s %s", headStyle.Render(i.Name), dimStyle.Render("by "+strings.Join(i.Artists, ", ")))
		if i.Album != "" {
			line += dimStyle.Render(" on " + i.Album)
		}
		if i.DurationMS > 0 {
			line += dimStyle.Render(" " + formatDuration(uint64(i.DurationMS)))
		}
		return line
	case api.KindAlbum:
		return fmt.Sprintf("%s %s", headStyle.Render(i.Name), dimStyle.Render("by "+strings.Join(i.Artists, ", ")))
	case api.KindPlaylist:
		return fmt.Sprintf("%s %s", headStyle.Render(i.Name), dimStyle.Render("by "+i.Owner))
	default:
		return headStyle.Render(i.Name)
	}
}

func formatItems(items []api.SearchItem) string {
	if len(items) == 0 {
		return dimStyle.Render("no results")
	}
	var b strings.Builder
	for n, i := range items {
		b.WriteString(indexStyle.Render(fmt.Sprintf("%d", n+1)))
		b.WriteString(formatItem(i))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDevices(devices []api.Device) string {
	if len(devices) == 0 {
		return dimStyle.Render("no devices")
	}
	var b strings.Builder
	for _, d := range devices {
		marker := "  "
		if d.Active {
			marker = onStyle.Render("* ")
		}
		b.WriteString(marker + headStyle.Render(d.Name) + dimStyle.Render(" ("+d.Type+")"))
		if d.VolumePercent != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" vol %d%%", *d.VolumePercent)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPlaylists(playlists []api.Playlist) string {
	if len(playlists) == 0 {
		return dimStyle.Render("no playlists")
	}
	var b strings.Builder
	for n, p := range playlists {
		b.WriteString(indexStyle.Render(fmt.Sprintf("%d", n+1)))
		b.WriteString(headStyle.Render(p.Name))
		b.WriteString(dimStyle.Render(" by " + p.Owner))
		if p.Collaborative {
			b.WriteString(onStyle.Render(" [collab]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPlayerStatus(s api.PlayerStatus) string {
	if s.Idle() {
		return dimStyle.Render("nothing playing")
	}
	var b strings.Builder
	verb := "paused"
	if s.Playing {
		verb = "playing"
	}
	b.WriteString(onStyle.Render(verb))
	if s.Track != nil {
		b.WriteString(" " + formatItem(*s.Track))
		if s.Track.DurationMS > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" [%s/%s]",
				formatDuration(uint64(s.ProgressMS)), formatDuration(uint64(s.Track.DurationMS)))))
		}
	}
	b.WriteString("\n")
	if s.Device != nil {
		b.WriteString(dimStyle.Render("on " + s.Device.Name))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("shuffle %s, repeat %s", onOff(s.Shuffle), s.Repeat)))
	return b.String()
}

func formatQueue(q api.Queue) string {
	var b strings.Builder
	if q.NowPlaying != nil {
		b.WriteString(onStyle.Render("now ") + formatItem(*q.NowPlaying) + "\n")
	}
	if len(q.Queue) == 0 {
		b.WriteString(dimStyle.Render("queue is empty"))
		return b.String()
	}
	b.WriteString(formatItems(q.Queue))
	return b.String()
}

func formatDetail(d api.PlaylistDetail) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(d.Name) + dimStyle.Render(" by "+d.Owner) + "\n")
	if d.Description != "" {
		b.WriteString(d.Description + "\n")
	}
	if d.TracksTotal != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d tracks", *d.TracksTotal)) + "\n")
	}
	b.WriteString(dimStyle.Render(d.URI))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func stamp(unix int64) string {
	if unix == 0 {
		return "never"
	}
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04")
}
