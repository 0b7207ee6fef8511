// Package picker renders a small interactive list for choosing among
// ambiguous matches. It only runs on a terminal; non-interactive callers
// get an error and should pass an explicit pick index instead.
package picker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// Item is one selectable row.
type Item struct {
	Label  string
	Detail string
}

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Pick shows the list and returns the 0-based index the user confirmed.
// Cancelling is a user-input error, not a crash.
func Pick(title string, items []Item) (int, error) {
	if len(items) == 0 {
		return 0, errs.New(errs.KindUserInput, "nothing to pick from")
	}
	if !Interactive() {
		return 0, errs.New(errs.KindUserInput, "cannot prompt without a terminal, pass --pick N")
	}

	m := model{title: title, items: items, keys: defaultKeyMap()}
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return 0, fmt.Errorf("run picker: %w", err)
	}
	final, ok := out.(model)
	if !ok || !final.confirmed {
		return 0, errs.New(errs.KindUserInput, "selection cancelled")
	}
	return final.cursor, nil
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

type model struct {
	title     string
	items     []Item
	keys      keyMap
	cursor    int
	confirmed bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.cursor = len(m.items) - 1
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, tea.Quit
	}
	return m, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	out := titleStyle.Render(m.title) + "\n"
	for i, item := range m.items {
		marker := "  "
		label := item.Label
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		out += marker + label
		if item.Detail != "" {
			out += "  " + detailStyle.Render(item.Detail)
		}
		out += "\n"
	}
	out += helpStyle.Render("j/k move, enter confirm, esc cancel") + "\n"
	return out
}
