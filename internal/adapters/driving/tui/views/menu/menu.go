// Package menu provides the start screen of the TUI.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
)

// Entry is one line of the menu.
type Entry struct {
	Label  string
	Detail string
	Target messages.ViewType
	Quit   bool
}

// Entries returns the menu in display order. Entry n is also reachable
// with the digit key n.
func Entries() []Entry {
	return []Entry{
		{Label: "Dashboard", Detail: "Running, queued and finished narration jobs", Target: messages.ViewDashboard},
		{Label: "Cleaning Rules", Detail: "Choose what the normaliser removes", Target: messages.ViewRules},
		{Label: "Settings", Detail: "Segmentation, drop folder and server", Target: messages.ViewSettings},
		{Label: "Help", Detail: "Key bindings", Target: messages.ViewHelp},
		{Label: "Quit", Quit: true},
	}
}

// View is the start screen.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	entries []Entry
	cursor  int

	width  int
	height int
	ready  bool
}

// NewView creates the menu with the cursor on the first entry.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		entries: Entries(),
		width:   80,
		height:  24,
	}
}

// Init implements the view contract. The menu loads nothing.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and opens entries.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.cursor = (v.cursor - 1 + len(v.entries)) % len(v.entries)
		case keymap.Matches(k, v.keymap.Down):
			v.cursor = (v.cursor + 1) % len(v.entries)
		case keymap.Matches(k, v.keymap.Select):
			return v, v.open(v.cursor)
		case keymap.Matches(k, v.keymap.Help):
			return v, changeView(messages.ViewHelp)
		case keymap.Matches(k, v.keymap.Quit):
			return v, tea.Quit
		default:
			if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(v.entries) {
				v.cursor = n - 1
				return v, v.open(v.cursor)
			}
		}
	}
	return v, nil
}

func (v *View) open(i int) tea.Cmd {
	entry := v.entries[i]
	if entry.Quit {
		return tea.Quit
	}
	return changeView(entry.Target)
}

func changeView(target messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: target}
	}
}

// View renders the menu centred in the terminal.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("Narrator"),
		v.styles.Muted.Render("Text preparation for narration"),
		"",
	}
	for i, entry := range v.entries {
		label := fmt.Sprintf("%d  %s", i+1, entry.Label)
		if i == v.cursor {
			label = v.styles.Selected.Render(" " + label + " ")
		} else {
			label = v.styles.Normal.Render(" " + label + " ")
		}
		if entry.Detail != "" {
			label += "  " + v.styles.Muted.Render(entry.Detail)
		}
		lines = append(lines, label)
	}
	lines = append(lines, "", v.styles.Help.Render("j/k move  enter open  1-5 jump  ? help  q quit"))

	body := v.styles.Border.Padding(1, 3).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, body)
}

// SetDimensions sets the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Cursor returns the highlighted entry index.
func (v *View) Cursor() int {
	return v.cursor
}
