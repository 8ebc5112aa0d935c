// Package input wraps the bubbles text input for the dashboard search box
// and the settings editor.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
)

const minWidth = 20

// Field is a single-line input with an optional label. It starts blurred,
// so list keys reach the view until Focus is called.
type Field struct {
	model  textinput.Model
	styles *styles.Styles
	label  string
	width  int
}

func newField(s *styles.Styles, label, placeholder string, limit int) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Width = 40
	return &Field{model: m, styles: s, label: label, width: 50}
}

// NewSearch is the dashboard search box.
func NewSearch(s *styles.Styles) *Field {
	return newField(s, "Search: ", "title, id, owner or tag", 128)
}

// NewEditor edits one settings value in place, so it carries no label.
func NewEditor(s *styles.Styles) *Field {
	return newField(s, "", "", 256)
}

func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.model, cmd = f.model.Update(msg)
	return f, cmd
}

func (f *Field) View() string {
	box := f.styles.InputField.Render(f.model.View())
	if f.label == "" {
		return box
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, f.styles.Title.Render(f.label), box)
}

func (f *Field) Value() string { return f.model.Value() }

// SetValue replaces the text and puts the cursor after it.
func (f *Field) SetValue(value string) {
	f.model.SetValue(value)
	f.model.CursorEnd()
}

func (f *Field) Focus() tea.Cmd { return f.model.Focus() }
func (f *Field) Blur()          { f.model.Blur() }
func (f *Field) Focused() bool  { return f.model.Focused() }
func (f *Field) Reset()         { f.model.Reset() }

// SetWidth fits the input to width, leaving room for the label and the
// field border.
func (f *Field) SetWidth(width int) {
	f.width = width
	f.model.Width = max(width-lipgloss.Width(f.label)-6, minWidth)
}

func (f *Field) Width() int { return f.width }
