// Package settings lets the user edit narrator settings in place.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

var errNoSettingsService = errors.New("settings service not available")

// Field is one editable setting. Key is what SettingsService.Set takes.
type Field struct {
	Key     string
	Label   string
	Section string

	value func(*domain.AppSettings) string
}

// Fields lists the editable settings, grouped by Section.
func Fields() []Field {
	return []Field{
		{Key: "segment.method", Label: "Method", Section: "Segment",
			value: func(s *domain.AppSettings) string { return s.Segment.Method.String() }},
		{Key: "segment.length", Label: "Length", Section: "Segment",
			value: func(s *domain.AppSettings) string { return strconv.Itoa(s.Segment.Length) }},
		{Key: "jobs.watch_dir", Label: "Watch dir", Section: "Jobs",
			value: func(s *domain.AppSettings) string { return s.Jobs.WatchDir }},
		{Key: "jobs.extensions", Label: "Extensions", Section: "Jobs",
			value: func(s *domain.AppSettings) string { return strings.Join(s.Jobs.Extensions, ",") }},
		{Key: "jobs.owner", Label: "Owner", Section: "Jobs",
			value: func(s *domain.AppSettings) string { return s.Jobs.Owner }},
		{Key: "server.host", Label: "Host", Section: "Server",
			value: func(s *domain.AppSettings) string { return s.Server.Host }},
		{Key: "server.port", Label: "Port", Section: "Server",
			value: func(s *domain.AppSettings) string { return strconv.Itoa(s.Server.Port) }},
		{Key: "scheduler.enabled", Label: "Enabled", Section: "Scheduler",
			value: func(s *domain.AppSettings) string { return strconv.FormatBool(s.SchedulerEnabled) }},
	}
}

// Value renders f from s, or "" before settings have loaded.
func (f Field) Value(s *domain.AppSettings) string {
	if s == nil {
		return ""
	}
	return f.value(s)
}

// View lists the fields and edits one at a time. Each save reloads the
// settings so the list shows what the service normalised the input to.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.SettingsService

	settings *domain.AppSettings
	fields   []Field
	selected int
	editing  bool
	input    *input.Field

	err   error
	saved string

	width, height int
}

func NewView(s *styles.Styles, service driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		fields:  Fields(),
		input:   input.NewEditor(s),
	}
}

func (v *View) Init() tea.Cmd {
	return v.load
}

func (v *View) load() tea.Msg {
	if v.service == nil {
		return messages.SettingsLoaded{Err: errNoSettingsService}
	}
	settings, err := v.service.Get()
	return messages.SettingsLoaded{Settings: settings, Err: err}
}

func (v *View) save(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SettingsSaved{Key: key, Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.service.Set(key, value)}
	}
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			v.saved = ""
			return v, nil
		}
		v.saved = msg.Key
		return v, v.load

	case tea.KeyMsg:
		if v.editing {
			return v, v.edit(msg)
		}
		return v, v.browse(msg.String())
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) browse(k string) tea.Cmd {
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(k, v.keymap.Quit):
		return tea.Quit
	case keymap.Matches(k, v.keymap.Up):
		v.selected = max(v.selected-1, 0)
	case keymap.Matches(k, v.keymap.Down):
		v.selected = min(v.selected+1, len(v.fields)-1)
	case keymap.Matches(k, v.keymap.Select):
		if v.settings == nil {
			return nil
		}
		v.editing = true
		v.saved = ""
		v.input.SetValue(v.fields[v.selected].Value(v.settings))
		return v.input.Focus()
	case keymap.Matches(k, v.keymap.Reload):
		return v.load
	}
	return nil
}

// edit feeds keys to the editor. Enter saves and esc discards.
func (v *View) edit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type { //nolint:exhaustive // every other key is text
	case tea.KeyEsc:
		v.stopEditing()
		return nil
	case tea.KeyEnter:
		v.stopEditing()
		return v.save(v.fields[v.selected].Key, v.input.Value())
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
}

func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.hints())
		return b.String()
	}

	section := ""
	for i, f := range v.fields {
		if f.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = f.Section
			b.WriteString(v.styles.Subtitle.Render(section) + "\n")
		}
		b.WriteString(v.row(i, f) + "\n")
	}

	b.WriteString("\n")
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n")
	} else if v.saved != "" {
		b.WriteString(v.styles.Success.Render("Saved "+v.saved) + "\n")
	}
	b.WriteString(v.hints())
	return b.String()
}

func (v *View) row(i int, f Field) string {
	current := i == v.selected
	label := fmt.Sprintf("  %-12s", f.Label)
	if current {
		label = fmt.Sprintf("> %-12s", f.Label)
	}

	switch {
	case current && v.editing:
		return v.styles.Selected.Render(label) + " " + v.input.View()
	case current:
		return v.styles.Selected.Render(label) + " " + v.styles.Normal.Render(orUnset(f.Value(v.settings)))
	default:
		return v.styles.Normal.Render(label) + " " + v.styles.Muted.Render(orUnset(f.Value(v.settings)))
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func (v *View) hints() string {
	if v.editing {
		return v.styles.Help.Render("enter save  esc cancel")
	}
	return v.styles.Help.Render("j/k move  enter edit  r reload  esc back  q quit")
}

func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.input.SetWidth(width / 2)
}

// Reset puts the cursor back on the first field and drops any edit.
func (v *View) Reset() {
	v.selected = 0
	v.saved = ""
	v.err = nil
	v.stopEditing()
	v.input.Reset()
}

func (v *View) Settings() *domain.AppSettings { return v.settings }

func (v *View) Editing() bool { return v.editing }

func (v *View) Err() error { return v.err }
