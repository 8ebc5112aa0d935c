// Package rules provides the cleaning rules view for the TUI.
package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

// previewText is cleaned after every change so the stats line shows the
// effect of the enabled rules.
const previewText = "Chapter One\n\n\n   It was a   bright cold day in April.   The clocks were striking thirteen.\n\n\n\nWinston Smith slipped   quickly through the glass doors.  "

var errNoCleaningService = errors.New("cleaning service not available")

// View lists the cleaning rules and toggles them.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	cleaningService driving.CleaningService
	bar             *status.Bar

	ctx      context.Context
	rules    []domain.CleaningRule
	preview  *domain.NormalisationResult
	selected int
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new rules view.
func NewView(s *styles.Styles, cleaningService driving.CleaningService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:          s,
		keymap:          km,
		cleaningService: cleaningService,
		bar:             status.NewBar(s, km, status.ModeRules),
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the rules.
func (v *View) Init() tea.Cmd {
	return v.loadRules()
}

// loadRules returns a command that lists the rules and cleans the preview text.
func (v *View) loadRules() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.cleaningService == nil {
			return messages.RulesLoaded{Err: errNoCleaningService}
		}
		rules, err := v.cleaningService.ListRules(ctx)
		if err != nil {
			return messages.RulesLoaded{Err: err}
		}
		preview, err := v.cleaningService.Clean(ctx, previewText)
		return messages.RulesLoaded{Rules: rules, Preview: preview, Err: err}
	}
}

func (v *View) toggleRule(id domain.RuleID) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.cleaningService == nil {
			return messages.RuleToggled{Err: errNoCleaningService}
		}
		rule, err := v.cleaningService.ToggleRule(ctx, id)
		return messages.RuleToggled{Rule: rule, Err: err}
	}
}

func (v *View) resetRules() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.cleaningService == nil {
			return messages.RulesLoaded{Err: errNoCleaningService}
		}
		if _, err := v.cleaningService.ResetRules(ctx); err != nil {
			return messages.RulesLoaded{Err: err}
		}
		return v.loadRules()()
	}
}

// Update handles messages for the rules view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RulesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.bar.SetError(nil)
		v.rules = msg.Rules
		v.preview = msg.Preview
		if v.selected >= len(v.rules) {
			v.selected = 0
		}
		v.bar.SetCounts(enabledCount(v.rules), len(v.rules))
		return v, nil

	case messages.RuleToggled:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		if msg.Rule != nil {
			v.bar.SetNote(toggleNote(msg.Rule))
		}
		return v, v.loadRules()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func toggleNote(rule *domain.CleaningRule) string {
	if rule.Enabled {
		return rule.Name + " on"
	}
	return rule.Name + " off"
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key == "q":
		return v, tea.Quit
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.rules)-1 {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Toggle):
		if v.selected < len(v.rules) {
			return v, v.toggleRule(v.rules[v.selected].ID)
		}
	case keymap.Matches(key, v.keymap.Reset):
		return v, v.resetRules()
	case keymap.Matches(key, v.keymap.Reload):
		return v, v.loadRules()
	}
	return v, nil
}

func enabledCount(rules []domain.CleaningRule) int {
	n := 0
	for _, r := range rules {
		if r.Enabled {
			n++
		}
	}
	return n
}

// View renders the rules view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Cleaning Rules"))
	b.WriteString("\n\n")

	if v.err != nil && len(v.rules) == 0 {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.bar.View())
		return b.String()
	}

	var category domain.RuleCategory
	for i := range v.rules {
		rule := &v.rules[i]
		if rule.Category != category {
			category = rule.Category
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(v.styles.Subtitle.Render(strings.ToUpper(category.String())))
			b.WriteString("\n")
		}
		b.WriteString(v.renderRule(i, rule))
		b.WriteString("\n")
	}

	if v.preview != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Preview: "))
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf(
			"%d words · %d sentences · %d paragraphs · %d changes · ~%d min",
			v.preview.Words, v.preview.Sentences, v.preview.Paragraphs,
			v.preview.Changes, domain.ReadingMinutes(v.preview.Words),
		)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderRule(index int, rule *domain.CleaningRule) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	mark := "[ ]"
	if rule.Enabled {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s%s %-22s", indicator, mark, rule.Name)
	desc := rule.Description
	if !rule.Implemented {
		desc += " (no effect yet)"
	}

	if index == v.selected {
		return v.styles.Selected.Render(line) + " " + v.styles.Muted.Render(desc)
	}
	return v.styles.Normal.Render(line) + " " + v.styles.Muted.Render(desc)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.SetWidth(width)
}

// Rules returns the loaded rules.
func (v *View) Rules() []domain.CleaningRule {
	return v.rules
}

// Preview returns the cleaned preview statistics.
func (v *View) Preview() *domain.NormalisationResult {
	return v.preview
}

// SelectedIndex returns the selected rule index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
