// Package status provides the one-line footer shown under list views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
)

// Mode picks the summary wording and the key hints.
type Mode int

const (
	ModeDashboard Mode = iota
	ModeRules
)

// Bar shows a summary on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	hints  []key.Binding
	mode   Mode

	shown, total int
	err          error
	note         string
	width        int
}

// NewBar creates a footer for mode. Nil styles or keymap use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap, mode Mode) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	hints := km.ShortHelp()
	switch mode {
	case ModeDashboard:
		hints = km.DashboardHelp()
	case ModeRules:
		hints = km.RulesHelp()
	}
	return &Bar{styles: s, hints: hints, mode: mode, width: 80}
}

// SetCounts sets what the summary reports: jobs matching the filter out of
// all jobs, or enabled rules out of all rules.
func (b *Bar) SetCounts(shown, total int) {
	b.shown, b.total = shown, total
}

// SetError shows err in place of the summary until it is cleared with nil.
func (b *Bar) SetError(err error) {
	b.err = err
}

// SetNote appends a short message to the summary. Empty clears it.
func (b *Bar) SetNote(note string) {
	b.note = note
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Summary returns the unstyled left-hand text.
func (b *Bar) Summary() string {
	if b.err != nil {
		return "Error: " + b.err.Error()
	}

	var text string
	switch {
	case b.mode == ModeRules:
		text = fmt.Sprintf("%d of %d rules enabled", b.shown, b.total)
	case b.total == 0:
		text = "No jobs"
	default:
		text = fmt.Sprintf("%d of %d jobs", b.shown, b.total)
	}
	if b.note != "" {
		text += "  " + b.note
	}
	return text
}

// View renders the bar padded to its width.
func (b *Bar) View() string {
	left := b.styles.Normal.Render(b.Summary())
	if b.err != nil {
		left = b.styles.Error.Render(b.Summary())
	}

	hints := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	right := b.styles.Muted.Render(strings.Join(hints, "  "))

	gap := b.width - b.styles.StatusBar.GetHorizontalFrameSize() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}
