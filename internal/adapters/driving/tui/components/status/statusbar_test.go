package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
)

func TestBar_Summary(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		shown int
		total int
		note  string
		err   error
		want  string
	}{
		{"no jobs", ModeDashboard, 0, 0, "", nil, "No jobs"},
		{"filtered jobs", ModeDashboard, 2, 6, "", nil, "2 of 6 jobs"},
		{"jobs with note", ModeDashboard, 6, 6, "Starred job_001", nil, "6 of 6 jobs  Starred job_001"},
		{"rules", ModeRules, 6, 7, "", nil, "6 of 7 rules enabled"},
		{"rules none", ModeRules, 0, 0, "", nil, "0 of 0 rules enabled"},
		{"error wins", ModeRules, 6, 7, "ignored", errors.New("store locked"), "Error: store locked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil, tt.mode)
			bar.SetCounts(tt.shown, tt.total)
			bar.SetNote(tt.note)
			bar.SetError(tt.err)
			assert.Equal(t, tt.want, bar.Summary())
		})
	}
}

func TestBar_ErrorClears(t *testing.T) {
	bar := NewBar(nil, nil, ModeDashboard)
	bar.SetCounts(1, 3)

	bar.SetError(errors.New("boom"))
	assert.Equal(t, "Error: boom", bar.Summary())

	bar.SetError(nil)
	assert.Equal(t, "1 of 3 jobs", bar.Summary())
}

func TestBar_HintsFollowMode(t *testing.T) {
	km := keymap.DefaultKeyMap()

	dashboard := NewBar(nil, km, ModeDashboard).View()
	assert.Contains(t, dashboard, "/ search")
	assert.Contains(t, dashboard, "* star")
	assert.NotContains(t, dashboard, "space toggle")

	rules := NewBar(nil, km, ModeRules).View()
	assert.Contains(t, rules, "space toggle")
	assert.Contains(t, rules, "R reset")

	other := NewBar(nil, km, Mode(99)).View()
	assert.Contains(t, other, "q quit")
}

func TestBar_ViewWidth(t *testing.T) {
	bar := NewBar(nil, nil, ModeRules)
	bar.SetCounts(6, 7)

	bar.SetWidth(160)
	out := bar.View()
	assert.Equal(t, 160, lipgloss.Width(out))
	assert.Contains(t, out, "6 of 7 rules enabled")
	assert.Equal(t, 1, lipgloss.Height(out))
}
