package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// target runs cmd and returns the view it switches to.
func target(t *testing.T, cmd tea.Cmd) messages.ViewType {
	t.Helper()
	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok, "expected ViewChanged")
	return changed.View
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEntries(t *testing.T) {
	entries := Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, messages.ViewDashboard, entries[0].Target)
	assert.True(t, entries[len(entries)-1].Quit)
	for _, e := range entries[:len(entries)-1] {
		assert.False(t, e.Quit, e.Label)
	}
}

func TestView_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"j twice", []tea.KeyMsg{runes("j"), runes("j")}, 2},
		{"up wraps to quit", []tea.KeyMsg{{Type: tea.KeyUp}}, 4},
		{"k wraps", []tea.KeyMsg{runes("k"), runes("k")}, 3},
		{"down wraps to top", []tea.KeyMsg{runes("j"), runes("j"), runes("j"), runes("j"), runes("j")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			for _, k := range tt.keys {
				_, cmd := view.Update(k)
				assert.Nil(t, cmd)
			}
			assert.Equal(t, tt.want, view.Cursor())
		})
	}
}

func TestView_EnterOpensEntry(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewDashboard, target(t, cmd))

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewRules, target(t, cmd))
}

func TestView_DigitJumps(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(runes("3"))
	assert.Equal(t, messages.ViewSettings, target(t, cmd))
	assert.Equal(t, 2, view.Cursor())

	_, cmd = view.Update(runes("5"))
	assert.True(t, isQuit(cmd))

	_, cmd = view.Update(runes("9"))
	assert.Nil(t, cmd)
	assert.Equal(t, 4, view.Cursor())
}

func TestView_HelpAndQuitKeys(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(runes("?"))
	assert.Equal(t, messages.ViewHelp, target(t, cmd))

	_, cmd = view.Update(runes("q"))
	assert.True(t, isQuit(cmd))

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(cmd), "Quit entry")
}

func TestView_Render(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	out := view.View()
	for _, e := range Entries() {
		assert.Contains(t, out, e.Label)
	}
	assert.Contains(t, out, "Text preparation for narration")
	assert.Contains(t, out, "1-5 jump")
}

func TestView_IgnoresOtherMessages(t *testing.T) {
	view := NewView(nil)
	updated, cmd := view.Update(messages.Quit{})
	assert.Same(t, view, updated)
	assert.Nil(t, cmd)
	assert.Nil(t, view.Init())
}
