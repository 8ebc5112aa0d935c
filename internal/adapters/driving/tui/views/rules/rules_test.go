package rules

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/services"
)

func newLoadedView(t *testing.T) (*View, *memory.ConfigStore) {
	t.Helper()
	store := memory.NewConfigStore()
	v := NewView(nil, services.NewCleaningService(store, nil))
	v.SetDimensions(160, 40)
	v.Update(v.Init()())
	require.NoError(t, v.Err())
	return v, store
}

// run executes cmd and feeds every resulting message back until none remain.
func run(v *View, cmd tea.Cmd) {
	for cmd != nil {
		_, cmd = v.Update(cmd())
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_LoadsRulesAndPreview(t *testing.T) {
	v, _ := newLoadedView(t)

	assert.Len(t, v.Rules(), len(domain.DefaultRules()))
	require.NotNil(t, v.Preview())
	assert.Equal(t, 23, v.Preview().Words)
	assert.Positive(t, v.Preview().Changes)

	view := v.View()
	assert.Contains(t, view, "Cleaning Rules")
	assert.Contains(t, view, "[x] Remove Extra Spaces")
	assert.Contains(t, view, "[ ] Remove URLs")
	assert.Contains(t, view, "(no effect yet)")
	assert.Contains(t, view, "FORMATTING")
	assert.Contains(t, view, "23 words")
	assert.Contains(t, view, "6 of 7 rules enabled")
}

func TestView_ToggleUpdatesPreview(t *testing.T) {
	v, store := newLoadedView(t)
	before := v.Preview().Changes

	_, cmd := v.Update(key(" "))
	run(v, cmd)

	assert.False(t, v.Rules()[0].Enabled)
	assert.False(t, store.GetBool("rules.remove-extra-spaces.enabled"))
	assert.Less(t, v.Preview().Changes, before)
	assert.Contains(t, v.View(), "5 of 7 rules enabled")
}

func TestView_Navigation(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(key("down"))
	v.Update(key("j"))
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(key("k"))
	assert.Equal(t, 1, v.SelectedIndex())

	for i := 0; i < 20; i++ {
		v.Update(key("down"))
	}
	assert.Equal(t, len(v.Rules())-1, v.SelectedIndex())
}

func TestView_Reset(t *testing.T) {
	v, _ := newLoadedView(t)
	_, cmd := v.Update(key(" "))
	run(v, cmd)
	require.False(t, v.Rules()[0].Enabled)

	_, cmd = v.Update(key("R"))
	run(v, cmd)

	assert.Equal(t, domain.DefaultRules(), v.Rules())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v, _ := newLoadedView(t)

	_, cmd := v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "cleaning service not available")
}

func TestView_ToggleError(t *testing.T) {
	store := memory.NewConfigStore()
	v := NewView(nil, services.NewCleaningService(store, nil))
	v.Update(v.Init()())

	store.FailWrites(errors.New("read-only"))
	_, cmd := v.Update(key(" "))
	run(v, cmd)

	require.Error(t, v.Err())
	assert.True(t, v.Rules()[0].Enabled, "state unchanged")
}

func TestEnabledCount(t *testing.T) {
	assert.Equal(t, 6, enabledCount(domain.DefaultRules()))
	assert.Zero(t, enabledCount(nil))
}
