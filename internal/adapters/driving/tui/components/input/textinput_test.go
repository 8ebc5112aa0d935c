package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
)

func typeRunes(f *Field, s string) {
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewSearch(t *testing.T) {
	f := NewSearch(styles.DefaultStyles())

	require.NotNil(t, f)
	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
	assert.Contains(t, f.View(), "Search")
	assert.NotNil(t, f.Init())
}

func TestNewEditor(t *testing.T) {
	f := NewEditor(nil)

	require.NotNil(t, f.styles)
	assert.NotContains(t, f.View(), "Search")
	assert.Equal(t, 256, f.model.CharLimit)
}

func TestField_KeysOnlyWhenFocused(t *testing.T) {
	f := NewSearch(nil)

	typeRunes(f, "a")
	assert.Empty(t, f.Value())

	f.Focus()
	assert.True(t, f.Focused())
	typeRunes(f, "alice")
	assert.Equal(t, "alice", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
	typeRunes(f, "x")
	assert.Equal(t, "alice", f.Value())
}

func TestField_SetValueMovesCursorToEnd(t *testing.T) {
	f := NewEditor(nil)
	f.SetValue("250")
	f.Focus()

	typeRunes(f, "0")
	assert.Equal(t, "2500", f.Value())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	search := NewSearch(nil)
	search.SetWidth(100)
	assert.Equal(t, 100, search.Width())
	assert.Equal(t, 86, search.model.Width)

	search.SetWidth(10)
	assert.Equal(t, minWidth, search.model.Width)

	editor := NewEditor(nil)
	editor.SetWidth(100)
	assert.Equal(t, 94, editor.model.Width)
}
