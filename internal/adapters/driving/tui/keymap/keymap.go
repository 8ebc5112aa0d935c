// Package keymap holds the TUI key bindings and the help text built
// from them.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is shared by every view. Views match raw key strings against it
// with Matches.
type KeyMap struct {
	Quit, Help, Back key.Binding
	Up, Down, Select key.Binding
	NextTab, PrevTab key.Binding
	Filter, Status   key.Binding
	Type, Priority   key.Binding
	ClearFilters     key.Binding
	Star             key.Binding
	Toggle, Reset    key.Binding
	Reload           key.Binding
}

func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:   bind("q", "quit", "q", "ctrl+c"),
		Help:   bind("?", "help", "?"),
		Back:   bind("esc", "back", "esc"),
		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),

		NextTab:      bind("tab", "next tab", "tab", "l", "right"),
		PrevTab:      bind("shift+tab", "prev tab", "shift+tab", "h", "left"),
		Filter:       bind("/", "search", "/"),
		Status:       bind("s", "status", "s"),
		Type:         bind("t", "type", "t"),
		Priority:     bind("p", "priority", "p"),
		ClearFilters: bind("x", "clear filters", "x"),
		Star:         bind("*", "star", "*", "f"),

		// enter toggles as well as space.
		Toggle: bind("space", "toggle", " ", "enter"),
		Reset:  bind("R", "reset", "R"),
		Reload: bind("r", "reload", "r"),
	}
}

// ShortHelp is the status bar hint list outside the dashboard and rules.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k *KeyMap) DashboardHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Filter, k.Status, k.Type, k.Priority, k.ClearFilters, k.Star, k.Back}
}

func (k *KeyMap) RulesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reset, k.Back}
}

// Section is one titled block of the help screen.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections lists every binding grouped by the view that uses it.
func (k *KeyMap) Sections() []Section {
	return []Section{
		{Title: "Everywhere", Bindings: []key.Binding{k.Back, k.Help, k.Quit}},
		{Title: "Menu", Bindings: []key.Binding{k.Up, k.Down, k.Select}},
		{Title: "Dashboard", Bindings: []key.Binding{
			k.NextTab, k.PrevTab, k.Filter, k.Status, k.Type, k.Priority, k.ClearFilters, k.Star, k.Select, k.Reload,
		}},
		{Title: "Cleaning Rules", Bindings: []key.Binding{k.Up, k.Down, k.Toggle, k.Reset, k.Reload}},
		{Title: "Settings", Bindings: []key.Binding{k.Up, k.Down, k.Select, k.Back}},
	}
}

// Matches reports whether keyStr triggers binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
