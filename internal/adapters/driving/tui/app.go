package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/views/rules"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/views/settings"
)

var _ tea.Model = (*App)(nil)

// App routes messages to the active view. Load results are routed to the
// view that asked for them even after the user has moved on.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keys   *keymap.KeyMap

	menu      *menu.View
	dashboard *dashboard.View
	rules     *rules.View
	settings  *settings.View

	current       messages.ViewType
	err           error
	width, height int
	ready         bool
}

func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:     ports,
		styles:    s,
		keys:      keymap.DefaultKeyMap(),
		menu:      menu.NewView(s),
		dashboard: dashboard.NewView(s, ports.Jobs),
		rules:     rules.NewView(s, ports.Cleaning),
		settings:  settings.NewView(s, ports.Settings),
		current:   messages.ViewMenu,
	}, nil
}

// WithContext scopes the views' service calls to ctx.
func (a *App) WithContext(ctx context.Context) *App {
	a.dashboard.WithContext(ctx)
	a.rules.WithContext(ctx)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tea.SetWindowTitle("narrator"))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.current == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.current = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(a.current, msg)

	case messages.ViewChanged:
		return a, a.open(msg.View)

	case messages.JobsLoaded, messages.JobUpdated:
		return a, a.forward(messages.ViewDashboard, msg)

	case messages.RulesLoaded, messages.RuleToggled:
		return a, a.forward(messages.ViewRules, msg)

	case messages.SettingsLoaded, messages.SettingsSaved:
		return a, a.forward(messages.ViewSettings, msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(a.current, msg)
}

// forward hands msg to one view and records the error it is left with.
func (a *App) forward(target messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch target {
	case messages.ViewMenu:
		a.menu, cmd = a.menu.Update(msg)
	case messages.ViewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
		a.err = a.dashboard.Err()
	case messages.ViewRules:
		a.rules, cmd = a.rules.Update(msg)
		a.err = a.rules.Err()
	case messages.ViewSettings:
		a.settings, cmd = a.settings.Update(msg)
		a.err = a.settings.Err()
	case messages.ViewHelp:
	}
	return cmd
}

// open switches to view and starts its load.
func (a *App) open(view messages.ViewType) tea.Cmd {
	a.current = view
	switch view {
	case messages.ViewDashboard:
		a.dashboard.Reset()
		return a.dashboard.Init()
	case messages.ViewRules:
		return a.rules.Init()
	case messages.ViewSettings:
		a.settings.Reset()
		return a.settings.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.current {
	case messages.ViewDashboard:
		return a.dashboard.View()
	case messages.ViewRules:
		return a.rules.View()
	case messages.ViewSettings:
		return a.settings.View()
	case messages.ViewHelp:
		return a.helpView()
	case messages.ViewMenu:
	}
	return a.menu.View()
}

// helpView lays the key map out one section per block.
func (a *App) helpView() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, sec := range a.keys.Sections() {
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render(sec.Title))
		b.WriteString("\n")
		for _, binding := range sec.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, a.styles.Muted.Render(h.Desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("esc back to menu"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.WithContext(ctx)
	_, err := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (a *App) CurrentView() messages.ViewType { return a.current }

func (a *App) Err() error { return a.err }

func (a *App) Ready() bool { return a.ready }

// SetDimensions resizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width, a.height = width, height
	a.ready = true
	a.menu.SetDimensions(width, height)
	a.dashboard.SetDimensions(width, height)
	a.rules.SetDimensions(width, height)
	a.settings.SetDimensions(width, height)
}
