package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app
}

// navigate switches views the way the menu does and runs the view's load command.
func navigate(t *testing.T, app *App, view messages.ViewType) {
	t.Helper()
	_, cmd := app.Update(messages.ViewChanged{View: view})
	if cmd != nil {
		app.Update(cmd())
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(t))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.ErrorIs(t, err, ErrMissingJobService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)
	require.False(t, app.Ready())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Menu(t *testing.T) {
	app := newTestApp(t)

	view := app.View()
	assert.Contains(t, view, "Narrator")
	assert.Contains(t, view, "Dashboard")
}

func TestApp_MenuToDashboard(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	navigate(t, app, cmd().(messages.ViewChanged).View)

	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Running (2)")
	assert.Contains(t, view, "Alice in Wonderland")
}

func TestApp_DashboardFilterAndStar(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewDashboard)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, "Manual", app.dashboard.Filter().Type)
	assert.Contains(t, app.View(), "Running (1)")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'*'}})
	require.NotNil(t, cmd)
	_, reload := app.Update(cmd())
	require.NotNil(t, reload)
	app.Update(reload())

	job, err := app.ports.Jobs.Get(context.Background(), "job_001")
	require.NoError(t, err)
	assert.False(t, job.Starred, "job_001 starts starred")
}

func TestApp_RulesToggle(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewRules)
	require.Equal(t, messages.ViewRules, app.CurrentView())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd)
	_, reload := app.Update(cmd())
	require.NotNil(t, reload)
	app.Update(reload())

	rules, err := app.ports.Cleaning.ListRules(context.Background())
	require.NoError(t, err)
	assert.False(t, rules[0].Enabled)
	assert.Contains(t, app.View(), "[ ] Remove Extra Spaces")
}

func TestApp_Settings(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewSettings)

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "8642")
}

func TestApp_Settings_NoService(t *testing.T) {
	ports := newTestPorts(t)
	ports.Settings = nil
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)

	navigate(t, app, messages.ViewSettings)

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "settings service not available")
}

func TestApp_EscFromViewsReturnsToMenu(t *testing.T) {
	for _, view := range []messages.ViewType{messages.ViewDashboard, messages.ViewRules, messages.ViewSettings} {
		t.Run(view.String(), func(t *testing.T) {
			app := newTestApp(t)
			navigate(t, app, view)

			_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
			require.NotNil(t, cmd)
			navigate(t, app, cmd().(messages.ViewChanged).View)

			assert.Equal(t, messages.ViewMenu, app.CurrentView())
		})
	}
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewHelp)

	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Cleaning Rules")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewDashboard)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.Equal(t, boom, app.Err())
}

func TestApp_Update_JobsLoadedError(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewDashboard)

	app.Update(messages.JobsLoaded{Filter: app.dashboard.Filter(), Err: domain.ErrNotImplemented})

	assert.ErrorIs(t, app.Err(), domain.ErrNotImplemented)
}
