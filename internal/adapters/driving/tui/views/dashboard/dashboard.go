// Package dashboard provides the job dashboard view for the TUI.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

var errNoJobService = errors.New("job service not available")

// View is the job dashboard: a search box, three dropdown filters and
// one tab per job group.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	jobService driving.JobService

	filterInput *input.Field
	list        *list.JobList
	bar         *status.Bar

	ctx     context.Context
	filter  domain.JobFilter
	tab     domain.JobTab
	tabs    domain.JobsByTab
	total   int
	details bool
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, jobService driving.JobService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:      s,
		keymap:      km,
		jobService:  jobService,
		filterInput: input.NewSearch(s),
		list:        list.NewJobList(s),
		bar:         status.NewBar(s, km, status.ModeDashboard),
		ctx:         context.Background(),
		filter:      emptyFilter(),
		tab:         domain.TabRunning,
		width:       80,
		height:      24,
	}
}

func emptyFilter() domain.JobFilter {
	return domain.JobFilter{Status: domain.FilterAll, Type: domain.FilterAll, Priority: domain.FilterAll}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the jobs.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadJobs()
}

// loadJobs returns a command that applies the current filter and groups the result by tab.
func (v *View) loadJobs() tea.Cmd {
	filter := v.filter
	ctx := v.ctx
	return func() tea.Msg {
		if v.jobService == nil {
			return messages.JobsLoaded{Filter: filter, Err: errNoJobService}
		}

		all, err := v.jobService.List(ctx)
		if err != nil {
			return messages.JobsLoaded{Filter: filter, Err: err}
		}
		filtered, err := v.jobService.Filter(ctx, filter)
		if err != nil {
			return messages.JobsLoaded{Filter: filter, Err: err}
		}

		return messages.JobsLoaded{
			Filter: filter,
			Tabs:   v.jobService.Tabs(filtered),
			Total:  len(all),
		}
	}
}

func starNote(job *domain.Job) string {
	if job.Starred {
		return "Starred " + job.ID
	}
	return "Unstarred " + job.ID
}

// toggleStar returns a command that flips the star on a job.
func (v *View) toggleStar(id string) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.jobService == nil {
			return messages.JobUpdated{Err: errNoJobService}
		}
		job, err := v.jobService.ToggleStar(ctx, id)
		return messages.JobUpdated{Job: job, Err: err}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.JobsLoaded:
		// Drop results for a filter that has since changed
		if msg.Filter != v.filter {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.bar.SetError(nil)
		v.tabs = msg.Tabs
		v.total = msg.Total
		v.refreshList()
		return v, nil

	case messages.JobUpdated:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetError(msg.Err)
			return v, nil
		}
		if msg.Job != nil {
			v.bar.SetNote(starNote(msg.Job))
		}
		return v, v.loadJobs()

	case tea.KeyMsg:
		if v.filterInput.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	if v.filterInput.Focused() {
		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleFilterKey edits the search box; every change refilters.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		v.filterInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	if q := v.filterInput.Value(); q != v.filter.Query {
		v.filter.Query = q
		return v, tea.Batch(cmd, v.loadJobs())
	}
	return v, cmd
}

// handleKeyMsg handles key presses while the job list has focus.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		if v.details {
			v.details = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key == "q":
		return v, tea.Quit

	case keymap.Matches(key, v.keymap.Filter):
		return v, v.filterInput.Focus()

	case keymap.Matches(key, v.keymap.NextTab):
		v.setTab(nextTab(v.tab, 1))

	case keymap.Matches(key, v.keymap.PrevTab):
		v.setTab(nextTab(v.tab, -1))

	case keymap.Matches(key, v.keymap.Status):
		v.filter.Status = cycle(v.filter.Status, statusOptions())
		return v, v.loadJobs()

	case keymap.Matches(key, v.keymap.Type):
		v.filter.Type = cycle(v.filter.Type, typeOptions())
		return v, v.loadJobs()

	case keymap.Matches(key, v.keymap.Priority):
		v.filter.Priority = cycle(v.filter.Priority, priorityOptions())
		return v, v.loadJobs()

	case keymap.Matches(key, v.keymap.ClearFilters):
		v.filter = emptyFilter()
		v.filterInput.Reset()
		return v, v.loadJobs()

	case keymap.Matches(key, v.keymap.Star):
		if job := v.list.SelectedJob(); job != nil {
			return v, v.toggleStar(job.ID)
		}

	case keymap.Matches(key, v.keymap.Select):
		v.details = !v.details && v.list.SelectedJob() != nil

	case keymap.Matches(key, v.keymap.Reload):
		v.loading = true
		return v, v.loadJobs()

	default:
		v.list, _ = v.list.Update(msg)
	}

	return v, nil
}

func (v *View) setTab(tab domain.JobTab) {
	v.tab = tab
	v.details = false
	v.refreshList()
}

func (v *View) refreshList() {
	jobs := v.tabs.Tab(v.tab)
	v.list.SetJobs(v.tab, jobs)
	v.bar.SetCounts(len(v.tabs.Running)+len(v.tabs.Queued)+len(v.tabs.History), v.total)
	if v.list.SelectedJob() == nil {
		v.details = false
	}
}

// nextTab moves step tabs along, wrapping at either end.
func nextTab(current domain.JobTab, step int) domain.JobTab {
	tabs := domain.JobTabs()
	for i, t := range tabs {
		if t == current {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return tabs[0]
}

// cycle returns the option after current, wrapping to the first.
func cycle(current string, options []string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func statusOptions() []string {
	opts := []string{domain.FilterAll}
	for _, s := range domain.JobStatuses() {
		opts = append(opts, s.String())
	}
	return opts
}

func typeOptions() []string {
	return []string{domain.FilterAll, domain.JobManual.String(), domain.JobAuto.String()}
}

func priorityOptions() []string {
	opts := []string{domain.FilterAll}
	for _, p := range domain.Priorities() {
		opts = append(opts, p.String())
	}
	return opts
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(v.filterInput.View())
	b.WriteString("\n")
	b.WriteString(v.renderDropdowns())
	b.WriteString("\n\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	switch {
	case v.loading && v.total == 0:
		b.WriteString(v.styles.Muted.Render("Loading jobs..."))
	case v.err != nil && v.total == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	if v.details {
		if job := v.list.SelectedJob(); job != nil {
			b.WriteString("\n\n")
			b.WriteString(v.renderDetails(job))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderDropdowns() string {
	parts := []string{
		v.styles.Muted.Render("[s] Status: ") + v.styles.Normal.Render(v.filter.Status),
		v.styles.Muted.Render("[t] Type: ") + v.styles.Normal.Render(v.filter.Type),
		v.styles.Muted.Render("[p] Priority: ") + v.styles.Normal.Render(v.filter.Priority),
	}
	return strings.Join(parts, "   ")
}

func (v *View) renderTabs() string {
	labels := map[domain.JobTab]string{
		domain.TabRunning: "Running",
		domain.TabQueued:  "Queued",
		domain.TabHistory: "History",
	}

	rendered := make([]string, 0, len(labels))
	for _, tab := range domain.JobTabs() {
		label := fmt.Sprintf("%s (%d)", labels[tab], len(v.tabs.Tab(tab)))
		if tab == v.tab {
			rendered = append(rendered, v.styles.ActiveTab.Render(label))
		} else {
			rendered = append(rendered, v.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderDetails renders every populated field of a job.
func (v *View) renderDetails(job *domain.Job) string {
	rows := [][2]string{
		{"ID", job.ID},
		{"Title", job.Title},
		{"Type", job.Type.String()},
		{"Status", job.Status.String()},
		{"Priority", job.Priority.String()},
		{"Owner", job.Owner},
		{"Stage", job.Stage},
		{"ETA", job.ETA},
		{"Duration", job.Duration},
		{"Output", strings.TrimSpace(job.OutputType + " " + job.Resolution)},
		{"File size", job.FileSize},
		{"Cost", job.EstimatedCost},
		{"Depends on", strings.Join(job.Dependencies, ", ")},
		{"Tags", strings.Join(job.Tags, ", ")},
	}
	if job.Progress > 0 {
		rows = append(rows, [2]string{"Progress", fmt.Sprintf("%d%%", job.Progress)})
	}
	if job.GPUUsage > 0 || job.MemoryUsage > 0 {
		rows = append(rows, [2]string{"GPU / memory", fmt.Sprintf("%d%% / %d%%", job.GPUUsage, job.MemoryUsage)})
	}
	if !job.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Created", humanize.Time(job.CreatedAt)})
	}
	if !job.ScheduledAt.IsZero() {
		rows = append(rows, [2]string{"Scheduled", humanize.Time(job.ScheduledAt)})
	}
	if !job.FinishedAt.IsZero() {
		rows = append(rows, [2]string{"Finished", humanize.Time(job.FinishedAt)})
	}

	var b strings.Builder
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%-13s", row[0])))
		b.WriteString(v.styles.Normal.Render(row[1]))
		b.WriteString("\n")
	}
	return v.styles.Border.Padding(0, 1).Render(strings.TrimRight(b.String(), "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filterInput.SetWidth(width)
	v.bar.SetWidth(width)
	// Title, search box, dropdowns, tabs and status bar
	v.list.SetDimensions(width, height-12)
}

// Reset clears filters and returns to the first tab.
func (v *View) Reset() {
	v.filter = emptyFilter()
	v.filterInput.Reset()
	v.filterInput.Blur()
	v.tab = domain.TabRunning
	v.details = false
	v.err = nil
}

// Filter returns the active filter.
func (v *View) Filter() domain.JobFilter {
	return v.filter
}

// Tab returns the active tab.
func (v *View) Tab() domain.JobTab {
	return v.tab
}

// Jobs returns the jobs on the active tab.
func (v *View) Jobs() []domain.Job {
	return v.list.Jobs()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
