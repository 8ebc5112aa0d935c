// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

const progressWidth = 20

// JobList displays the jobs on one dashboard tab in a navigable list.
type JobList struct {
	jobs     []domain.Job
	tab      domain.JobTab
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewJobList creates a new job list component.
func NewJobList(s *styles.Styles) *JobList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &JobList{
		tab:    domain.TabRunning,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the job list.
func (l *JobList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *JobList) Update(msg tea.Msg) (*JobList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the job list.
func (l *JobList) View() string {
	if len(l.jobs) == 0 {
		return l.styles.Muted.Render("No jobs")
	}

	// Each job takes two lines
	visibleCount := l.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.jobs) {
		end = len(l.jobs)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderJob(i, &l.jobs[i]))
	}
	return strings.Join(lines, "\n")
}

// renderJob formats a job as a title line and a muted detail line.
func (l *JobList) renderJob(index int, job *domain.Job) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	star := " "
	if job.Starred {
		star = "*"
	}

	title := truncate(job.Title, l.width-36)
	head := fmt.Sprintf("%s%s %-*s", indicator, star, maxInt(l.width-36, 10), title)

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(head) + " " + l.styles.Status(job.Status).Render(job.Status.String())
	} else {
		titleLine = l.styles.Normal.Render(head) + " " + l.styles.Status(job.Status).Render(job.Status.String())
	}
	if job.Priority != "" {
		titleLine += " " + l.styles.Priority(job.Priority).Render(job.Priority.String())
	}

	detail := "    " + strings.Join(l.details(job), " · ")
	return titleLine + "\n" + l.styles.Muted.Render(truncate(detail, l.width))
}

// details returns the per-tab columns shown under a job title.
func (l *JobList) details(job *domain.Job) []string {
	parts := []string{job.ID, job.Type.String()}
	if job.Owner != "" {
		parts = append(parts, job.Owner)
	}

	switch l.tab {
	case domain.TabRunning:
		parts = append(parts, progressBar(job.Progress))
		if job.Stage != "" {
			parts = append(parts, job.Stage)
		}
		if job.ETA != "" {
			parts = append(parts, "eta "+job.ETA)
		}
	case domain.TabQueued:
		if !job.ScheduledAt.IsZero() {
			parts = append(parts, "scheduled "+humanize.Time(job.ScheduledAt))
		} else if !job.CreatedAt.IsZero() {
			parts = append(parts, "queued "+humanize.Time(job.CreatedAt))
		}
		if len(job.Dependencies) > 0 {
			parts = append(parts, "after "+strings.Join(job.Dependencies, ", "))
		}
	case domain.TabHistory:
		if !job.FinishedAt.IsZero() {
			parts = append(parts, "finished "+humanize.Time(job.FinishedAt))
		}
		if job.Duration != "" {
			parts = append(parts, job.Duration)
		}
		if job.FileSize != "" {
			parts = append(parts, job.FileSize)
		}
	}

	if len(job.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(job.Tags, " #"))
	}
	return parts
}

// progressBar renders a fixed-width textual progress bar.
func progressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * progressWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("█", filled), strings.Repeat("░", progressWidth-filled), percent)
}

func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SetJobs replaces the jobs shown and the tab they belong to.
// The selection is kept when it is still in range.
func (l *JobList) SetJobs(tab domain.JobTab, jobs []domain.Job) {
	if tab != l.tab {
		l.selected = 0
	}
	l.tab = tab
	l.jobs = jobs
	if l.selected >= len(jobs) {
		l.selected = maxInt(len(jobs)-1, 0)
	}
}

// Jobs returns the current jobs.
func (l *JobList) Jobs() []domain.Job {
	return l.jobs
}

// Tab returns the tab being shown.
func (l *JobList) Tab() domain.JobTab {
	return l.tab
}

// Selected returns the index of the selected job.
func (l *JobList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *JobList) SetSelected(index int) {
	if index >= 0 && index < len(l.jobs) {
		l.selected = index
	}
}

// SelectedJob returns the currently selected job, or nil if none.
func (l *JobList) SelectedJob() *domain.Job {
	if len(l.jobs) == 0 || l.selected < 0 || l.selected >= len(l.jobs) {
		return nil
	}
	return &l.jobs[l.selected]
}

// MoveUp moves selection up.
func (l *JobList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *JobList) MoveDown() {
	if l.selected < len(l.jobs)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *JobList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of jobs.
func (l *JobList) Count() int {
	return len(l.jobs)
}
