// Package styles holds the palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// Palette names colours by role. Job states reuse the signal colours so
// the dashboard and the status bar agree.
type Palette struct {
	Accent  lipgloss.Color
	Info    lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Surface lipgloss.Color
	Edge    lipgloss.Color

	Good lipgloss.Color
	Wait lipgloss.Color
	Bad  lipgloss.Color
}

// Dark is the palette for dark terminals.
func Dark() Palette {
	return Palette{
		Accent:  "#7C3AED",
		Info:    "#06B6D4",
		Text:    "#CDD6F4",
		Subtle:  "#6C7086",
		Surface: "#181825",
		Edge:    "#45475A",
		Good:    "#A6E3A1",
		Wait:    "#F9E2AF",
		Bad:     "#F38BA8",
	}
}

// Light is the palette for light terminals.
func Light() Palette {
	return Palette{
		Accent:  "#6D28D9",
		Info:    "#0E7490",
		Text:    "#1F2937",
		Subtle:  "#6B7280",
		Surface: "#E5E7EB",
		Edge:    "#9CA3AF",
		Good:    "#15803D",
		Wait:    "#B45309",
		Bad:     "#B91C1C",
	}
}

// Styles are the rendered styles views draw with.
type Styles struct {
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	Border     lipgloss.Style
	StatusBar  lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
}

// New builds the styles for p.
func New(p Palette) *Styles {
	text := lipgloss.NewStyle().Foreground(p.Text)
	subtle := lipgloss.NewStyle().Foreground(p.Subtle)
	highlight := lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent)
	rounded := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Edge)

	return &Styles{
		Palette:    p,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle:   lipgloss.NewStyle().Bold(true).Foreground(p.Info),
		Normal:     text,
		Muted:      subtle,
		Selected:   highlight,
		Help:       subtle,
		Error:      lipgloss.NewStyle().Foreground(p.Bad),
		Success:    lipgloss.NewStyle().Foreground(p.Good),
		Warning:    lipgloss.NewStyle().Foreground(p.Wait),
		InputField: rounded.Padding(0, 1),
		Border:     rounded,
		StatusBar:  subtle.Background(p.Surface).Padding(0, 1),
		Tab:        subtle.Padding(0, 1),
		ActiveTab:  highlight.Padding(0, 1),
	}
}

// DefaultStyles picks the palette matching the terminal background.
func DefaultStyles() *Styles {
	if lipgloss.HasDarkBackground() {
		return New(Dark())
	}
	return New(Light())
}

// Status returns the badge style for a job status.
func (s *Styles) Status(status domain.JobStatus) lipgloss.Style {
	switch status {
	case domain.JobRunning, domain.JobProcessing:
		return s.Subtitle
	case domain.JobCompleted:
		return s.Success
	case domain.JobFailed:
		return s.Error
	case domain.JobPaused, domain.JobScheduled:
		return s.Warning
	default:
		return s.Muted
	}
}

// Priority returns the style for a job priority.
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return s.Error.Bold(true)
	case domain.PriorityHigh:
		return s.Warning
	case domain.PriorityLow:
		return s.Muted
	default:
		return s.Normal
	}
}
