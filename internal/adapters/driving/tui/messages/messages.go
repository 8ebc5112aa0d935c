// Package messages holds the bubbletea messages the TUI views exchange.
package messages

import (
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// ViewType names a screen.
type ViewType int

const (
	ViewMenu ViewType = iota
	ViewDashboard
	ViewRules
	ViewSettings
	ViewHelp
)

var viewNames = [...]string{
	ViewMenu:      "menu",
	ViewDashboard: "dashboard",
	ViewRules:     "rules",
	ViewSettings:  "settings",
	ViewHelp:      "help",
}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// ViewChanged asks the app to switch screens and start the new one's load.
type ViewChanged struct {
	View ViewType
}

type ErrorOccurred struct {
	Err error
}

type Quit struct{}

// JobsLoaded answers a dashboard load. Filter echoes the request so stale
// answers can be dropped.
type JobsLoaded struct {
	Filter domain.JobFilter
	Tabs   domain.JobsByTab
	Total  int
	Err    error
}

// JobUpdated follows a status change or star toggle.
type JobUpdated struct {
	Job *domain.Job
	Err error
}

// RulesLoaded carries the rules and the sample text cleaned with them.
type RulesLoaded struct {
	Rules   []domain.CleaningRule
	Preview *domain.NormalisationResult
	Err     error
}

type RuleToggled struct {
	Rule *domain.CleaningRule
	Err  error
}

type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved names the key that was written.
type SettingsSaved struct {
	Key string
	Err error
}
