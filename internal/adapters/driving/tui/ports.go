// Package tui is the interactive terminal dashboard, built on bubbletea.
package tui

import (
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

// Ports are the services the views call. Settings is optional; without it
// the settings view shows an error instead of values.
type Ports struct {
	Jobs     driving.JobService
	Cleaning driving.CleaningService
	Settings driving.SettingsService
}

func NewPorts(jobs driving.JobService, cleaning driving.CleaningService) *Ports {
	return &Ports{Jobs: jobs, Cleaning: cleaning}
}

func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidPorts
	case p.Jobs == nil:
		return ErrMissingJobService
	case p.Cleaning == nil:
		return ErrMissingCleaningService
	}
	return nil
}
