// Package httpapi exposes the cleaning, segmentation and job services
// as a JSON API over HTTP, routed with chi.
package httpapi

import (
	"errors"

	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

var (
	// ErrMissingCleaningService is returned when the cleaning service is not provided.
	ErrMissingCleaningService = errors.New("httpapi: cleaning service is required")
	// ErrMissingJobService is returned when the job service is not provided.
	ErrMissingJobService = errors.New("httpapi: job service is required")
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Cleaning owns the rule registry and text cleaning.
	Cleaning driving.CleaningService

	// Segment splits text for narration. Optional.
	Segment driving.SegmentService

	// Jobs manages dashboard jobs.
	Jobs driving.JobService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Cleaning == nil {
		return ErrMissingCleaningService
	}
	if p.Jobs == nil {
		return ErrMissingJobService
	}
	return nil
}
