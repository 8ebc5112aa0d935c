package mcp

import (
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Cleaning owns the rule registry and text cleaning.
	Cleaning driving.CleaningService

	// Segment splits text into narration segments.
	Segment driving.SegmentService

	// Jobs manages dashboard jobs.
	Jobs driving.JobService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Cleaning == nil {
		return ErrMissingCleaningService
	}
	// Segment and Jobs are optional; their tools report ErrNotImplemented.
	return nil
}
