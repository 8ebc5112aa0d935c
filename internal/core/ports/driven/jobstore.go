package driven

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// JobStore persists narration jobs.
type JobStore interface {
	// Save creates or updates a job.
	Save(ctx context.Context, job *domain.Job) error

	// Get retrieves a job by ID.
	// Returns domain.ErrJobNotFound if the job does not exist.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// Delete removes a job.
	// Returns domain.ErrJobNotFound if the job does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all jobs ordered by creation time, oldest first.
	List(ctx context.Context) ([]domain.Job, error)
}
