package driving

import (
	"context"
	"io"
	"time"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// JobService manages narration jobs shown on the dashboard.
type JobService interface {
	// List returns all jobs, oldest first.
	List(ctx context.Context) ([]domain.Job, error)

	// Filter returns the jobs matching every active filter, in list order.
	Filter(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)

	// Get retrieves a job by ID.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// SetStatus moves a job to a new status.
	SetStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error)

	// ToggleStar flips a job's starred flag.
	ToggleStar(ctx context.Context, id string) (*domain.Job, error)

	// Import creates a queued manual job from a text or markdown file.
	// Returns domain.ErrUnsupportedFile for other extensions.
	Import(ctx context.Context, path string) (*domain.Job, error)

	// ImportManifest creates jobs from a manifest.
	ImportManifest(ctx context.Context, r io.Reader) ([]domain.Job, error)

	// Seed loads the sample jobs when the store is empty.
	// Returns the number of jobs added.
	Seed(ctx context.Context) (int, error)

	// PromoteScheduled queues every scheduled job whose time has passed.
	// Returns the number of jobs promoted.
	PromoteScheduled(ctx context.Context, now time.Time) (int, error)

	// Tabs groups jobs by dashboard tab.
	Tabs(jobs []domain.Job) domain.JobsByTab
}
