package driven

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// SchedulerStore keeps task state and run history across restarts.
type SchedulerStore interface {
	// Task returns the stored state for id, or domain.ErrNotFound.
	Task(ctx context.Context, id domain.TaskID) (*domain.Task, error)

	// Tasks returns every stored task ordered by ID.
	Tasks(ctx context.Context) ([]domain.Task, error)

	// PutTask inserts or replaces a task.
	PutTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes a task. Missing tasks are not an error.
	DeleteTask(ctx context.Context, id domain.TaskID) error

	// AppendRun records one execution.
	AppendRun(ctx context.Context, run domain.TaskRun) error

	// Runs returns up to limit runs of id, newest first.
	Runs(ctx context.Context, id domain.TaskID, limit int) ([]domain.TaskRun, error)

	// PruneRuns keeps the newest keep runs per task and reports how many
	// were removed.
	PruneRuns(ctx context.Context, keep int) (int, error)
}
