package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func TestSchedulerStore_Tasks(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	_, err := store.Task(ctx, domain.TaskPruneRuns)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.PutTask(ctx, domain.Task{ID: domain.TaskPruneRuns, Every: time.Hour}))
	require.NoError(t, store.PutTask(ctx, domain.Task{ID: domain.TaskPromoteScheduled, Every: time.Minute}))
	require.ErrorIs(t, store.PutTask(ctx, domain.Task{}), domain.ErrInvalidInput)

	tasks, err := store.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskPromoteScheduled, tasks[0].ID)

	task, err := store.Task(ctx, domain.TaskPruneRuns)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, task.Every)

	require.NoError(t, store.DeleteTask(ctx, domain.TaskPruneRuns))
	require.NoError(t, store.DeleteTask(ctx, domain.TaskPruneRuns))
	tasks, err = store.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestSchedulerStore_RunsAndPrune(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendRun(ctx, domain.TaskRun{Task: domain.TaskPromoteScheduled, Items: i}))
	}
	require.NoError(t, store.AppendRun(ctx, domain.TaskRun{Task: domain.TaskPruneRuns}))

	runs, err := store.Runs(ctx, domain.TaskPromoteScheduled, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 4, runs[0].Items)
	assert.Equal(t, 3, runs[1].Items)

	removed, err := store.PruneRuns(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	runs, err = store.Runs(ctx, domain.TaskPromoteScheduled, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{runs[0].Items, runs[1].Items, runs[2].Items})

	runs, err = store.Runs(ctx, domain.TaskPruneRuns, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
