package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func TestNewJobStore(t *testing.T) {
	store := NewJobStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.jobs)
}

func TestJobStore_Save_Get(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	job := &domain.Job{ID: "job_1", Title: "Chapter One", Status: domain.JobQueued, Tags: []string{"fiction"}}
	require.NoError(t, store.Save(ctx, job))

	got, err := store.Get(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, "Chapter One", got.Title)
	assert.Equal(t, domain.JobQueued, got.Status)
	assert.Equal(t, []string{"fiction"}, got.Tags)
}

func TestJobStore_Save_Update(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_1", Title: "Draft"}))
	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_1", Title: "Final"}))

	got, err := store.Get(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobStore_Save_RequiresID(t *testing.T) {
	store := NewJobStore()

	err := store.Save(context.Background(), &domain.Job{Title: "No ID"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobStore_Get_NotFound(t *testing.T) {
	store := NewJobStore()

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_Get_ReturnsCopy(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_1", Tags: []string{"a"}}))

	got, err := store.Get(ctx, "job_1")
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	again, err := store.Get(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.Empty(t, again.Title)
}

func TestJobStore_Delete(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_1"}))

	require.NoError(t, store.Delete(ctx, "job_1"))

	_, err := store.Get(ctx, "job_1")
	require.ErrorIs(t, err, domain.ErrJobNotFound)

	err = store.Delete(ctx, "job_1")
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_List_OrderedByCreation(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_c", CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_b", CreatedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Job{ID: "job_a", CreatedAt: base}))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "job_a", jobs[0].ID)
	assert.Equal(t, "job_b", jobs[1].ID)
	assert.Equal(t, "job_c", jobs[2].ID)
}

func TestJobStore_List_Empty(t *testing.T) {
	store := NewJobStore()

	jobs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestJobStore_ConcurrentAccess(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := "job_" + string(rune('a'+n%26))
			_ = store.Save(ctx, &domain.Job{ID: id})
			_, _ = store.Get(ctx, id)
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 26)
}
