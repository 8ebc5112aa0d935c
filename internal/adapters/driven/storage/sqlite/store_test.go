package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := openTestStore(t)

	assert.Equal(t, dbFile, filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	require.NoError(t, err)

	version, err := store.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.JobStore().Save(context.Background(), &domain.Job{ID: "job_1", Title: "Kept"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	job, err := reopened.JobStore().Get(context.Background(), "job_1")
	require.NoError(t, err)
	assert.Equal(t, "Kept", job.Title)
}

func TestStore_Migrate_AppliesInOrder(t *testing.T) {
	store := openTestStore(t)

	fsys := fstest.MapFS{
		"004_fourth.up.sql":  {Data: []byte("CREATE TABLE fourth (id INTEGER);")},
		"003_third.up.sql":   {Data: []byte("CREATE TABLE third (id INTEGER);")},
		"003_third.down.sql": {Data: []byte("DROP TABLE third;")},
		"001_jobs.up.sql":    {Data: []byte("NOT SQL;")},
		"README.md":          {Data: []byte("not a migration")},
	}
	require.NoError(t, store.migrate(fsys))

	version, err := store.Version()
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	_, err = store.db.Exec("INSERT INTO third (id) VALUES (1)")
	require.NoError(t, err)
	_, err = store.db.Exec("INSERT INTO fourth (id) VALUES (1)")
	require.NoError(t, err)
}

func TestStore_Migrate_FailureRollsBack(t *testing.T) {
	store := openTestStore(t)

	fsys := fstest.MapFS{
		"003_broken.up.sql": {Data: []byte("CREATE TABLE broken (id INTEGER); NOT SQL;")},
	}
	require.Error(t, store.migrate(fsys))

	version, err := store.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestUpMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"010_tenth.up.sql":    {Data: []byte("SELECT 1;")},
		"002_second.up.sql":   {Data: []byte("SELECT 1;")},
		"002_second.down.sql": {Data: []byte("SELECT 1;")},
		"latest.up.sql":       {Data: []byte("SELECT 1;")},
		"x1_bad.up.sql":       {Data: []byte("SELECT 1;")},
	}

	got, err := upMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []migration{
		{version: 2, name: "002_second.up.sql"},
		{version: 10, name: "010_tenth.up.sql"},
	}, got)

	embedded, err := upMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, embedded)
	assert.Equal(t, 1, embedded[0].version)
}

func fullJob() *domain.Job {
	created := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	return &domain.Job{
		ID:            "job_full",
		Title:         "Gutenberg: Alice in Wonderland",
		Type:          domain.JobManual,
		Status:        domain.JobCompleted,
		Progress:      100,
		Stage:         "Done",
		ETA:           "0 min",
		CreatedAt:     created,
		FinishedAt:    created.Add(2 * time.Hour),
		Duration:      "2h 0m",
		Owner:         "Alice Johnson",
		Priority:      domain.PriorityHigh,
		ScheduledAt:   created.Add(-time.Hour),
		FileSize:      "2.4 MB",
		OutputType:    "MP3",
		Resolution:    "320kbps",
		Dependencies:  []string{"job_000"},
		Tags:          []string{"Literature", "Long-form"},
		Starred:       true,
		EstimatedCost: "$2.45",
		GPUUsage:      78,
		MemoryUsage:   85,
	}
}

func TestJobStore_SaveAndGet_AllFields(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()

	want := fullJob()
	require.NoError(t, jobs.Save(ctx, want))

	got, err := jobs.Get(ctx, want.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestJobStore_Save_NilSlicesStayNil(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()

	require.NoError(t, jobs.Save(ctx, &domain.Job{ID: "job_min", Title: "Minimal"}))

	got, err := jobs.Get(ctx, "job_min")
	require.NoError(t, err)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Dependencies)
	assert.True(t, got.FinishedAt.IsZero())
	assert.True(t, got.ScheduledAt.IsZero())
	assert.True(t, got.CreatedAt.IsZero())
}

func TestJobStore_Save_Upsert(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()

	job := fullJob()
	require.NoError(t, jobs.Save(ctx, job))

	job.Status = domain.JobFailed
	job.Starred = false
	job.Tags = []string{"Retry"}
	require.NoError(t, jobs.Save(ctx, job))

	got, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, got.Status)
	assert.False(t, got.Starred)
	assert.Equal(t, []string{"Retry"}, got.Tags)

	all, err := jobs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestJobStore_Save_RequiresID(t *testing.T) {
	store := openTestStore(t)

	err := store.JobStore().Save(context.Background(), &domain.Job{Title: "No ID"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobStore_Get_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.JobStore().Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_Delete(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()
	require.NoError(t, jobs.Save(ctx, fullJob()))

	require.NoError(t, jobs.Delete(ctx, "job_full"))
	_, err := jobs.Get(ctx, "job_full")
	require.ErrorIs(t, err, domain.ErrJobNotFound)

	require.ErrorIs(t, jobs.Delete(ctx, "job_full"), domain.ErrJobNotFound)
}

func TestJobStore_List_OrderedByCreation(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()

	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, jobs.Save(ctx, &domain.Job{ID: "job_late", CreatedAt: base.Add(500 * time.Millisecond)}))
	require.NoError(t, jobs.Save(ctx, &domain.Job{ID: "job_b", CreatedAt: base}))
	require.NoError(t, jobs.Save(ctx, &domain.Job{ID: "job_a", CreatedAt: base}))
	require.NoError(t, jobs.Save(ctx, &domain.Job{ID: "job_later", CreatedAt: base.Add(time.Second)}))

	all, err := jobs.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, j := range all {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"job_a", "job_b", "job_late", "job_later"}, ids)
}

func TestJobStore_List_Empty(t *testing.T) {
	store := openTestStore(t)

	all, err := store.JobStore().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestJobStore_SampleJobsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	ctx := context.Background()
	jobs := store.JobStore()

	samples := domain.SampleJobs()
	for i := range samples {
		require.NoError(t, jobs.Save(ctx, &samples[i]))
	}

	all, err := jobs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(samples))
}

func TestEncodeDecodeStrings(t *testing.T) {
	raw, err := encodeStrings(nil)
	require.NoError(t, err)
	assert.Equal(t, jsonNull, raw)

	raw, err = encodeStrings([]string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	values, err := decodeStrings(`["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)

	values, err = decodeStrings("")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = decodeStrings("{not json")
	assert.Error(t, err)
}
