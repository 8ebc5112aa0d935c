package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// createdLayout is fixed width so created_at sorts as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

const jobColumns = `id, title, type, status, progress, stage, eta, created_at, finished_at,
	duration, owner, priority, scheduled_at, file_size, output_type, resolution,
	dependencies, tags, starred, estimated_cost, gpu_usage, memory_usage`

// jobStore implements driven.JobStore.
type jobStore struct {
	store *Store
}

var _ driven.JobStore = (*jobStore)(nil)

// Save creates or replaces a job.
func (s *jobStore) Save(ctx context.Context, job *domain.Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}

	deps, err := encodeStrings(job.Dependencies)
	if err != nil {
		return fmt.Errorf("marshaling dependencies: %w", err)
	}
	tags, err := encodeStrings(job.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			status = excluded.status,
			progress = excluded.progress,
			stage = excluded.stage,
			eta = excluded.eta,
			created_at = excluded.created_at,
			finished_at = excluded.finished_at,
			duration = excluded.duration,
			owner = excluded.owner,
			priority = excluded.priority,
			scheduled_at = excluded.scheduled_at,
			file_size = excluded.file_size,
			output_type = excluded.output_type,
			resolution = excluded.resolution,
			dependencies = excluded.dependencies,
			tags = excluded.tags,
			starred = excluded.starred,
			estimated_cost = excluded.estimated_cost,
			gpu_usage = excluded.gpu_usage,
			memory_usage = excluded.memory_usage
	`, job.ID, job.Title, string(job.Type), string(job.Status), job.Progress,
		job.Stage, job.ETA, job.CreatedAt.UTC().Format(createdLayout),
		nullTime(job.FinishedAt), job.Duration, job.Owner, string(job.Priority),
		nullTime(job.ScheduledAt), job.FileSize, job.OutputType, job.Resolution,
		deps, tags, intBool(job.Starred), job.EstimatedCost, job.GPUUsage, job.MemoryUsage)
	if err != nil {
		return fmt.Errorf("saving job: %w", err)
	}
	return nil
}

// Get retrieves a job by ID.
func (s *jobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job.
func (s *jobStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return nil
}

// List returns all jobs ordered by creation time, then ID.
func (s *jobStore) List(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var jobType, status, priority, createdAt, deps, tags string
	var finishedAt, scheduledAt sql.NullString
	var starred int

	err := row.Scan(&job.ID, &job.Title, &jobType, &status, &job.Progress, &job.Stage,
		&job.ETA, &createdAt, &finishedAt, &job.Duration, &job.Owner, &priority,
		&scheduledAt, &job.FileSize, &job.OutputType, &job.Resolution, &deps, &tags,
		&starred, &job.EstimatedCost, &job.GPUUsage, &job.MemoryUsage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	job.Type = domain.JobType(jobType)
	job.Status = domain.JobStatus(status)
	job.Priority = domain.Priority(priority)
	job.Starred = starred == 1
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		job.CreatedAt = t
	}
	job.FinishedAt = readTime(finishedAt)
	job.ScheduledAt = readTime(scheduledAt)

	if job.Dependencies, err = decodeStrings(deps); err != nil {
		return nil, fmt.Errorf("unmarshaling dependencies: %w", err)
	}
	if job.Tags, err = decodeStrings(tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}
	return &job, nil
}

// encodeStrings stores a string slice as JSON. Nil becomes "null" so it
// reads back as nil.
func encodeStrings(values []string) (string, error) {
	if values == nil {
		return jsonNull, nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" || raw == jsonNull {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
