package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

const taskColumns = `id, every_seconds, enabled, due_at, last_run_at, last_ok_at, last_error`

type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

func (s *schedulerStore) Task(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, string(id))
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return task, err
}

func (s *schedulerStore) Tasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (s *schedulerStore) PutTask(ctx context.Context, task domain.Task) error {
	if task.ID == "" {
		return fmt.Errorf("%w: task id is required", domain.ErrInvalidInput)
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(task.ID), int64(task.Every/time.Second), intBool(task.Enabled),
		nullTime(task.Due), nullTime(task.LastRun), nullTime(task.LastOK), nullText(task.LastError))
	if err != nil {
		return fmt.Errorf("saving task %s: %w", task.ID, err)
	}
	return nil
}

func (s *schedulerStore) DeleteTask(ctx context.Context, id domain.TaskID) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

func (s *schedulerStore) AppendRun(ctx context.Context, run domain.TaskRun) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO task_runs (task_id, started_at, finished_at, error, items)
		VALUES (?, ?, ?, ?, ?)`,
		string(run.Task), run.Started.UTC().Format(time.RFC3339), run.Finished.UTC().Format(time.RFC3339),
		nullText(run.Err), run.Items)
	if err != nil {
		return fmt.Errorf("recording %s run: %w", run.Task, err)
	}
	return nil
}

// Runs orders by insertion sequence, so runs started in the same second
// keep their order.
func (s *schedulerStore) Runs(ctx context.Context, id domain.TaskID, limit int) ([]domain.TaskRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT task_id, started_at, finished_at, error, items
		FROM task_runs WHERE task_id = ?
		ORDER BY seq DESC LIMIT ?`, string(id), limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s runs: %w", id, err)
	}
	defer rows.Close()

	runs := []domain.TaskRun{}
	for rows.Next() {
		var run domain.TaskRun
		var task string
		var started, finished, runErr sql.NullString
		if err := rows.Scan(&task, &started, &finished, &runErr, &run.Items); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Task = domain.TaskID(task)
		run.Started = readTime(started)
		run.Finished = readTime(finished)
		run.Err = runErr.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (s *schedulerStore) PruneRuns(ctx context.Context, keep int) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		DELETE FROM task_runs WHERE seq IN (
			SELECT seq FROM (
				SELECT seq, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY seq DESC) AS n
				FROM task_runs
			) WHERE n > ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return int(n), nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var id string
	var every int64
	var enabled int
	var due, lastRun, lastOK, lastErr sql.NullString

	if err := row.Scan(&id, &every, &enabled, &due, &lastRun, &lastOK, &lastErr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	task.ID = domain.TaskID(id)
	task.Every = time.Duration(every) * time.Second
	task.Enabled = enabled == 1
	task.Due = readTime(due)
	task.LastRun = readTime(lastRun)
	task.LastOK = readTime(lastOK)
	task.LastError = lastErr.String
	return &task, nil
}
