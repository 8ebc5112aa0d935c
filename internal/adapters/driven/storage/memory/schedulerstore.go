package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

var _ driven.SchedulerStore = (*SchedulerStore)(nil)

// SchedulerStore keeps task state and runs in memory for demo mode.
type SchedulerStore struct {
	mu    sync.RWMutex
	tasks map[domain.TaskID]domain.Task
	runs  []domain.TaskRun
}

// NewSchedulerStore creates an empty scheduler store.
func NewSchedulerStore() *SchedulerStore {
	return &SchedulerStore{tasks: make(map[domain.TaskID]domain.Task)}
}

// Task returns the state for id.
func (s *SchedulerStore) Task(_ context.Context, id domain.TaskID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return &task, nil
}

// Tasks returns every task ordered by ID.
func (s *SchedulerStore) Tasks(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// PutTask inserts or replaces a task.
func (s *SchedulerStore) PutTask(_ context.Context, task domain.Task) error {
	if task.ID == "" {
		return fmt.Errorf("%w: task id is required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

// DeleteTask removes a task.
func (s *SchedulerStore) DeleteTask(_ context.Context, id domain.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

// AppendRun records a run.
func (s *SchedulerStore) AppendRun(_ context.Context, run domain.TaskRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// Runs returns up to limit runs of id, newest first.
func (s *SchedulerStore) Runs(_ context.Context, id domain.TaskID, limit int) ([]domain.TaskRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var runs []domain.TaskRun
	for i := len(s.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		if s.runs[i].Task == id {
			runs = append(runs, s.runs[i])
		}
	}
	return runs, nil
}

// PruneRuns keeps the newest keep runs per task.
func (s *SchedulerStore) PruneRuns(_ context.Context, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[domain.TaskID]int)
	kept := make([]domain.TaskRun, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		run := s.runs[i]
		if seen[run.Task] < keep {
			seen[run.Task]++
			kept = append(kept, run)
		}
	}
	removed := len(s.runs) - len(kept)
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	s.runs = kept
	return removed, nil
}
