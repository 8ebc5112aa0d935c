package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

var _ driving.Scheduler = (*Scheduler)(nil)

// runsKept is how many runs per task survive the prune task.
const runsKept = 100

// taskFunc runs one task and reports how many items it touched.
type taskFunc func(ctx context.Context, now time.Time) (int, error)

// Scheduler runs the built-in background tasks on a fixed tick.
// Due tasks run one after another on the scheduler goroutine.
type Scheduler struct {
	config domain.SchedulerConfig
	store  driven.SchedulerStore
	tasks  map[domain.TaskID]taskFunc
	tick   time.Duration
	now    func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a scheduler. A nil store leaves it idle.
func NewScheduler(config domain.SchedulerConfig, store driven.SchedulerStore, jobs driving.JobService) *Scheduler {
	s := &Scheduler{
		config: config,
		store:  store,
		tick:   time.Minute,
		now:    time.Now,
	}
	s.tasks = map[domain.TaskID]taskFunc{
		domain.TaskPromoteScheduled: func(ctx context.Context, now time.Time) (int, error) {
			if jobs == nil {
				return 0, nil
			}
			return jobs.PromoteScheduled(ctx, now)
		},
		domain.TaskPruneRuns: func(ctx context.Context, _ time.Time) (int, error) {
			return store.PruneRuns(ctx, runsKept)
		},
	}
	return s
}

// Start runs due tasks until ctx is cancelled or Stop is called.
// A second call while running returns at once.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return nil
	}
	stop, done := make(chan struct{}), make(chan struct{})
	s.stop, s.done = stop, done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.done == done {
			s.stop, s.done = nil, nil
		}
		s.mu.Unlock()
		close(done)
	}()

	if !s.config.Enabled || s.store == nil {
		s.log().Debug("scheduler idle", zap.Bool("enabled", s.config.Enabled))
		select {
		case <-ctx.Done():
		case <-stop:
		}
		return nil
	}

	if err := s.register(ctx); err != nil {
		s.log().Warn("registering tasks", zap.Error(err))
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		s.runDue(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop ends the loop and waits for the task in flight.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

// register stores every configured task, keeping the run state of tasks
// seen before. Tasks switched off in config are removed.
func (s *Scheduler) register(ctx context.Context) error {
	var errs []error
	for _, id := range domain.BuiltinTasks() {
		schedule := s.config.Schedule(id)
		if !schedule.Enabled || schedule.Every <= 0 {
			errs = append(errs, s.store.DeleteTask(ctx, id))
			continue
		}

		task, err := s.store.Task(ctx, id)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			task = &domain.Task{ID: id, Due: s.now().Add(schedule.Every)}
		case err != nil:
			errs = append(errs, err)
			continue
		case task.Every != schedule.Every:
			task.Due = s.now().Add(schedule.Every)
		}
		task.Every = schedule.Every
		task.Enabled = true
		errs = append(errs, s.store.PutTask(ctx, *task))
	}
	return errors.Join(errs...)
}

// runDue runs every stored task whose time has come.
func (s *Scheduler) runDue(ctx context.Context) {
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		s.log().Warn("listing tasks", zap.Error(err))
		return
	}

	now := s.now()
	for i := range tasks {
		if ctx.Err() != nil {
			return
		}
		if tasks[i].IsDue(now) {
			s.run(ctx, &tasks[i])
		}
	}
}

// run executes task, then saves its new state and the run record.
func (s *Scheduler) run(ctx context.Context, task *domain.Task) {
	fn, ok := s.tasks[task.ID]
	if !ok {
		s.log().Warn("unknown task", zap.String("task", string(task.ID)))
		return
	}

	run := domain.TaskRun{Task: task.ID, Started: s.now()}
	items, err := fn(ctx, run.Started)
	run.Finished = s.now()
	run.Items = items
	if err != nil {
		run.Err = err.Error()
	}
	task.Finish(run)

	if err := s.store.PutTask(ctx, *task); err != nil {
		s.log().Warn("saving task", zap.String("task", string(task.ID)), zap.Error(err))
	}
	if err := s.store.AppendRun(ctx, run); err != nil {
		s.log().Warn("recording run", zap.String("task", string(task.ID)), zap.Error(err))
	}

	s.log().Debug("task ran",
		zap.String("task", string(task.ID)),
		zap.Bool("ok", run.OK()),
		zap.Int("items", run.Items),
		zap.Duration("took", run.Took()))
}

func (s *Scheduler) log() *zap.Logger {
	return logger.L().Named("scheduler")
}
