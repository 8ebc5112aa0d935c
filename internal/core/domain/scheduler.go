package domain

import "time"

// TaskID names a built-in background task.
type TaskID string

const (
	// TaskPromoteScheduled queues scheduled jobs whose start time has passed.
	TaskPromoteScheduled TaskID = "promote-scheduled"

	// TaskPruneRuns trims the recorded run history of every task.
	TaskPruneRuns TaskID = "prune-runs"
)

// BuiltinTasks returns the tasks the scheduler knows how to run.
func BuiltinTasks() []TaskID {
	return []TaskID{TaskPromoteScheduled, TaskPruneRuns}
}

// Task is the persisted state of a recurring task.
type Task struct {
	ID      TaskID
	Every   time.Duration
	Enabled bool

	// Due is the next run time. Zero means run at the next tick.
	Due time.Time

	LastRun   time.Time
	LastOK    time.Time
	LastError string
}

// IsDue reports whether the task should run at now.
func (t *Task) IsDue(now time.Time) bool {
	return t.Enabled && !t.Due.After(now)
}

// Finish folds a run into the task and schedules the next one.
func (t *Task) Finish(run TaskRun) {
	t.LastRun = run.Started
	t.LastError = run.Err
	if run.OK() {
		t.LastOK = run.Finished
	}
	t.Due = run.Finished.Add(t.Every)
}

// TaskRun records one execution of a task.
type TaskRun struct {
	Task     TaskID
	Started  time.Time
	Finished time.Time

	// Err is empty when the run succeeded.
	Err string

	// Items counts what the run touched, such as jobs promoted.
	Items int
}

// OK reports whether the run succeeded.
func (r TaskRun) OK() bool {
	return r.Err == ""
}

// Took returns the run's wall time.
func (r TaskRun) Took() time.Duration {
	return r.Finished.Sub(r.Started)
}

// TaskSchedule is the configured cadence of one task.
type TaskSchedule struct {
	Enabled bool
	Every   time.Duration
}

// SchedulerConfig holds the [scheduler] settings.
type SchedulerConfig struct {
	// Enabled is the master switch.
	Enabled bool

	Tasks map[TaskID]TaskSchedule
}

// Schedule returns the cadence for id, or a disabled zero value.
func (c SchedulerConfig) Schedule(id TaskID) TaskSchedule {
	return c.Tasks[id]
}

// DefaultSchedulerConfig promotes every minute and prunes hourly.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		Tasks: map[TaskID]TaskSchedule{
			TaskPromoteScheduled: {Enabled: true, Every: time.Minute},
			TaskPruneRuns:        {Enabled: true, Every: time.Hour},
		},
	}
}
