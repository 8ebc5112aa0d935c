package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, TaskSchedule{Enabled: true, Every: time.Minute}, config.Schedule(TaskPromoteScheduled))
	assert.Equal(t, TaskSchedule{Enabled: true, Every: time.Hour}, config.Schedule(TaskPruneRuns))
	assert.Len(t, config.Tasks, len(BuiltinTasks()))
}

func TestSchedulerConfig_Schedule_Unknown(t *testing.T) {
	assert.Zero(t, DefaultSchedulerConfig().Schedule("rebuild-index"))
	assert.Zero(t, SchedulerConfig{}.Schedule(TaskPromoteScheduled))
}

func TestTask_IsDue(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"never run", Task{Enabled: true}, true},
		{"due now", Task{Enabled: true, Due: now}, true},
		{"overdue", Task{Enabled: true, Due: now.Add(-time.Hour)}, true},
		{"later", Task{Enabled: true, Due: now.Add(time.Second)}, false},
		{"disabled", Task{Due: now.Add(-time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsDue(now))
		})
	}
}

func TestTask_Finish(t *testing.T) {
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	task := Task{ID: TaskPromoteScheduled, Every: time.Minute, Enabled: true}

	ok := TaskRun{Task: task.ID, Started: start, Finished: start.Add(2 * time.Second), Items: 3}
	task.Finish(ok)
	assert.Equal(t, start, task.LastRun)
	assert.Equal(t, ok.Finished, task.LastOK)
	assert.Equal(t, ok.Finished.Add(time.Minute), task.Due)
	assert.Empty(t, task.LastError)
	assert.Equal(t, 2*time.Second, ok.Took())

	failed := TaskRun{Task: task.ID, Started: start.Add(time.Hour), Finished: start.Add(time.Hour), Err: "store offline"}
	task.Finish(failed)
	assert.False(t, failed.OK())
	assert.Equal(t, "store offline", task.LastError)
	assert.Equal(t, ok.Finished, task.LastOK, "last success kept")
	assert.Equal(t, failed.Finished.Add(time.Minute), task.Due)
}
