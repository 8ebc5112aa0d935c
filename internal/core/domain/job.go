package domain

import (
	"fmt"
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a narration job.
type JobStatus string

// Job statuses.
const (
	JobRunning    JobStatus = "Running"
	JobQueued     JobStatus = "Queued"
	JobCompleted  JobStatus = "Completed"
	JobFailed     JobStatus = "Failed"
	JobScheduled  JobStatus = "Scheduled"
	JobPaused     JobStatus = "Paused"
	JobProcessing JobStatus = "Processing"
)

// JobStatuses returns every status in dashboard order.
func JobStatuses() []JobStatus {
	return []JobStatus{JobRunning, JobQueued, JobCompleted, JobFailed, JobScheduled, JobPaused, JobProcessing}
}

// IsValid returns true if the status is recognised.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobRunning, JobQueued, JobCompleted, JobFailed, JobScheduled, JobPaused, JobProcessing:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s JobStatus) String() string {
	return string(s)
}

// ParseJobStatus matches a status case-insensitively.
func ParseJobStatus(s string) (JobStatus, error) {
	for _, status := range JobStatuses() {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// JobType distinguishes operator-driven jobs from automated ones.
type JobType string

// Job types.
const (
	JobManual JobType = "Manual"
	JobAuto   JobType = "Auto"
)

// IsValid returns true if the type is recognised.
func (t JobType) IsValid() bool {
	return t == JobManual || t == JobAuto
}

// String returns the string representation.
func (t JobType) String() string {
	return string(t)
}

// Priority orders jobs in the queue.
type Priority string

// Job priorities.
const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities returns every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// Job is a narration job as shown on the dashboard.
// Optional fields are zero when unset.
type Job struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Type          JobType   `json:"type" yaml:"type"`
	Status        JobStatus `json:"status" yaml:"status"`
	Progress      int       `json:"progress,omitempty" yaml:"progress,omitempty"`
	Stage         string    `json:"stage,omitempty" yaml:"stage,omitempty"`
	ETA           string    `json:"eta,omitempty" yaml:"eta,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	FinishedAt    time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Duration      string    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Owner         string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Priority      Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at,omitempty" yaml:"scheduled_at,omitempty"`
	FileSize      string    `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	OutputType    string    `json:"output_type,omitempty" yaml:"output_type,omitempty"`
	Resolution    string    `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Dependencies  []string  `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Tags          []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Starred       bool      `json:"starred,omitempty" yaml:"starred,omitempty"`
	EstimatedCost string    `json:"estimated_cost,omitempty" yaml:"estimated_cost,omitempty"`
	GPUUsage      int       `json:"gpu_usage,omitempty" yaml:"gpu_usage,omitempty"`
	MemoryUsage   int       `json:"memory_usage,omitempty" yaml:"memory_usage,omitempty"`
}

// FilterAll is the dropdown value that disables a filter.
const FilterAll = "All"

// JobFilter holds the dashboard search box and dropdowns.
// Empty or "All" dropdown values match every job.
type JobFilter struct {
	Query    string `json:"query,omitempty"`
	Status   string `json:"status,omitempty"`
	Type     string `json:"type,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// IsEmpty reports whether no filter is active.
func (f JobFilter) IsEmpty() bool {
	return f.Query == "" && isAll(f.Status) && isAll(f.Type) && isAll(f.Priority)
}

// Matches reports whether the job passes every active filter.
func (f JobFilter) Matches(job *Job) bool {
	return f.matchesQuery(job) &&
		(isAll(f.Status) || string(job.Status) == f.Status) &&
		(isAll(f.Type) || string(job.Type) == f.Type) &&
		(isAll(f.Priority) || string(job.Priority) == f.Priority)
}

func (f JobFilter) matchesQuery(job *Job) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	if strings.Contains(strings.ToLower(job.Title), q) ||
		strings.Contains(strings.ToLower(job.ID), q) ||
		strings.Contains(strings.ToLower(job.Owner), q) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

// JobTab is a dashboard tab grouping jobs by status.
type JobTab string

// Dashboard tabs.
const (
	TabRunning JobTab = "running"
	TabQueued  JobTab = "queued"
	TabHistory JobTab = "history"
)

// JobTabs returns the tabs in display order.
func JobTabs() []JobTab {
	return []JobTab{TabRunning, TabQueued, TabHistory}
}

// IsValid returns true if the tab is recognised.
func (t JobTab) IsValid() bool {
	return t == TabRunning || t == TabQueued || t == TabHistory
}

// String returns the string representation.
func (t JobTab) String() string {
	return string(t)
}

// Contains reports whether a job with the given status belongs on the tab.
func (t JobTab) Contains(status JobStatus) bool {
	switch t {
	case TabRunning:
		return status == JobRunning || status == JobProcessing || status == JobPaused
	case TabQueued:
		return status == JobQueued || status == JobScheduled
	case TabHistory:
		return status == JobCompleted || status == JobFailed
	default:
		return false
	}
}

// JobsByTab groups filtered jobs by dashboard tab.
type JobsByTab struct {
	Running []Job `json:"running"`
	Queued  []Job `json:"queued"`
	History []Job `json:"history"`
}

// Tab returns the jobs on a tab.
func (b *JobsByTab) Tab(tab JobTab) []Job {
	switch tab {
	case TabRunning:
		return b.Running
	case TabQueued:
		return b.Queued
	case TabHistory:
		return b.History
	default:
		return nil
	}
}
