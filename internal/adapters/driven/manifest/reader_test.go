package manifest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

func TestReader_Read(t *testing.T) {
	in := `
jobs:
  - title: Chapter One
    priority: High
    status: scheduled
    scheduled_at: 2026-01-10T09:00:00Z
    tags: [fiction, draft]
  - id: job_custom
    title: Release Notes
    type: Auto
    owner: Dana
`
	jobs, err := NewReader().Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Chapter One", jobs[0].Title)
	assert.Equal(t, domain.PriorityHigh, jobs[0].Priority)
	// Status is normalised by the job service, not the reader.
	assert.Equal(t, domain.JobStatus("scheduled"), jobs[0].Status)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), jobs[0].ScheduledAt.UTC())
	assert.Equal(t, []string{"fiction", "draft"}, jobs[0].Tags)
	assert.Empty(t, jobs[0].ID)

	assert.Equal(t, "job_custom", jobs[1].ID)
	assert.Equal(t, domain.JobAuto, jobs[1].Type)
	assert.Equal(t, "Dana", jobs[1].Owner)
}

func TestReader_Read_Empty(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty document", ""},
		{"null jobs", "jobs:\n"},
		{"empty list", "jobs: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := NewReader().Read(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.NotNil(t, jobs)
			assert.Empty(t, jobs)
		})
	}
}

func TestReader_Read_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown field", "jobs:\n  - title: x\n    colour: red\n"},
		{"wrong shape", "jobs: nope\n"},
		{"bad time", "jobs:\n  - title: x\n    created_at: yesterday\n"},
		{"malformed", "jobs: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader().Read(strings.NewReader(tt.in))
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := NewReader().Read(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
