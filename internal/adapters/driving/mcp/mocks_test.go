package mcp

import (
	"context"
	"io"
	"time"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/core/services"
)

// mockCleaningService is a mock implementation of driving.CleaningService.
type mockCleaningService struct {
	rules   []domain.CleaningRule
	result  *domain.NormalisationResult
	lastReq domain.CleanRequest
	err     error
}

var _ driving.CleaningService = (*mockCleaningService)(nil)

func (m *mockCleaningService) ListRules(_ context.Context) ([]domain.CleaningRule, error) {
	return m.rules, m.err
}

func (m *mockCleaningService) ToggleRule(_ context.Context, _ domain.RuleID) (*domain.CleaningRule, error) {
	return nil, m.err
}

func (m *mockCleaningService) ResetRules(_ context.Context) ([]domain.CleaningRule, error) {
	return m.rules, m.err
}

func (m *mockCleaningService) Clean(_ context.Context, _ string) (*domain.NormalisationResult, error) {
	return m.result, m.err
}

func (m *mockCleaningService) CleanWith(_ context.Context, _ string, _ domain.RuleSet) (*domain.NormalisationResult, error) {
	return m.result, m.err
}

func (m *mockCleaningService) Cleanup(_ context.Context, _ string, _ []domain.CleanupTool) (*domain.NormalisationResult, error) {
	return m.result, m.err
}

func (m *mockCleaningService) Process(_ context.Context, req domain.CleanRequest) (*domain.NormalisationResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// mockSegmentService is a mock implementation of driving.SegmentService.
type mockSegmentService struct {
	segments []domain.Segment
	lastOpts domain.SegmentOptions
	err      error
}

var _ driving.SegmentService = (*mockSegmentService)(nil)

func (m *mockSegmentService) Segment(_ context.Context, _ string, opts domain.SegmentOptions) ([]domain.Segment, error) {
	m.lastOpts = opts
	return m.segments, m.err
}

func (m *mockSegmentService) DefaultOptions(_ context.Context) domain.SegmentOptions {
	return domain.DefaultSegmentOptions()
}

// mockJobService is a mock implementation of driving.JobService backed by a slice.
type mockJobService struct {
	jobs []domain.Job
	err  error
}

var _ driving.JobService = (*mockJobService)(nil)

func (m *mockJobService) List(_ context.Context) ([]domain.Job, error) {
	return m.jobs, m.err
}

func (m *mockJobService) Filter(_ context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return services.FilterJobs(m.jobs, filter), nil
}

func (m *mockJobService) Get(_ context.Context, id string) (*domain.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			job := m.jobs[i]
			return &job, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (m *mockJobService) SetStatus(_ context.Context, _ string, _ domain.JobStatus) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockJobService) ToggleStar(_ context.Context, _ string) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockJobService) Import(_ context.Context, _ string) (*domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockJobService) ImportManifest(_ context.Context, _ io.Reader) ([]domain.Job, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockJobService) Seed(_ context.Context) (int, error) {
	return 0, nil
}

func (m *mockJobService) PromoteScheduled(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (m *mockJobService) Tabs(jobs []domain.Job) domain.JobsByTab {
	return services.TabJobs(jobs)
}
