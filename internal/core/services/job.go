package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

// Ensure JobService implements the interface.
var _ driving.JobService = (*JobService)(nil)

// JobService manages narration jobs.
type JobService struct {
	store    driven.JobStore
	manifest driven.JobManifestReader
	settings driving.SettingsService
	now      func() time.Time
}

// NewJobService creates a job service. The manifest reader and settings
// service may be nil; without settings, import uses the defaults.
func NewJobService(
	store driven.JobStore,
	manifest driven.JobManifestReader,
	settings driving.SettingsService,
) *JobService {
	return &JobService{
		store:    store,
		manifest: manifest,
		settings: settings,
		now:      time.Now,
	}
}

// List returns all jobs, oldest first.
func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Filter returns the jobs matching every active filter.
func (s *JobService) Filter(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterJobs(jobs, filter), nil
}

// Get retrieves a job by ID.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// SetStatus moves a job to a new status. Jobs entering a terminal status
// get a finish time if they have none.
func (s *JobService) SetStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	job.Status = status
	if domain.TabHistory.Contains(status) && job.FinishedAt.IsZero() {
		job.FinishedAt = s.now().UTC()
	}
	if status == domain.JobCompleted {
		job.Progress = 100
	}

	if err := s.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job %s: %w", id, err)
	}
	logger.Debug("job %s status=%s", id, status)
	return job, nil
}

// ToggleStar flips a job's starred flag.
func (s *JobService) ToggleStar(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Starred = !job.Starred
	if err := s.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job %s: %w", id, err)
	}
	return job, nil
}

// Import creates a queued manual job from a text file.
func (s *JobService) Import(ctx context.Context, path string) (*domain.Job, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	jobSettings := s.jobSettings()
	ext := strings.ToLower(filepath.Ext(path))
	if !hasExtension(jobSettings.Extensions, ext) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFile, path)
	}

	job := &domain.Job{
		ID:        newJobID(),
		Title:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Type:      domain.JobManual,
		Status:    domain.JobQueued,
		Stage:     "Queued",
		CreatedAt: s.now().UTC(),
		Owner:     jobSettings.Owner,
		Priority:  domain.PriorityNormal,
		FileSize:  humanize.Bytes(uint64(info.Size())),
		Tags:      []string{strings.TrimPrefix(ext, ".")},
	}

	if err := s.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	logger.Info("imported %s as %s", path, job.ID)
	return job, nil
}

// ImportManifest creates or updates jobs from a manifest. Missing IDs,
// statuses, types and creation times are filled in.
func (s *JobService) ImportManifest(ctx context.Context, r io.Reader) ([]domain.Job, error) {
	if s.store == nil || s.manifest == nil {
		return nil, domain.ErrNotImplemented
	}

	jobs, err := s.manifest.Read(r)
	if err != nil {
		return nil, err
	}

	owner := s.jobSettings().Owner
	for i := range jobs {
		if err := s.prepareManifestJob(&jobs[i], owner); err != nil {
			return nil, fmt.Errorf("manifest job %d: %w", i+1, err)
		}
	}

	for i := range jobs {
		if err := s.store.Save(ctx, &jobs[i]); err != nil {
			return nil, fmt.Errorf("save job %s: %w", jobs[i].ID, err)
		}
	}
	return jobs, nil
}

func (s *JobService) prepareManifestJob(job *domain.Job, owner string) error {
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if job.ID == "" {
		job.ID = newJobID()
	}
	if job.Status == "" {
		job.Status = domain.JobQueued
	} else if status, err := domain.ParseJobStatus(string(job.Status)); err != nil {
		return err
	} else {
		job.Status = status
	}
	if job.Type == "" {
		job.Type = domain.JobManual
	} else if !job.Type.IsValid() {
		return fmt.Errorf("%w: unknown job type %q", domain.ErrInvalidInput, job.Type)
	}
	if job.Priority != "" && !job.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, job.Priority)
	}
	if job.Owner == "" {
		job.Owner = owner
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = s.now().UTC()
	}
	return nil
}

// Seed loads the sample jobs when the store is empty.
func (s *JobService) Seed(ctx context.Context) (int, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(jobs) > 0 {
		return 0, nil
	}

	samples := domain.SampleJobs()
	for i := range samples {
		if err := s.store.Save(ctx, &samples[i]); err != nil {
			return i, fmt.Errorf("seed job %s: %w", samples[i].ID, err)
		}
	}
	return len(samples), nil
}

// PromoteScheduled queues scheduled jobs whose time has come.
func (s *JobService) PromoteScheduled(ctx context.Context, now time.Time) (int, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	promoted := 0
	var errs []error
	for i := range jobs {
		job := &jobs[i]
		if job.Status != domain.JobScheduled || job.ScheduledAt.IsZero() || job.ScheduledAt.After(now) {
			continue
		}
		job.Status = domain.JobQueued
		if err := s.store.Save(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("promote %s: %w", job.ID, err))
			continue
		}
		promoted++
	}
	return promoted, errors.Join(errs...)
}

// Tabs groups jobs by dashboard tab.
func (s *JobService) Tabs(jobs []domain.Job) domain.JobsByTab {
	return TabJobs(jobs)
}

func (s *JobService) jobSettings() domain.JobSettings {
	defaults := domain.DefaultAppSettings().Jobs
	if s.settings == nil {
		return defaults
	}
	settings, err := s.settings.Get()
	if err != nil {
		return defaults
	}
	jobs := settings.Jobs
	if len(jobs.Extensions) == 0 {
		jobs.Extensions = defaults.Extensions
	}
	if jobs.Owner == "" {
		jobs.Owner = defaults.Owner
	}
	return jobs
}

func hasExtension(allowed []string, ext string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

func newJobID() string {
	return "job_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
