package services

import "github.com/custodia-labs/narrator-cli/internal/core/domain"

// FilterJobs returns the jobs matching every active filter, in input order.
// The result is never nil.
func FilterJobs(jobs []domain.Job, filter domain.JobFilter) []domain.Job {
	matched := make([]domain.Job, 0, len(jobs))
	for i := range jobs {
		if filter.Matches(&jobs[i]) {
			matched = append(matched, jobs[i])
		}
	}
	return matched
}

// TabJobs groups jobs by dashboard tab, keeping input order within each tab.
func TabJobs(jobs []domain.Job) domain.JobsByTab {
	tabs := domain.JobsByTab{
		Running: []domain.Job{},
		Queued:  []domain.Job{},
		History: []domain.Job{},
	}
	for i := range jobs {
		switch {
		case domain.TabRunning.Contains(jobs[i].Status):
			tabs.Running = append(tabs.Running, jobs[i])
		case domain.TabQueued.Contains(jobs[i].Status):
			tabs.Queued = append(tabs.Queued, jobs[i])
		case domain.TabHistory.Contains(jobs[i].Status):
			tabs.History = append(tabs.History, jobs[i])
		}
	}
	return tabs
}
