package domain

import "time"

// sampleTime parses the dashboard's "2006-01-02 15:04" timestamps as UTC.
func sampleTime(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleJobs returns the dashboard's starter job list.
// It seeds an empty job store and backs tests.
func SampleJobs() []Job {
	return []Job{
		{
			ID:            "job_001",
			Title:         "Gutenberg: Alice in Wonderland",
			Type:          JobManual,
			Status:        JobRunning,
			Progress:      62,
			Stage:         "Audio mixing and synchronization",
			ETA:           "18 min",
			CreatedAt:     sampleTime("2024-01-15 14:30"),
			Owner:         "Alice Johnson",
			Priority:      PriorityHigh,
			Tags:          []string{"Literature", "Long-form"},
			Starred:       true,
			EstimatedCost: "$2.45",
			GPUUsage:      78,
			MemoryUsage:   85,
		},
		{
			ID:            "job_002",
			Title:         "Project Gutenberg: Pride and Prejudice",
			Type:          JobAuto,
			Status:        JobProcessing,
			Progress:      34,
			Stage:         "Neural voice synthesis (Chapter 12/23)",
			ETA:           "45 min",
			CreatedAt:     sampleTime("2024-01-15 13:15"),
			Owner:         "Bob Smith",
			Priority:      PriorityNormal,
			Tags:          []string{"Classic", "Romance"},
			EstimatedCost: "$3.20",
			GPUUsage:      92,
			MemoryUsage:   67,
		},
		{
			ID:            "job_003",
			Title:         "Daily News Summary",
			Type:          JobAuto,
			Status:        JobScheduled,
			ScheduledAt:   sampleTime("2024-01-15 22:00"),
			Priority:      PriorityHigh,
			CreatedAt:     sampleTime("2024-01-15 12:00"),
			Owner:         "System",
			Tags:          []string{"News", "Daily"},
			EstimatedCost: "$0.85",
		},
		{
			ID:         "job_004",
			Title:      "Educational: The Great Gatsby",
			Type:       JobManual,
			Status:     JobCompleted,
			CreatedAt:  sampleTime("2024-01-15 09:30"),
			FinishedAt: sampleTime("2024-01-15 11:45"),
			Duration:   "2h 15m",
			FileSize:   "145 MB",
			OutputType: "MP4",
			Resolution: "1080p",
			Owner:      "Carol Davis",
			Priority:   PriorityNormal,
			Tags:       []string{"Education", "Literature"},
		},
		{
			ID:         "job_005",
			Title:      "Podcast: Tech Weekly #34",
			Type:       JobManual,
			Status:     JobFailed,
			CreatedAt:  sampleTime("2024-01-15 08:00"),
			FinishedAt: sampleTime("2024-01-15 08:23"),
			Duration:   "23m",
			Owner:      "Dave Wilson",
			Priority:   PriorityNormal,
			Tags:       []string{"Podcast", "Technology"},
		},
		{
			ID:            "job_006",
			Title:         "Corporate Training Module 3",
			Type:          JobAuto,
			Status:        JobQueued,
			Priority:      PriorityLow,
			CreatedAt:     sampleTime("2024-01-15 16:22"),
			Owner:         "Training Bot",
			Tags:          []string{"Corporate", "Training"},
			EstimatedCost: "$1.65",
		},
	}
}
