// Command narrator prepares text for narration and tracks narration jobs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/manifest"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/services"
	"github.com/custodia-labs/narrator-cli/internal/logger"
	"github.com/custodia-labs/narrator-cli/internal/normalisers"
	"github.com/custodia-labs/narrator-cli/internal/normalisers/cleanup"
	"github.com/custodia-labs/narrator-cli/internal/postprocessors"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitialiser(initServices)

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// initServices wires the file config store and the SQLite database into
// the core services. --demo swaps every store for its memory version.
func initServices(opts cli.Options) (*cli.Services, error) {
	if opts.Demo {
		return buildServices(memory.NewConfigStore(), memory.NewJobStore(), memory.NewSchedulerStore(), nil), nil
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return buildServices(configStore, store.JobStore(), store.SchedulerStore(), store.Close), nil
}

func buildServices(
	configStore driven.ConfigStore,
	jobStore driven.JobStore,
	schedulerStore driven.SchedulerStore,
	closeFn func() error,
) *cli.Services {
	settingsService := services.NewSettingsService(configStore)
	jobService := services.NewJobService(jobStore, manifest.NewReader(), settingsService)
	if n, err := jobService.Seed(context.Background()); err != nil {
		logger.Warn("seed sample jobs: %v", err)
	} else if n > 0 {
		logger.Debug("seeded %d sample jobs", n)
	}

	schedulerConfig := settingsService.GetSchedulerConfig()

	return &cli.Services{
		Cleaning:        services.NewCleaningService(configStore, cleanup.New()),
		Segment:         services.NewSegmentService(postprocessors.NewSegmenter(nil), settingsService),
		Jobs:            jobService,
		Settings:        settingsService,
		Normalisers:     normalisers.NewDefaultRegistry(),
		Scheduler:       services.NewScheduler(schedulerConfig, schedulerStore, jobService),
		SchedulerConfig: schedulerConfig,
		Close:           closeFn,
	}
}
