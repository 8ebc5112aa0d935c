// Package cli provides the cobra command tree for the narrator binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Options carries the persistent flags to the service initialiser.
type Options struct {
	// DataDir holds the SQLite database. Empty means ~/.narrator/data.
	DataDir string

	// ConfigDir holds config.toml. Empty means ~/.narrator.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool

	// Demo keeps settings and jobs in memory, seeded with sample jobs.
	Demo bool
}

// Services are the driving ports the commands call.
type Services struct {
	Cleaning    driving.CleaningService
	Segment     driving.SegmentService
	Jobs        driving.JobService
	Settings    driving.SettingsService
	Normalisers driven.NormaliserRegistry
	Scheduler   driving.Scheduler

	// SchedulerConfig controls whether long-running commands start the scheduler.
	SchedulerConfig domain.SchedulerConfig

	// Close releases storage. May be nil.
	Close func() error
}

// Initialiser builds the services once flags are parsed.
type Initialiser func(opts Options) (*Services, error)

var (
	cleaningService    driving.CleaningService
	segmentService     driving.SegmentService
	jobService         driving.JobService
	settingsService    driving.SettingsService
	normaliserRegistry driven.NormaliserRegistry
	scheduler          driving.Scheduler
	schedulerConfig    domain.SchedulerConfig
	closeServices      func() error

	initialiser Initialiser
	rootOpts    Options
)

var rootCmd = &cobra.Command{
	Use:   "narrator",
	Short: "Prepare text for narration",
	Long: `Narrator cleans text for narration, splits it into segments and
tracks narration jobs on a dashboard.

Run 'narrator tui' for the interactive dashboard or 'narrator serve'
for the HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging to stderr")
	flags.StringVar(&rootOpts.DataDir, "data-dir", "", "directory for the job database (default ~/.narrator/data)")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "directory for config.toml (default ~/.narrator)")
	flags.BoolVar(&rootOpts.Demo, "demo", false, "run against in-memory storage with sample jobs")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v == "" {
		v = "dev"
	}
	version = v
}

// SetInitialiser registers the function that builds services from flags.
func SetInitialiser(fn Initialiser) {
	initialiser = fn
}

// SetServices injects services directly, bypassing the initialiser.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	cleaningService = s.Cleaning
	segmentService = s.Segment
	jobService = s.Jobs
	settingsService = s.Settings
	normaliserRegistry = s.Normalisers
	scheduler = s.Scheduler
	schedulerConfig = s.SchedulerConfig
	closeServices = s.Close
}

// Execute runs the root command and releases storage afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardown(); err == nil {
		err = closeErr
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)
	if initialiser == nil || skipsServices(cmd) {
		return nil
	}

	services, err := initialiser(rootOpts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// skipsServices reports whether cmd runs without storage.
func skipsServices(cmd *cobra.Command) bool {
	return cmd == versionCmd || cmd.Name() == "help"
}

// errNotConfigured builds the error returned when a command's service is missing.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
