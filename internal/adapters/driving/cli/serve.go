package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the JSON API for cleaning, segmentation and jobs.

Endpoints:
  POST /api/v1/clean              clean text
  POST /api/v1/segment            split text into segments
  GET  /api/v1/rules              list cleaning rules
  POST /api/v1/rules/{id}/toggle  toggle a rule
  POST /api/v1/rules/reset        restore default rules
  GET  /api/v1/jobs               list jobs (query, status, type, priority, tab)
  GET  /api/v1/jobs/{id}          show a job
  PUT  /api/v1/jobs/{id}/status   change a job's status
  POST /api/v1/jobs/{id}/star     star or unstar a job
  GET  /health                    liveness check

The scheduler runs while the server is up. With --watch, files dropped
into jobs.watch_dir are imported as jobs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from server.port)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "import files dropped into jobs.watch_dir")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := domain.DefaultAppSettings()
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cfg = *settings
		}
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Cleaning: cleaningService,
		Segment:  segmentService,
		Jobs:     jobService,
	}, cfg.Server, logger.L().Named("http"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopScheduler := startScheduler(ctx)
	defer stopScheduler()

	if serveWatch {
		if cfg.Jobs.WatchDir == "" {
			return fmt.Errorf("%w: --watch needs jobs.watch_dir", domain.ErrInvalidInput)
		}
		w := watcher.New(cfg.Jobs.WatchDir, jobService,
			watcher.WithExtensions(cfg.Jobs.Extensions),
			watcher.WithLogger(logger.L().Named("watcher")),
		)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		cmd.Printf("Watching %s\n", w.Dir())
	}

	cmd.Printf("Narrator API listening on http://%s\n", server.Addr())
	return server.Run(ctx)
}

// startScheduler runs the scheduler in the background when enabled and
// returns a function that stops it.
func startScheduler(ctx context.Context) func() {
	if scheduler == nil || !schedulerConfig.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := scheduler.Start(ctx); err != nil {
			logger.L().Warn("scheduler stopped", zap.Error(err))
		}
	}()

	return func() {
		if err := scheduler.Stop(); err != nil {
			logger.L().Warn("scheduler stop", zap.Error(err))
		}
		cancel()
		<-done
	}
}
