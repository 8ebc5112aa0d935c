package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

var (
	jobsFilter domain.JobFilter
	jobsTab    string
	jobsJSON   bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage narration jobs",
	Long: `List, inspect and update the narration jobs shown on the dashboard.

Jobs are stored in the local database. Text and markdown files can be
imported as jobs, or dropped into the watch folder.`,
	RunE: runJobsList,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs matching the filters",
	Long: `Lists jobs matching every given filter.

--query matches title, ID, owner and tags case-insensitively. --status,
--type and --priority match exactly; "All" disables a filter. --tab limits
output to running, queued or history.`,
	RunE: runJobsList,
}

var jobsGetCmd = &cobra.Command{
	Use:   "get [job-id]",
	Short: "Show a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsGet,
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status [job-id] [status]",
	Short: "Change a job's status",
	Long: `Moves a job to a new status. Statuses are matched case-insensitively:
Running, Queued, Completed, Failed, Scheduled, Paused, Processing.`,
	Args: cobra.ExactArgs(2),
	RunE: runJobsStatus,
}

var jobsStarCmd = &cobra.Command{
	Use:   "star [job-id]",
	Short: "Star or unstar a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsStar,
}

var jobsImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import files or a YAML manifest as jobs",
	Long: `Creates a queued manual job for each text or markdown file.

Files ending in .yaml or .yml are read as job manifests:

  jobs:
    - title: Chapter One
      priority: High
      tags: [fiction]`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJobsImport,
}

var jobsWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import files dropped into a folder",
	Long: `Watches a folder and imports every text or markdown file written to it.

The folder defaults to the jobs.watch_dir setting. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJobsWatch,
}

func init() {
	for _, c := range []*cobra.Command{jobsCmd, jobsListCmd} {
		c.Flags().StringVarP(&jobsFilter.Query, "query", "q", "", "free-text filter")
		c.Flags().StringVar(&jobsFilter.Status, "status", "", "status filter")
		c.Flags().StringVar(&jobsFilter.Type, "type", "", "type filter (Manual, Auto)")
		c.Flags().StringVar(&jobsFilter.Priority, "priority", "", "priority filter (Low, Normal, High, Urgent)")
		c.Flags().StringVar(&jobsTab, "tab", "", "dashboard tab (running, queued, history)")
	}
	jobsCmd.PersistentFlags().BoolVar(&jobsJSON, "json", false, "output as JSON")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsGetCmd)
	jobsCmd.AddCommand(jobsStatusCmd)
	jobsCmd.AddCommand(jobsStarCmd)
	jobsCmd.AddCommand(jobsImportCmd)
	jobsCmd.AddCommand(jobsWatchCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	tab := domain.JobTab(jobsTab)
	if tab != "" && !tab.IsValid() {
		return fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, jobsTab)
	}

	jobs, err := jobService.Filter(cmd.Context(), jobsFilter)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	tabs := jobService.Tabs(jobs)
	if tab != "" {
		jobs = tabs.Tab(tab)
	}

	if jobsJSON {
		if jobs == nil {
			jobs = []domain.Job{}
		}
		return printJSON(cmd, jobs)
	}

	if len(jobs) == 0 {
		cmd.Println("No jobs found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tTYPE\tPRIORITY\tOWNER\tCREATED")
	for i := range jobs {
		j := &jobs[i]
		title := j.Title
		if j.Starred {
			title = "* " + title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, truncate(title, 40), statusLabel(j), j.Type, dash(string(j.Priority)), dash(j.Owner),
			humanize.Time(j.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("\nrunning %d  queued %d  history %d\n", len(tabs.Running), len(tabs.Queued), len(tabs.History))
	return nil
}

func runJobsGet(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	job, err := jobService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if jobsJSON {
		return printJSON(cmd, job)
	}
	printJob(cmd, job)
	return nil
}

func runJobsStatus(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	status, err := domain.ParseJobStatus(args[1])
	if err != nil {
		return err
	}
	job, err := jobService.SetStatus(cmd.Context(), args[0], status)
	if err != nil {
		return err
	}
	cmd.Printf("%s is now %s\n", job.ID, job.Status)
	return nil
}

func runJobsStar(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	job, err := jobService.ToggleStar(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if job.Starred {
		cmd.Printf("Starred %s\n", job.ID)
	} else {
		cmd.Printf("Unstarred %s\n", job.ID)
	}
	return nil
}

func runJobsImport(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	ctx := cmd.Context()

	for _, path := range args {
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			jobs, err := jobService.ImportManifest(ctx, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			cmd.Printf("Imported %d jobs from %s\n", len(jobs), path)
			continue
		}

		job, err := jobService.Import(ctx, path)
		if err != nil {
			return err
		}
		cmd.Printf("Imported %s as %s (%s)\n", path, job.ID, job.FileSize)
	}
	return nil
}

func runJobsWatch(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}

	dir, exts, err := watchSettings(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(dir, jobService,
		watcher.WithExtensions(exts),
		watcher.WithLogger(logger.L()),
		watcher.OnImport(func(path string, job *domain.Job, err error) {
			if err != nil {
				cmd.PrintErrf("skip %s: %v\n", filepath.Base(path), err)
				return
			}
			cmd.Printf("Imported %s as %s\n", filepath.Base(path), job.ID)
		}),
	)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Dir())
	<-ctx.Done()
	return nil
}

// watchSettings resolves the watch folder and accepted extensions.
func watchSettings(args []string) (string, []string, error) {
	exts := domain.DefaultImportExtensions()
	dir := ""
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			dir = settings.Jobs.WatchDir
			exts = settings.Jobs.Extensions
		}
	}
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return "", nil, fmt.Errorf("%w: no watch folder; pass one or run 'narrator settings set jobs.watch_dir <dir>'",
			domain.ErrInvalidInput)
	}
	return dir, exts, nil
}

func printJob(cmd *cobra.Command, j *domain.Job) {
	cmd.Printf("%s  %s\n", j.ID, j.Title)
	cmd.Printf("  Status:    %s\n", statusLabel(j))
	cmd.Printf("  Type:      %s\n", j.Type)
	cmd.Printf("  Priority:  %s\n", dash(string(j.Priority)))
	cmd.Printf("  Owner:     %s\n", dash(j.Owner))
	cmd.Printf("  Created:   %s (%s)\n", j.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(j.CreatedAt))
	if j.Stage != "" {
		cmd.Printf("  Stage:     %s\n", j.Stage)
	}
	if j.ETA != "" {
		cmd.Printf("  ETA:       %s\n", j.ETA)
	}
	if !j.ScheduledAt.IsZero() {
		cmd.Printf("  Scheduled: %s\n", j.ScheduledAt.Format("2006-01-02 15:04"))
	}
	if !j.FinishedAt.IsZero() {
		cmd.Printf("  Finished:  %s\n", j.FinishedAt.Format("2006-01-02 15:04"))
	}
	if j.Duration != "" {
		cmd.Printf("  Duration:  %s\n", j.Duration)
	}
	if j.FileSize != "" {
		cmd.Printf("  File size: %s\n", j.FileSize)
	}
	if j.OutputType != "" {
		cmd.Printf("  Output:    %s %s\n", j.OutputType, j.Resolution)
	}
	if len(j.Dependencies) > 0 {
		cmd.Printf("  Depends:   %s\n", strings.Join(j.Dependencies, ", "))
	}
	if len(j.Tags) > 0 {
		cmd.Printf("  Tags:      %s\n", strings.Join(j.Tags, ", "))
	}
	if j.EstimatedCost != "" {
		cmd.Printf("  Cost:      %s\n", j.EstimatedCost)
	}
	if j.Starred {
		cmd.Println("  Starred")
	}
}

// statusLabel shows progress for jobs that are under way.
func statusLabel(j *domain.Job) string {
	if domain.TabRunning.Contains(j.Status) && j.Progress > 0 {
		return fmt.Sprintf("%s %d%%", j.Status, j.Progress)
	}
	return j.Status.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
