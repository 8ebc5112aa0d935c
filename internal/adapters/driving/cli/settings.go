package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change segmentation, job import, server and scheduler settings.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Changes a single setting. Keys:

  segment.method     paragraph, sentence or custom
  segment.length     50 to 500 in steps of 25
  jobs.watch_dir     drop folder for 'narrator jobs watch'
  jobs.extensions    comma-separated, e.g. .txt,.md
  jobs.owner         owner recorded on imported jobs
  server.host        HTTP API host
  server.port        HTTP API port
  scheduler.enabled  true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Segment]")
	cmd.Printf("  Method: %s\n", settings.Segment.Method.Description())
	cmd.Printf("  Length: %d words\n", settings.Segment.Length)
	cmd.Println()

	cmd.Println("[Jobs]")
	watchDir := settings.Jobs.WatchDir
	if watchDir == "" {
		watchDir = "(not set)"
	}
	cmd.Printf("  Watch folder: %s\n", watchDir)
	cmd.Printf("  Extensions: %s\n", strings.Join(settings.Jobs.Extensions, ", "))
	cmd.Printf("  Owner: %s\n", settings.Jobs.Owner)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s:%d\n", settings.Server.Host, settings.Server.Port)
	cmd.Println()

	cmd.Println("[Scheduler]")
	if settings.SchedulerEnabled {
		cmd.Println("  Enabled: yes")
	} else {
		cmd.Println("  Enabled: no")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'narrator settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
