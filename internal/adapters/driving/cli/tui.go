package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long: `Open the terminal dashboard: narration jobs by tab, the cleaning
rules with a live preview, and the settings. Background tasks run while
it is open.

Press ? inside the dashboard for every key binding.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// The alt screen swallows panics, so print them once the terminal is back.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "narrator tui crashed: %v\n%s\n", r, debug.Stack())
			err = fmt.Errorf("tui crashed: %v", r)
		}
	}()

	ports := tui.NewPorts(jobService, cleaningService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return err
	}

	stop := startScheduler(cmd.Context())
	defer stop()

	if err := app.Run(cmd.Context()); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
