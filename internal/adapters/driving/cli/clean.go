package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

var (
	cleanEnable  []string
	cleanDisable []string
	cleanTools   []string
	cleanJSON    bool
	cleanStats   bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Clean text for narration",
	Long: `Cleans text with the enabled rules and prints the result.

Reads the file argument, or stdin when no file is given. Markdown and HTML
files are converted to plain text first.

--enable and --disable adjust the enabled rules for this run only; use
'narrator rules toggle' to change them permanently. --tools runs cleanup
tools (line-breaks, non-ascii, punctuation, page-numbers) before the rules.`,
	Example: `  narrator clean chapter.md
  pbpaste | narrator clean --stats
  narrator clean --disable remove-extra-spaces --tools page-numbers book.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringSliceVar(&cleanEnable, "enable", nil, "rule IDs to enable for this run")
	cleanCmd.Flags().StringSliceVar(&cleanDisable, "disable", nil, "rule IDs to disable for this run")
	cleanCmd.Flags().StringSliceVar(&cleanTools, "tools", nil, "cleanup tools to run before the rules")
	cleanCmd.Flags().BoolVar(&cleanJSON, "json", false, "output the result and statistics as JSON")
	cleanCmd.Flags().BoolVar(&cleanStats, "stats", false, "print statistics after the text")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if cleaningService == nil {
		return errNotConfigured("cleaning")
	}
	ctx := cmd.Context()

	text, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	tools, err := domain.ParseCleanupTools(cleanTools)
	if err != nil {
		return err
	}
	req := domain.CleanRequest{Text: text, Tools: tools}
	if len(cleanEnable) > 0 || len(cleanDisable) > 0 {
		rules, err := cleaningService.ListRules(ctx)
		if err != nil {
			return fmt.Errorf("list rules: %w", err)
		}
		req.Rules, err = adjustRules(rules, cleanEnable, cleanDisable)
		if err != nil {
			return err
		}
	}

	result, err := cleaningService.Process(ctx, req)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	if cleanJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(result.Output)
	if cleanStats {
		printStats(cmd, result)
	}
	return nil
}

// adjustRules returns the enabled rule IDs with the overrides applied.
// Unknown IDs fail with domain.ErrRuleNotFound.
func adjustRules(rules []domain.CleaningRule, enable, disable []string) ([]domain.RuleID, error) {
	known := make(map[domain.RuleID]bool, len(rules))
	state := make(map[domain.RuleID]bool, len(rules))
	for i := range rules {
		known[rules[i].ID] = true
		state[rules[i].ID] = rules[i].Enabled
	}

	apply := func(ids []string, enabled bool) error {
		for _, id := range ids {
			rid := domain.RuleID(id)
			if !known[rid] {
				return fmt.Errorf("%q: %w", id, domain.ErrRuleNotFound)
			}
			state[rid] = enabled
		}
		return nil
	}
	if err := apply(enable, true); err != nil {
		return nil, err
	}
	if err := apply(disable, false); err != nil {
		return nil, err
	}

	ids := make([]domain.RuleID, 0, len(rules))
	for i := range rules {
		if state[rules[i].ID] {
			ids = append(ids, rules[i].ID)
		}
	}
	return ids, nil
}

func printStats(cmd *cobra.Command, result *domain.NormalisationResult) {
	cmd.Println()
	cmd.Println("Statistics")
	cmd.Println("==========")
	cmd.Printf("  Characters:   %d\n", result.Characters)
	cmd.Printf("  Words:        %d\n", result.Words)
	cmd.Printf("  Sentences:    %d\n", result.Sentences)
	cmd.Printf("  Paragraphs:   %d\n", result.Paragraphs)
	cmd.Printf("  Changes:      %d\n", result.Changes)
	cmd.Printf("  Reading time: %d min\n", domain.ReadingMinutes(result.Words))
}
