package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage cleaning rules",
	Long: `List, toggle and reset the cleaning rules applied by 'narrator clean'.

Toggles persist in the config file.`,
	RunE: runRulesList,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cleaning rules",
	RunE:  runRulesList,
}

var rulesToggleCmd = &cobra.Command{
	Use:   "toggle [rule-id]",
	Short: "Enable or disable a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesToggle,
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore every rule to its default state",
	RunE:  runRulesReset,
}

func init() {
	rulesCmd.PersistentFlags().BoolVar(&rulesJSON, "json", false, "output rules as JSON")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesToggleCmd)
	rulesCmd.AddCommand(rulesResetCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	if cleaningService == nil {
		return errNotConfigured("cleaning")
	}
	rules, err := cleaningService.ListRules(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	return outputRules(cmd, rules)
}

func runRulesToggle(cmd *cobra.Command, args []string) error {
	if cleaningService == nil {
		return errNotConfigured("cleaning")
	}
	rule, err := cleaningService.ToggleRule(cmd.Context(), domain.RuleID(args[0]))
	if err != nil {
		return err
	}

	state := "disabled"
	if rule.Enabled {
		state = "enabled"
	}
	cmd.Printf("%s %s\n", rule.ID, state)
	return nil
}

func runRulesReset(cmd *cobra.Command, _ []string) error {
	if cleaningService == nil {
		return errNotConfigured("cleaning")
	}
	rules, err := cleaningService.ResetRules(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reset rules: %w", err)
	}
	if !rulesJSON {
		cmd.Println("Rules reset to defaults.")
	}
	return outputRules(cmd, rules)
}

func outputRules(cmd *cobra.Command, rules []domain.CleaningRule) error {
	if rulesJSON {
		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rules: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	enabled := 0
	for i := range rules {
		mark := "[ ]"
		if rules[i].Enabled {
			mark = "[x]"
			enabled++
		}
		note := ""
		if !rules[i].Implemented {
			note = " (no effect yet)"
		}
		cmd.Printf("  %s %-20s %-12s %s%s\n", mark, rules[i].ID, rules[i].Category, rules[i].Name, note)
	}
	cmd.Printf("\n%d of %d rules enabled\n", enabled, len(rules))
	return nil
}
