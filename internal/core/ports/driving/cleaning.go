package driving

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// CleaningService manages the cleaning rule registry and cleans text with it.
type CleaningService interface {
	// ListRules returns every rule in declaration order.
	ListRules(ctx context.Context) ([]domain.CleaningRule, error)

	// ToggleRule flips a rule's Enabled flag and returns the updated rule.
	// Returns domain.ErrRuleNotFound for an unknown ID.
	ToggleRule(ctx context.Context, id domain.RuleID) (*domain.CleaningRule, error)

	// ResetRules restores every rule to its default state.
	ResetRules(ctx context.Context) ([]domain.CleaningRule, error)

	// Clean normalises text with the currently enabled rules.
	Clean(ctx context.Context, text string) (*domain.NormalisationResult, error)

	// CleanWith normalises text with an explicit rule set, ignoring the registry.
	CleanWith(ctx context.Context, text string, rules domain.RuleSet) (*domain.NormalisationResult, error)

	// Cleanup runs artefact-removal tools over text.
	// Statistics are computed on the output; Changes is the length delta.
	Cleanup(ctx context.Context, text string, tools []domain.CleanupTool) (*domain.NormalisationResult, error)

	// Process runs the request's cleanup tools and then its rules.
	// Changes counts both passes.
	Process(ctx context.Context, req domain.CleanRequest) (*domain.NormalisationResult, error)
}
