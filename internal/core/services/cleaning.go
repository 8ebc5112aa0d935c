package services

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

// Ensure CleaningService implements the interface.
var _ driving.CleaningService = (*CleaningService)(nil)

// CleaningService owns the rule registry and applies it to text.
// Rule toggles persist to the config store under "rules.<id>.enabled".
type CleaningService struct {
	configStore driven.ConfigStore
	cleaner     driven.TextCleaner

	mu    sync.RWMutex
	rules []domain.CleaningRule
}

// NewCleaningService creates a cleaning service. Both ports may be nil:
// without a config store toggles live in memory only, and without a
// cleaner Cleanup returns domain.ErrNotImplemented.
func NewCleaningService(configStore driven.ConfigStore, cleaner driven.TextCleaner) *CleaningService {
	rules := domain.DefaultRules()
	if configStore != nil {
		for i := range rules {
			if _, ok := configStore.Get(ruleKey(rules[i].ID)); ok {
				rules[i].Enabled = configStore.GetBool(ruleKey(rules[i].ID))
			}
		}
	}
	return &CleaningService{
		configStore: configStore,
		cleaner:     cleaner,
		rules:       rules,
	}
}

func ruleKey(id domain.RuleID) string {
	return "rules." + string(id) + ".enabled"
}

// ListRules returns every rule in declaration order.
func (s *CleaningService) ListRules(_ context.Context) ([]domain.CleaningRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

// ToggleRule flips a rule's Enabled flag.
func (s *CleaningService) ToggleRule(_ context.Context, id domain.RuleID) (*domain.CleaningRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID != id {
			continue
		}
		s.rules[i].Enabled = !s.rules[i].Enabled
		if err := s.persist(s.rules[i : i+1]); err != nil {
			s.rules[i].Enabled = !s.rules[i].Enabled
			return nil, err
		}
		logger.Debug("rule %s enabled=%t", id, s.rules[i].Enabled)
		rule := s.rules[i]
		return &rule, nil
	}
	return nil, fmt.Errorf("toggle %q: %w", id, domain.ErrRuleNotFound)
}

// ResetRules restores every rule to its default state. When a write
// fails partway, the rules already written are put back so the store
// matches memory again.
func (s *CleaningService) ResetRules(_ context.Context) ([]domain.CleaningRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.rules
	s.rules = domain.DefaultRules()
	if err := s.persist(s.rules); err != nil {
		s.rules = previous
		if restoreErr := s.persist(previous); restoreErr != nil {
			logger.Warn("restoring rules after failed reset: %v", restoreErr)
		}
		return nil, err
	}
	return s.snapshot(), nil
}

// Clean normalises text with the currently enabled rules.
func (s *CleaningService) Clean(ctx context.Context, text string) (*domain.NormalisationResult, error) {
	s.mu.RLock()
	enabled := domain.EnabledRuleSet(s.rules)
	s.mu.RUnlock()
	return s.CleanWith(ctx, text, enabled)
}

// CleanWith normalises text with an explicit rule set.
func (s *CleaningService) CleanWith(_ context.Context, text string, rules domain.RuleSet) (*domain.NormalisationResult, error) {
	result := Normalise(text, rules)
	return &result, nil
}

// Cleanup runs artefact-removal tools over text.
func (s *CleaningService) Cleanup(
	_ context.Context,
	text string,
	tools []domain.CleanupTool,
) (*domain.NormalisationResult, error) {
	if s.cleaner == nil {
		return nil, domain.ErrNotImplemented
	}
	for _, tool := range tools {
		if !tool.IsValid() {
			return nil, fmt.Errorf("%w: unknown cleanup tool %q", domain.ErrInvalidInput, tool)
		}
	}

	out := s.cleaner.Clean(text, tools)
	result := textStats(out)
	// Punctuation spacing can lengthen text, so report the size of the delta.
	result.Changes = abs(utf8.RuneCountInString(text) - result.Characters)
	return &result, nil
}

// Process runs cleanup tools and then normalisation rules over the text.
func (s *CleaningService) Process(ctx context.Context, req domain.CleanRequest) (*domain.NormalisationResult, error) {
	text := req.Text
	changes := 0
	if len(req.Tools) > 0 {
		cleaned, err := s.Cleanup(ctx, text, req.Tools)
		if err != nil {
			return nil, err
		}
		text = cleaned.Output
		changes = cleaned.Changes
	}

	var (
		result *domain.NormalisationResult
		err    error
	)
	if req.Rules == nil {
		result, err = s.Clean(ctx, text)
	} else {
		if err := s.checkRules(req.Rules); err != nil {
			return nil, err
		}
		result, err = s.CleanWith(ctx, text, domain.NewRuleSet(req.Rules...))
	}
	if err != nil {
		return nil, err
	}
	result.Changes += changes
	return result, nil
}

func (s *CleaningService) checkRules(ids []domain.RuleID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		found := false
		for i := range s.rules {
			if s.rules[i].ID == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%q: %w", id, domain.ErrRuleNotFound)
		}
	}
	return nil
}

// persist writes rule states to the config store. Caller holds s.mu.
func (s *CleaningService) persist(rules []domain.CleaningRule) error {
	if s.configStore == nil {
		return nil
	}
	for i := range rules {
		if err := s.configStore.Set(ruleKey(rules[i].ID), rules[i].Enabled); err != nil {
			return fmt.Errorf("save rule %s: %w", rules[i].ID, err)
		}
	}
	return nil
}

// snapshot copies the rules. Caller holds s.mu.
func (s *CleaningService) snapshot() []domain.CleaningRule {
	rules := make([]domain.CleaningRule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
