package domain

// RuleID identifies a cleaning rule.
type RuleID string

// Built-in rule IDs.
const (
	RuleRemoveExtraSpaces  RuleID = "remove-extra-spaces"
	RuleFixQuotes          RuleID = "fix-quotes"
	RuleRemoveEmptyLines   RuleID = "remove-empty-lines"
	RuleDetectHeadings     RuleID = "detect-headings"
	RuleFixLists           RuleID = "fix-lists"
	RuleRemoveURLs         RuleID = "remove-urls"
	RuleEnhanceReadability RuleID = "enhance-readability"
)

// String returns the string representation.
func (id RuleID) String() string {
	return string(id)
}

// RuleCategory groups rules for display.
type RuleCategory string

// Rule categories.
const (
	CategoryFormatting  RuleCategory = "formatting"
	CategoryContent     RuleCategory = "content"
	CategoryStructure   RuleCategory = "structure"
	CategoryEnhancement RuleCategory = "enhancement"
)

// IsValid returns true if the category is recognised.
func (c RuleCategory) IsValid() bool {
	switch c {
	case CategoryFormatting, CategoryContent, CategoryStructure, CategoryEnhancement:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c RuleCategory) String() string {
	return string(c)
}

// CleaningRule is a named, independently toggleable text transform.
// Only Enabled changes after construction.
type CleaningRule struct {
	// ID is the unique identifier for the rule.
	ID RuleID `json:"id"`

	// Name is the human-readable name.
	Name string `json:"name"`

	// Description explains what the rule does.
	Description string `json:"description"`

	// Enabled indicates whether the rule is applied.
	Enabled bool `json:"enabled"`

	// Category groups the rule for display.
	Category RuleCategory `json:"category"`

	// Implemented is false for rules that are listed and toggleable
	// but apply no transform.
	Implemented bool `json:"implemented"`
}

// DefaultRules returns the built-in rules in declaration order.
// Declaration order is the display order; it is NOT the order in which
// rules are applied (see services.Normalise).
func DefaultRules() []CleaningRule {
	return []CleaningRule{
		{
			ID:          RuleRemoveExtraSpaces,
			Name:        "Remove Extra Spaces",
			Description: "Remove multiple consecutive spaces and trim whitespace",
			Enabled:     true,
			Category:    CategoryFormatting,
			Implemented: true,
		},
		{
			ID:          RuleFixQuotes,
			Name:        "Fix Smart Quotes",
			Description: "Convert straight quotes to curly quotes",
			Enabled:     true,
			Category:    CategoryFormatting,
		},
		{
			ID:          RuleRemoveEmptyLines,
			Name:        "Remove Empty Lines",
			Description: "Remove lines with only whitespace",
			Enabled:     true,
			Category:    CategoryFormatting,
			Implemented: true,
		},
		{
			ID:          RuleDetectHeadings,
			Name:        "Detect Headings",
			Description: "Identify and format heading sections",
			Enabled:     true,
			Category:    CategoryStructure,
		},
		{
			ID:          RuleFixLists,
			Name:        "Fix Lists",
			Description: "Format numbered and bulleted lists",
			Enabled:     true,
			Category:    CategoryStructure,
		},
		{
			ID:          RuleRemoveURLs,
			Name:        "Remove URLs",
			Description: "Remove web addresses and links",
			Enabled:     false,
			Category:    CategoryContent,
		},
		{
			ID:          RuleEnhanceReadability,
			Name:        "Enhance Readability",
			Description: "Improve sentence structure and flow",
			Enabled:     true,
			Category:    CategoryEnhancement,
		},
	}
}

// RuleSet is the set of enabled rule IDs passed to the normaliser.
type RuleSet map[RuleID]struct{}

// NewRuleSet builds a set from the given IDs.
func NewRuleSet(ids ...RuleID) RuleSet {
	set := make(RuleSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set. A nil set is empty.
func (s RuleSet) Has(id RuleID) bool {
	_, ok := s[id]
	return ok
}

// EnabledRuleSet returns the IDs of the enabled rules.
func EnabledRuleSet(rules []CleaningRule) RuleSet {
	set := make(RuleSet, len(rules))
	for i := range rules {
		if rules[i].Enabled {
			set[rules[i].ID] = struct{}{}
		}
	}
	return set
}
