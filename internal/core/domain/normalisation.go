package domain

// NormalisationResult holds cleaned text and statistics about it.
// It is recomputed in full on every normalisation.
type NormalisationResult struct {
	// Output is the cleaned text.
	Output string `json:"output"`

	// Characters is the rune count of Output.
	Characters int `json:"characters"`

	// Words counts non-empty whitespace-delimited tokens.
	Words int `json:"words"`

	// Sentences counts non-blank segments between runs of . ! or ?.
	Sentences int `json:"sentences"`

	// Paragraphs counts non-blank segments between runs of two or more newlines.
	Paragraphs int `json:"paragraphs"`

	// Changes is the number of characters removed by the whitespace rules.
	// It is a length delta, not an edit count.
	Changes int `json:"changes"`
}

// WordsPerMinute is the narration pace used for reading time estimates.
const WordsPerMinute = 150

// ReadingMinutes estimates narration time for a word count, rounded up.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// CleanRequest describes a full cleaning pass: artefact-removal tools first,
// then normalisation rules.
type CleanRequest struct {
	// Text is the input text.
	Text string `json:"text" validate:"max=2000000"`

	// Rules selects the normalisation rules by ID. Nil uses the registry's
	// enabled rules; an empty slice applies none.
	Rules []RuleID `json:"rules,omitempty" validate:"omitempty,dive,required"`

	// Tools lists cleanup tools to run before the rules.
	Tools []CleanupTool `json:"tools,omitempty" validate:"omitempty,dive,oneof=line-breaks non-ascii punctuation page-numbers"`
}
