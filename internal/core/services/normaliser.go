package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

var (
	sentenceBreak  = regexp.MustCompile(`[.!?]+`)
	paragraphBreak = regexp.MustCompile(`\n\n+`)
)

// Normalise applies the enabled rules to text and computes statistics on
// the output. It never fails; an empty rule set returns text unchanged.
//
// Rules apply in a fixed order that is NOT the registry's display order:
// remove-extra-spaces first, then remove-empty-lines. Rules without a
// transform are accepted and ignored.
func Normalise(text string, enabled domain.RuleSet) domain.NormalisationResult {
	out := text
	changes := 0

	if enabled.Has(domain.RuleRemoveExtraSpaces) {
		next := collapseWhitespace(out)
		changes += utf8.RuneCountInString(out) - utf8.RuneCountInString(next)
		out = next
	}

	if enabled.Has(domain.RuleRemoveEmptyLines) {
		next := dropEmptyLines(out)
		changes += utf8.RuneCountInString(out) - utf8.RuneCountInString(next)
		out = next
	}

	result := textStats(out)
	result.Changes = changes
	return result
}

// textStats fills every NormalisationResult field except Changes.
func textStats(text string) domain.NormalisationResult {
	return domain.NormalisationResult{
		Output:     text,
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
		Sentences:  countNonBlank(sentenceBreak.Split(text, -1)),
		Paragraphs: countNonBlank(paragraphBreak.Split(text, -1)),
	}
}

// collapseWhitespace replaces every whitespace run, newlines included,
// with a single space and trims both ends.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// dropEmptyLines removes lines that are empty or whitespace-only. Blank
// lines between paragraphs go too, so the output is at most one paragraph.
func dropEmptyLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func countNonBlank(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
