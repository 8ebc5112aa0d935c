// Package cleanup implements the artefact-removal tools applied to
// imported text: stray line breaks, non-ASCII debris, punctuation
// spacing and page-number lines.
package cleanup

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

// Ensure Cleaner implements the interface.
var _ driven.TextCleaner = (*Cleaner)(nil)

var (
	extraLineBreaks   = regexp.MustCompile(`\n\s*\n\s*\n`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([.!?])`)
	missingSpaceAfter = regexp.MustCompile(`([.!?])\s*([A-Z])`)
	pageNumberLine    = regexp.MustCompile(`(?i)\n\s*Page\s+\d+\s*\n`)
)

// Cleaner applies cleanup tools in a fixed order.
type Cleaner struct {
	steps map[domain.CleanupTool]func(string) string
}

// New creates a cleaner with every built-in tool.
func New() *Cleaner {
	return &Cleaner{
		steps: map[domain.CleanupTool]func(string) string{
			domain.ToolLineBreaks:  RemoveExtraLineBreaks,
			domain.ToolNonASCII:    RemoveNonASCII,
			domain.ToolPunctuation: FixPunctuation,
			domain.ToolPageNumbers: RemovePageNumbers,
		},
	}
}

// Tools returns the supported tools in application order.
func (c *Cleaner) Tools() []domain.CleanupTool {
	return domain.CleanupTools()
}

// Clean applies the selected tools. Unknown and repeated tools are ignored.
func (c *Cleaner) Clean(text string, tools []domain.CleanupTool) string {
	selected := make(map[domain.CleanupTool]bool, len(tools))
	for _, t := range tools {
		selected[t] = true
	}
	for _, tool := range c.Tools() {
		if step, ok := c.steps[tool]; ok && selected[tool] {
			text = step(text)
		}
	}
	return text
}

// RemoveExtraLineBreaks collapses three or more line breaks, with any
// whitespace between them, into one blank line.
func RemoveExtraLineBreaks(text string) string {
	return extraLineBreaks.ReplaceAllString(text, "\n\n")
}

// RemoveNonASCII deletes every rune above U+007F.
func RemoveNonASCII(text string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(isNonASCII)), text)
	if err != nil {
		return text
	}
	return out
}

func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}

// FixPunctuation removes whitespace before sentence punctuation and puts
// exactly one space between a sentence end and a following capital.
func FixPunctuation(text string) string {
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return missingSpaceAfter.ReplaceAllString(text, "$1 $2")
}

// RemovePageNumbers deletes lines of the form "Page N".
func RemovePageNumbers(text string) string {
	return pageNumberLine.ReplaceAllString(text, "\n")
}
