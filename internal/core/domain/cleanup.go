package domain

import (
	"fmt"
	"strings"
)

// CleanupTool is an artefact-removal pass for imported text.
type CleanupTool string

// Available cleanup tools.
const (
	// ToolLineBreaks collapses three or more line breaks into a paragraph break.
	ToolLineBreaks CleanupTool = "line-breaks"

	// ToolNonASCII removes characters outside the ASCII range.
	ToolNonASCII CleanupTool = "non-ascii"

	// ToolPunctuation fixes spacing around sentence punctuation.
	ToolPunctuation CleanupTool = "punctuation"

	// ToolPageNumbers removes "Page N" lines.
	ToolPageNumbers CleanupTool = "page-numbers"
)

// CleanupTools returns every tool in application order.
func CleanupTools() []CleanupTool {
	return []CleanupTool{ToolLineBreaks, ToolNonASCII, ToolPunctuation, ToolPageNumbers}
}

// IsValid returns true if the tool is recognised.
func (t CleanupTool) IsValid() bool {
	switch t {
	case ToolLineBreaks, ToolNonASCII, ToolPunctuation, ToolPageNumbers:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t CleanupTool) String() string {
	return string(t)
}

// Description returns a human-readable description of the tool.
func (t CleanupTool) Description() string {
	switch t {
	case ToolLineBreaks:
		return "Remove Line Breaks"
	case ToolNonASCII:
		return "Remove Non-ASCII Characters"
	case ToolPunctuation:
		return "Fix Punctuation"
	case ToolPageNumbers:
		return "Remove Page Numbers"
	default:
		return unknownDescription
	}
}

// ParseCleanupTools converts names into tools, rejecting unknown names.
// Empty names are skipped so comma-separated flags can end with a comma.
func ParseCleanupTools(names []string) ([]CleanupTool, error) {
	tools := make([]CleanupTool, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tool := CleanupTool(strings.ToLower(name))
		if !tool.IsValid() {
			return nil, fmt.Errorf("%w: unknown cleanup tool %q", ErrInvalidInput, name)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
