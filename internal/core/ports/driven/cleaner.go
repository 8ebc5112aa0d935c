package driven

import "github.com/custodia-labs/narrator-cli/internal/core/domain"

// TextCleaner removes import artefacts (stray line breaks, page numbers,
// non-ASCII debris) from text.
type TextCleaner interface {
	// Tools returns the tools this cleaner supports, in application order.
	Tools() []domain.CleanupTool

	// Clean applies the given tools. Tools are always applied in the
	// cleaner's own order, whatever order they are passed in.
	Clean(text string, tools []domain.CleanupTool) string
}
