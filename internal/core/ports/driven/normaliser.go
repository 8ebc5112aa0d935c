package driven

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// Normaliser extracts narratable plain text from a file format.
// Each normaliser handles specific extensions (e.g., ".md", ".html").
type Normaliser interface {
	// SupportedExtensions returns the lower-case file extensions, with dot.
	SupportedExtensions() []string

	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise strips formatting and returns the text and a title.
	Normalise(ctx context.Context, raw *domain.RawText) (*domain.ExtractedText, error)
}
