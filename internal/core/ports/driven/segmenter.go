package driven

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// Segmenter splits text into narration-sized segments.
type Segmenter interface {
	// Name returns the segmenter name for logging.
	Name() string

	// Segment splits text according to opts. Options are validated by the caller.
	// Empty text yields no segments.
	Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]domain.Segment, error)
}
