package driving

import (
	"context"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// SegmentService splits text into narration segments.
type SegmentService interface {
	// Segment validates opts and splits text.
	Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]domain.Segment, error)

	// DefaultOptions returns the configured segmentation options.
	DefaultOptions(ctx context.Context) domain.SegmentOptions
}
