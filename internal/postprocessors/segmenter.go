// Package postprocessors turns cleaned text into narration segments.
package postprocessors

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/postprocessors/chunker"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Segmenter dispatches to the split function registered for each method.
type Segmenter struct {
	registry *Registry
}

// NewSegmenter creates a segmenter. A nil registry gets the defaults.
func NewSegmenter(registry *Registry) *Segmenter {
	if registry == nil {
		registry = NewRegistry()
		RegisterDefaults(registry)
	}
	return &Segmenter{registry: registry}
}

// Name returns the segmenter name.
func (s *Segmenter) Name() string {
	return "segmenter"
}

// Segment splits text according to opts.
func (s *Segmenter) Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]domain.Segment, error) {
	split, err := s.registry.Get(opts.Method)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := split(text, opts.Length)
	segments := make([]domain.Segment, 0, len(parts))
	for i, part := range parts {
		segments = append(segments, domain.Segment{
			ID:       uuid.New().String(),
			Position: i,
			Text:     part,
			Words:    chunker.CountWords(part),
		})
	}
	return segments, nil
}
