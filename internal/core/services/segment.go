package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driving"
	"github.com/custodia-labs/narrator-cli/internal/logger"
)

// Ensure SegmentService implements the interface.
var _ driving.SegmentService = (*SegmentService)(nil)

// SegmentService validates segmentation options and delegates to a Segmenter.
type SegmentService struct {
	segmenter driven.Segmenter
	settings  driving.SettingsService
}

// NewSegmentService creates a segment service. settings may be nil.
func NewSegmentService(segmenter driven.Segmenter, settings driving.SettingsService) *SegmentService {
	return &SegmentService{
		segmenter: segmenter,
		settings:  settings,
	}
}

// Segment validates opts and splits text.
func (s *SegmentService) Segment(ctx context.Context, text string, opts domain.SegmentOptions) ([]domain.Segment, error) {
	if s.segmenter == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	segments, err := s.segmenter.Segment(ctx, text, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.segmenter.Name(), err)
	}
	logger.Debug("segmented %d words into %d segments (method=%s, length=%d)",
		countWords(segments), len(segments), opts.Method, opts.Length)
	return segments, nil
}

// DefaultOptions returns the configured options, or the built-in defaults
// when settings are missing or invalid.
func (s *SegmentService) DefaultOptions(_ context.Context) domain.SegmentOptions {
	defaults := domain.DefaultSegmentOptions()
	if s.settings == nil {
		return defaults
	}
	settings, err := s.settings.Get()
	if err != nil {
		return defaults
	}
	opts := domain.SegmentOptions{
		Method: settings.Segment.Method,
		Length: settings.Segment.Length,
	}
	if opts.Validate() != nil {
		logger.Warn("invalid segment settings %+v, using defaults", opts)
		return defaults
	}
	return opts
}

func countWords(segments []domain.Segment) int {
	n := 0
	for i := range segments {
		n += segments[i].Words
	}
	return n
}
