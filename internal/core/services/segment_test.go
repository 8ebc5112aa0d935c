package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

// stubSegmenter returns one segment per line.
type stubSegmenter struct {
	err  error
	opts domain.SegmentOptions
}

var _ driven.Segmenter = (*stubSegmenter)(nil)

func (s *stubSegmenter) Name() string { return "stub" }

func (s *stubSegmenter) Segment(_ context.Context, text string, opts domain.SegmentOptions) ([]domain.Segment, error) {
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	var segments []domain.Segment
	for i, line := range strings.Split(text, "\n") {
		segments = append(segments, domain.Segment{
			ID: line, Position: i, Text: line, Words: len(strings.Fields(line)),
		})
	}
	return segments, nil
}

func TestSegmentService_Segment(t *testing.T) {
	segmenter := &stubSegmenter{}
	service := NewSegmentService(segmenter, nil)

	opts := domain.SegmentOptions{Method: domain.SegmentBySentence, Length: 100}
	segments, err := service.Segment(context.Background(), "one two\nthree", opts)
	require.NoError(t, err)

	require.Len(t, segments, 2)
	assert.Equal(t, 2, segments[0].Words)
	assert.Equal(t, opts, segmenter.opts)
	assert.Equal(t, 3, countWords(segments))
}

func TestSegmentService_Segment_InvalidOptions(t *testing.T) {
	segmenter := &stubSegmenter{}
	service := NewSegmentService(segmenter, nil)

	tests := []domain.SegmentOptions{
		{Method: "chapter", Length: 250},
		{Method: domain.SegmentByParagraph, Length: 25},
		{Method: domain.SegmentByParagraph, Length: 525},
		{Method: domain.SegmentByParagraph, Length: 260},
	}
	for _, opts := range tests {
		_, err := service.Segment(context.Background(), "text", opts)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", opts)
	}
	assert.Zero(t, segmenter.opts, "segmenter not called")
}

func TestSegmentService_Segment_WrapsSegmenterError(t *testing.T) {
	boom := errors.New("boom")
	service := NewSegmentService(&stubSegmenter{err: boom}, nil)

	_, err := service.Segment(context.Background(), "text", domain.DefaultSegmentOptions())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stub:")
}

func TestSegmentService_Segment_NoSegmenter(t *testing.T) {
	service := NewSegmentService(nil, nil)

	_, err := service.Segment(context.Background(), "text", domain.DefaultSegmentOptions())
	require.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSegmentService_DefaultOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("no settings", func(t *testing.T) {
		service := NewSegmentService(nil, nil)
		assert.Equal(t, domain.DefaultSegmentOptions(), service.DefaultOptions(ctx))
	})

	t.Run("configured", func(t *testing.T) {
		store := memory.NewConfigStoreFrom(map[string]any{
			"segment.method": "custom",
			"segment.length": 400,
		})
		service := NewSegmentService(nil, NewSettingsService(store))
		assert.Equal(t, domain.SegmentOptions{Method: domain.SegmentByCustomLength, Length: 400}, service.DefaultOptions(ctx))
	})

	t.Run("off grid falls back", func(t *testing.T) {
		store := memory.NewConfigStoreFrom(map[string]any{"segment.length": 333})
		service := NewSegmentService(nil, NewSettingsService(store))
		assert.Equal(t, domain.DefaultSegmentOptions(), service.DefaultOptions(ctx))
	})

	t.Run("settings error falls back", func(t *testing.T) {
		service := NewSegmentService(nil, NewSettingsService(nil))
		assert.Equal(t, domain.DefaultSegmentOptions(), service.DefaultOptions(ctx))
	})
}
