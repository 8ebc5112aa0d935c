package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSegmentOptions(t *testing.T) {
	opts := DefaultSegmentOptions()

	assert.Equal(t, SegmentByParagraph, opts.Method)
	assert.Equal(t, 250, opts.Length)
	assert.NoError(t, opts.Validate())
}

func TestSegmentOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SegmentOptions
		wantErr bool
	}{
		{"minimum", SegmentOptions{Method: SegmentBySentence, Length: 50}, false},
		{"maximum", SegmentOptions{Method: SegmentByCustomLength, Length: 500}, false},
		{"on step", SegmentOptions{Method: SegmentByParagraph, Length: 325}, false},
		{"below minimum", SegmentOptions{Method: SegmentByParagraph, Length: 25}, true},
		{"above maximum", SegmentOptions{Method: SegmentByParagraph, Length: 525}, true},
		{"off step", SegmentOptions{Method: SegmentByParagraph, Length: 260}, true},
		{"unknown method", SegmentOptions{Method: "chapter", Length: 250}, true},
		{"empty method", SegmentOptions{Length: 250}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSegmentMethod_Description(t *testing.T) {
	assert.Equal(t, "By Paragraph", SegmentByParagraph.Description())
	assert.Equal(t, "By Sentence", SegmentBySentence.Description())
	assert.Equal(t, "By Custom Length", SegmentByCustomLength.Description())
	assert.Equal(t, "Unknown", SegmentMethod("x").Description())
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 0, ReadingMinutes(0))
	assert.Equal(t, 0, ReadingMinutes(-3))
	assert.Equal(t, 1, ReadingMinutes(1))
	assert.Equal(t, 1, ReadingMinutes(150))
	assert.Equal(t, 2, ReadingMinutes(151))
}
