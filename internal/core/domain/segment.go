package domain

import "fmt"

// SegmentMethod selects how text is split into narration segments.
type SegmentMethod string

// Segmentation methods.
const (
	// SegmentByParagraph packs whole paragraphs into each segment.
	SegmentByParagraph SegmentMethod = "paragraph"

	// SegmentBySentence packs whole sentences into each segment.
	SegmentBySentence SegmentMethod = "sentence"

	// SegmentByCustomLength cuts fixed windows of words.
	SegmentByCustomLength SegmentMethod = "custom"
)

// Segment length bounds, in words.
const (
	MinSegmentLength     = 50
	MaxSegmentLength     = 500
	SegmentLengthStep    = 25
	DefaultSegmentLength = 250
)

// IsValid returns true if the method is recognised.
func (m SegmentMethod) IsValid() bool {
	switch m {
	case SegmentByParagraph, SegmentBySentence, SegmentByCustomLength:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SegmentMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m SegmentMethod) Description() string {
	switch m {
	case SegmentByParagraph:
		return "By Paragraph"
	case SegmentBySentence:
		return "By Sentence"
	case SegmentByCustomLength:
		return "By Custom Length"
	default:
		return unknownDescription
	}
}

// SegmentOptions configures segmentation.
type SegmentOptions struct {
	// Method selects the split strategy.
	Method SegmentMethod `json:"method"`

	// Length is the target segment size in words.
	Length int `json:"length"`
}

// DefaultSegmentOptions returns paragraph segmentation at the default length.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		Method: SegmentByParagraph,
		Length: DefaultSegmentLength,
	}
}

// Validate checks the method and that the length is on the slider grid.
func (o SegmentOptions) Validate() error {
	if !o.Method.IsValid() {
		return fmt.Errorf("%w: unknown segmentation method %q", ErrInvalidInput, o.Method)
	}
	if o.Length < MinSegmentLength || o.Length > MaxSegmentLength {
		return fmt.Errorf("%w: segment length %d outside %d..%d",
			ErrInvalidInput, o.Length, MinSegmentLength, MaxSegmentLength)
	}
	if (o.Length-MinSegmentLength)%SegmentLengthStep != 0 {
		return fmt.Errorf("%w: segment length %d is not a multiple of %d from %d",
			ErrInvalidInput, o.Length, SegmentLengthStep, MinSegmentLength)
	}
	return nil
}

// Segment is a narration-sized slice of text.
type Segment struct {
	// ID is the unique identifier for the segment.
	ID string `json:"id"`

	// Position is the ordinal position within the source text.
	Position int `json:"position"`

	// Text is the segment content.
	Text string `json:"text"`

	// Words is the word count of Text.
	Words int `json:"words"`
}
