package postprocessors

import (
	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/postprocessors/chunker"
)

// RegisterDefaults registers the built-in segmentation methods.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(domain.SegmentByParagraph, splitParagraphs)
	r.Register(domain.SegmentBySentence, splitSentences)
	r.Register(domain.SegmentByCustomLength, splitWindows)
}

// splitParagraphs packs whole paragraphs into segments.
func splitParagraphs(text string, length int) []string {
	return chunker.Pack(chunker.SplitParagraphs(text), length, chunker.ParagraphSeparator)
}

// splitSentences packs whole sentences into segments.
func splitSentences(text string, length int) []string {
	return chunker.Pack(chunker.SplitSentences(text), length, chunker.SentenceSeparator)
}

// splitWindows cuts fixed windows of words.
func splitWindows(text string, length int) []string {
	return chunker.New(chunker.WithChunkSize(length)).Chunk(text)
}
