package chunker

import (
	"regexp"
	"strings"
)

var (
	blankLine    = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)
	sentenceUnit = regexp.MustCompile(`[^.!?]*[.!?]+|[^.!?]+$`)
)

// Paragraph and sentence separators used when packing units.
const (
	ParagraphSeparator = "\n\n"
	SentenceSeparator  = " "
)

// SplitParagraphs splits text on blank lines and drops empty paragraphs.
func SplitParagraphs(text string) []string {
	return trimAll(blankLine.Split(text, -1))
}

// SplitSentences splits text after each run of '.', '!' or '?'.
// Terminators stay with their sentence; a trailing fragment without one
// is kept as the last sentence.
func SplitSentences(text string) []string {
	return trimAll(sentenceUnit.FindAllString(text, -1))
}

// CountWords returns the number of whitespace-delimited words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Pack groups consecutive units so each group holds at most limit words.
// A unit longer than limit is never split; it forms a group on its own.
func Pack(units []string, limit int, sep string) []string {
	var (
		groups  []string
		current []string
		words   int
	)

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, strings.Join(current, sep))
			current = current[:0]
			words = 0
		}
	}

	for _, unit := range units {
		n := CountWords(unit)
		if len(current) > 0 && words+n > limit {
			flush()
		}
		current = append(current, unit)
		words += n
	}
	flush()

	return groups
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
