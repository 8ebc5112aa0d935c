// Package html turns HTML pages into narration text. Scripts, styles and
// the document head are dropped. Block elements become paragraph or line
// breaks so the segmenter can still find paragraphs.
package html
