// Package domain defines the core business entities for Narrator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CleaningRule: A named, toggleable text transform
//   - NormalisationResult: Cleaned text plus text statistics
//   - CleanupTool: An artefact-removal pass (page numbers, line breaks, ...)
//   - Segment: A narration-sized slice of cleaned text
//   - Job: A narration job shown on the dashboard
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
