// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - JobStore: Narration job persistence
//   - ConfigStore: Application configuration and rule toggles
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextCleaner: Artefact-removal tools. Without it, cleanup is unavailable.
//   - Segmenter: Narration segmentation. Without it, segmenting is unavailable.
//   - JobManifestReader: Bulk job import from manifests.
//   - NormaliserRegistry: File format extraction for cleaning file input.
//   - SchedulerStore: Task state and runs. Without it, the scheduler idles.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or postprocessor package
package driven
