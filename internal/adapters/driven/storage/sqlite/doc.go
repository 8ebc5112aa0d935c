// Package sqlite provides a SQLite-based implementation of the job and
// scheduler stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Both stores share a single database connection:
//
//   - JobStore: narration jobs, with tags and dependencies stored as JSON
//   - SchedulerStore: background task state and run history
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; an up
// migration and its schema_migrations row commit in one transaction.
//
// # Data Location
//
// By default, the database is stored at ~/.narrator/data/narrator.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
