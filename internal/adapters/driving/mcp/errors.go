// Package mcp provides an MCP (Model Context Protocol) server adapter for Narrator.
// It lets AI assistants clean and segment text and inspect the job dashboard.
package mcp

import "errors"

// ErrMissingCleaningService is returned when the cleaning service is not provided.
var ErrMissingCleaningService = errors.New("mcp: cleaning service is required")
