// Package manifest reads narration job manifests written in YAML.
//
// A manifest is a document with a top-level jobs list:
//
//	jobs:
//	  - title: Chapter One
//	    priority: High
//	    scheduled_at: 2026-01-10T09:00:00Z
//	    tags: [fiction]
package manifest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.JobManifestReader = (*Reader)(nil)

// document is the on-disk manifest shape.
type document struct {
	Jobs []domain.Job `yaml:"jobs"`
}

// Reader decodes YAML job manifests.
type Reader struct{}

// NewReader creates a manifest reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read decodes a manifest. Unknown keys are rejected.
// An empty manifest yields no jobs.
func (r *Reader) Read(in io.Reader) ([]domain.Job, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil manifest", domain.ErrInvalidInput)
	}

	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Job{}, nil
		}
		return nil, fmt.Errorf("%w: parse manifest: %v", domain.ErrInvalidInput, err)
	}

	if doc.Jobs == nil {
		return []domain.Job{}, nil
	}
	return doc.Jobs, nil
}
