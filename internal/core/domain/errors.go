package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Rule Errors.

	// ErrRuleNotFound indicates a cleaning rule ID is not in the registry.
	ErrRuleNotFound = errors.New("cleaning rule not found")

	// Job Errors.

	// ErrJobNotFound indicates a job ID is not in the job store.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidStatus indicates a job status outside the known set.
	ErrInvalidStatus = errors.New("invalid job status")

	// ErrUnsupportedFile indicates a file that cannot be imported as a job.
	// Only plain text and Markdown files are accepted.
	ErrUnsupportedFile = errors.New("unsupported file type")
)
