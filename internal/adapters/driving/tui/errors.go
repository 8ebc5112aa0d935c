package tui

import "errors"

var (
	ErrInvalidPorts           = errors.New("tui: invalid ports configuration")
	ErrMissingJobService      = errors.New("tui: job service is required")
	ErrMissingCleaningService = errors.New("tui: cleaning service is required")
)
