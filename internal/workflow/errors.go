package workflow

import "errors"

var (
	// ErrDuplicateJob is returned when a job ID is added twice.
	ErrDuplicateJob = errors.New("duplicate job id")
	// ErrInvariantViolation is returned by Validate for a malformed graph.
	ErrInvariantViolation = errors.New("graph invariant violated")
)
