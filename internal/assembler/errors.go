package assembler

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/magflow/internal/workflow"
)

var (
	// ErrEmptySampleSet is returned when there is nothing to assemble.
	ErrEmptySampleSet = errors.New("empty sample set")
	// ErrDuplicateSampleID is returned when two samples share an id.
	ErrDuplicateSampleID = errors.New("duplicate sample id")
	// ErrEmptyAggregation means no QC artifact exists. It is reported as a
	// warning, never returned from Assemble.
	ErrEmptyAggregation = errors.New("no QC artifacts to aggregate")
	// ErrInvariantViolation is returned when the final graph check fails.
	ErrInvariantViolation = workflow.ErrInvariantViolation
)

// SampleError attaches the offending sample to a build or merge failure.
type SampleError struct {
	SampleID string
	Err      error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %q: %v", e.SampleID, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}
