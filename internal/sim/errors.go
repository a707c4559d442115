package sim

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig indicates a non-positive step or duration.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrStepTooLarge indicates a step longer than the shortest phase of the
	// breath, which would let the cycle skip an edge.
	ErrStepTooLarge = errors.New("sim: step exceeds shortest cycle interval")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled")

	// ErrInvalidSample indicates a sample with a non-finite component.
	ErrInvalidSample = errors.New("sim: invalid sample (NaN or Inf detected)")
)

// SimError wraps an error with the step at which it happened.
type SimError struct {
	Step    int
	Time    time.Duration
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%v): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
