package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownBody indicates a body handle that does not name a body in the arena.
	ErrUnknownBody = errors.New("dynamo: unknown body handle")

	// ErrUnknownLabel indicates a label id that is not (or no longer) in the world.
	ErrUnknownLabel = errors.New("dynamo: unknown label")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidStep indicates a non-positive or non-finite frame time.
	ErrInvalidStep = errors.New("dynamo: invalid frame time")
)

// StepError wraps an error with the frame it happened on.
type StepError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
