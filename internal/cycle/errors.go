package cycle

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every construction failure.
var ErrInvalidArgument = errors.New("cycle: invalid argument")

// ArgumentError names the rejected argument and its value.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("cycle: %s %v %s", e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
