package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownParam indicates a parameter name not recognized by a
	// Configurable system.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)
