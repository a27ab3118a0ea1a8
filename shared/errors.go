package shared

import "errors"

var (
	// ErrInvalidInput indicates an operation received an empty or malformed
	// sequence.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientHistory indicates the available series is too short for
	// the requested reference window or search range.
	ErrInsufficientHistory = errors.New("insufficient history")
)
