package toolkit

import "errors"

var (
	// ErrUnknownOutput is returned when an output id is not part of the
	// current output layout.
	ErrUnknownOutput = errors.New("unknown output")
	// ErrDuplicateLockSurface is returned when a lock already has a
	// surface for the output.
	ErrDuplicateLockSurface = errors.New("output already has a lock surface")
)
