package recorder

import "errors"

var (
	// ErrReleased rejects operations against a released or releasing recorder.
	ErrReleased = errors.New("recorder is released")
	// ErrAlreadyActive rejects a second start while a recording exists.
	ErrAlreadyActive = errors.New("a recording is already active")
	// ErrInvalidOperation rejects calls that have no applicable lifecycle,
	// such as pausing a recording that already finalized.
	ErrInvalidOperation = errors.New("operation not valid in current state")
	// ErrAlreadyConsumed rejects starting the same pending recording twice.
	ErrAlreadyConsumed = errors.New("pending recording already started")
)
