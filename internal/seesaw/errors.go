package seesaw

import (
	"errors"
	"fmt"
)

// Domain errors for seesaw operations.
var (
	// ErrOutOfRange indicates a drop outside the bar span.
	ErrOutOfRange = errors.New("seesaw: drop position out of range")

	// ErrCooldownActive indicates a drop arrived inside the rate-limit window.
	ErrCooldownActive = errors.New("seesaw: drop rejected, cooldown active")

	// ErrInvalidWeight indicates a weight outside [1, 10].
	ErrInvalidWeight = errors.New("seesaw: weight out of range")

	// ErrPersistenceRead indicates the saved state could not be decoded.
	ErrPersistenceRead = errors.New("seesaw: saved state unreadable")

	// ErrPersistenceWrite indicates the state could not be persisted.
	ErrPersistenceWrite = errors.New("seesaw: saved state not written")

	// ErrPlayback indicates the drop cue failed to play.
	ErrPlayback = errors.New("seesaw: audio cue failed")

	// ErrClosed indicates a drop after Close.
	ErrClosed = errors.New("seesaw: controller closed")
)

// DropError wraps a rejected drop with the values that were rejected.
type DropError struct {
	Position float64
	Weight   int
	Wrapped  error
}

func (e *DropError) Error() string {
	return fmt.Sprintf("%v (position %.1f, weight %d)", e.Wrapped, e.Position, e.Weight)
}

func (e *DropError) Unwrap() error {
	return e.Wrapped
}
