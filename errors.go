package bytebuf

import (
	"errors"
	"fmt"
)

var (
	// ErrBoundsViolation is returned when a checked read touches an offset
	// outside the readable range.
	ErrBoundsViolation = errors.New("bounds violation")

	// ErrCapacityExceeded is returned when a write cannot be satisfied by a
	// fixed (non-elastic) buffer.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrUnsupportedAddressing is returned when a store that cannot expose a
	// raw address is asked for one.
	ErrUnsupportedAddressing = errors.New("store does not expose a raw address")

	// ErrLifecycleMisuse is returned on reservation protocol violations:
	// release without a matching reserve, or reserving an already released
	// store. These are programming defects, never retried.
	ErrLifecycleMisuse = errors.New("reservation lifecycle misuse")

	// ErrResizeInvalid is returned when an elastic growth target is negative
	// or overflows. It is rejected before any allocation is attempted.
	ErrResizeInvalid = errors.New("invalid resize target")
)

// ErrOutOfBounds describes a checked access outside the valid range.
//
// It unwraps to ErrBoundsViolation so callers can classify it with errors.Is.
type ErrOutOfBounds struct {
	Offset   int64
	Length   int64
	Capacity int64
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("offset %d length %d outside [0, %d)", e.Offset, e.Length, e.Capacity)
}

func (e *ErrOutOfBounds) Unwrap() error { return ErrBoundsViolation }

// ErrOverflow describes a write past the write limit of a view.
//
// It unwraps to ErrCapacityExceeded.
type ErrOverflow struct {
	Offset int64
	Length int64
	Limit  int64
}

func (e *ErrOverflow) Error() string {
	return fmt.Sprintf("write at %d length %d exceeds limit %d", e.Offset, e.Length, e.Limit)
}

func (e *ErrOverflow) Unwrap() error { return ErrCapacityExceeded }

func errReleased(what string) error {
	return fmt.Errorf("%w: %s used after release", ErrLifecycleMisuse, what)
}
