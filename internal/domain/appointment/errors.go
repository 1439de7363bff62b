package appointment

import "errors"

var (
	// ErrSlotTaken is returned when a create targets a (date, time) pair
	// already occupied by a scheduled or confirmed appointment. It is the
	// conflict half of the double-booking invariant and is surfaced to
	// callers unchanged.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrNotFound is returned when an operation targets a nonexistent
	// appointment id.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidInput marks malformed appointment data: bad date or time,
	// a missing patient, or a status/payment value outside the closed enums.
	ErrInvalidInput = errors.New("invalid appointment input")

	// ErrInvalidTransition is returned when a status update violates the
	// state machine (e.g. reopening a completed appointment).
	ErrInvalidTransition = errors.New("invalid status transition")
)
