package booking

import "errors"

var (
	// ErrInvalidDate marks a malformed date or month in a resolve request.
	ErrInvalidDate = errors.New("invalid date")

	// ErrCompensationFailed is returned when a reschedule's claim failed
	// AND the original appointment could not be restored, i.e. its slot was
	// re-occupied during the gap. The patient is left without an
	// appointment and manual reconciliation is needed; callers must
	// surface this loudly, never fold it into a generic failure.
	ErrCompensationFailed = errors.New("reschedule rollback failed, manual reconciliation required")
)
