package availability

import "errors"

var (
	// ErrInvalidRule marks malformed rule input: a missing date or weekday
	// for the kind, a weekday outside 1..7, or a time that is not HH:MM.
	// Storage is never mutated when it is returned.
	ErrInvalidRule = errors.New("invalid availability rule")

	// ErrRuleNotFound is returned when toggling a rule that does not exist.
	ErrRuleNotFound = errors.New("availability rule not found")
)
