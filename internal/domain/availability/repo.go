package availability

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Rule) error
	// Delete hard-removes a rule. Deleting an id that does not exist is a
	// no-op, so a double-submitted delete stays harmless.
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Rule, error)
	List(ctx context.Context) ([]*Rule, error)
	// ActiveTimesForWeekday returns the times of active recurring rules
	// bound to the given weekday (1=Monday .. 7=Sunday).
	ActiveTimesForWeekday(ctx context.Context, weekday int) ([]string, error)
	// ActiveTimesForDate returns the times of active one-off rules bound to
	// the given literal date.
	ActiveTimesForDate(ctx context.Context, date string) ([]string, error)
}
