package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the appointment, failing with ErrSlotTaken when an
	// active appointment already holds the same (date, time). The conflict
	// check and the insert are one atomic unit; implementations must not
	// read-then-write without mutual exclusion.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	// Delete removes the appointment and returns the removed record, so
	// callers can recreate it to roll back a failed reschedule.
	Delete(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// OccupiedTimes returns the times on the given date held by active
	// (scheduled or confirmed) appointments.
	OccupiedTimes(ctx context.Context, date string) ([]string, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
}
