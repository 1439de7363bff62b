package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Stored appointment statuses. Cancellation is not a stored status: a
// cancelled appointment is deleted, which is what frees its slot.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// Payment statuses, written by the payment collaborator through the update
// surface. The engine displays them and never derives booking decisions
// from them.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true,
	StatusCompleted: true, StatusNoShow: true,
}

var validPaymentStatuses = map[string]bool{
	PaymentPending: true, PaymentPaid: true, PaymentCancelled: true,
}

// activeStatuses are the statuses that occupy a slot for the double-booking
// check. Completed and no-show appointments keep their history but no longer
// block the calendar.
var activeStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true,
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Date          string    `db:"visit_date" json:"date"`
	Time          string    `db:"visit_time" json:"time"`
	Status        string    `db:"status" json:"status"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	MeetingLink   *string   `db:"meeting_link" json:"meeting_link,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	Report        *string   `db:"report" json:"report,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return activeStatuses[a.Status]
}
