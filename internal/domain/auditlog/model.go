// Package auditlog keeps an append-only trail of cancellations and
// reschedules. Cancelled appointments are hard-deleted to free their slot,
// so this log is the only history of them; it never participates in the
// occupancy check.
package auditlog

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCancelled   = "cancelled"
	ActionRescheduled = "rescheduled"
)

// Entry maps to the cancellation_log table.
type Entry struct {
	ID            uuid.UUID `db:"id" json:"id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Date          string    `db:"visit_date" json:"date"`
	Time          string    `db:"visit_time" json:"time"`
	Action        string    `db:"action" json:"action"`
	Detail        *string   `db:"detail" json:"detail,omitempty"`
	Recorded      time.Time `db:"recorded" json:"recorded"`
}
