package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenda/agenda/pkg/calendar"
)

type Service struct {
	appts Repository
}

func NewService(appts Repository) *Service {
	return &Service{appts: appts}
}

// Create claims a slot for a patient. The conflict check against active
// appointments happens inside the repository insert, so it also serves as
// the last word on double booking under concurrent claims.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	}
	if _, err := calendar.ParseDate(a.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !calendar.ValidClock(a.Time) {
		return fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidInput, a.Time)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, a.Status)
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	if !validPaymentStatuses[a.PaymentStatus] {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, a.PaymentStatus)
	}
	return s.appts.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// Delete removes the appointment and returns the removed record. Deletion is
// how a slot is released; there is no stored cancelled state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.Delete(ctx, id)
}

// UpdateInput is a partial update: nil fields are left untouched.
type UpdateInput struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	MeetingLink   *string `json:"meeting_link"`
	Notes         *string `json:"notes"`
	Report        *string `json:"report"`
}

// allowedTransitions encodes the status state machine: an active appointment
// may be confirmed, completed or marked a no-show; completed and no-show are
// terminal.
var allowedTransitions = map[string]map[string]bool{
	StatusScheduled: {StatusConfirmed: true, StatusCompleted: true, StatusNoShow: true},
	StatusConfirmed: {StatusCompleted: true, StatusNoShow: true},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// Update applies a partial update, validating the closed enums and the
// status state machine, and always refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != a.Status {
		if !validStatuses[*in.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
		}
		if !allowedTransitions[a.Status][*in.Status] {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, *in.Status)
		}
		a.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		if !validPaymentStatuses[*in.PaymentStatus] {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *in.PaymentStatus)
		}
		a.PaymentStatus = *in.PaymentStatus
	}
	if in.MeetingLink != nil {
		a.MeetingLink = in.MeetingLink
	}
	if in.Notes != nil {
		a.Notes = in.Notes
	}
	if in.Report != nil {
		a.Report = in.Report
	}

	a.UpdatedAt = time.Now()
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// OccupiedTimes is the authoritative occupancy query the slot resolver
// subtracts from templated times.
func (s *Service) OccupiedTimes(ctx context.Context, date string) ([]string, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.appts.OccupiedTimes(ctx, date)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.List(ctx, limit, offset)
}
