package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/auditlog"
)

// Ledger is the slice of the appointment ledger the orchestrator writes
// through. Its Create owns the double-booking conflict check.
type Ledger interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

// Service is the transactional booking surface: claim, cancel, reschedule.
type Service struct {
	ledger Ledger
	audit  auditlog.Repository
	log    zerolog.Logger
}

func NewService(ledger Ledger, audit auditlog.Repository, log zerolog.Logger) *Service {
	return &Service{ledger: ledger, audit: audit, log: log}
}

// Claim books a slot. The ledger's conflict check is the sole authority on
// occupancy; the month resolver is deliberately not re-run here, since that
// would only reintroduce the race it cannot close. ErrSlotTaken surfaces to
// the caller unchanged.
func (s *Service) Claim(ctx context.Context, patientID uuid.UUID, date, timeStr string) (*appointment.Appointment, error) {
	a := &appointment.Appointment{
		PatientID:     patientID,
		Date:          date,
		Time:          timeStr,
		Status:        appointment.StatusScheduled,
		PaymentStatus: appointment.PaymentPending,
	}
	if err := s.ledger.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Cancel removes the appointment, which frees its slot for future resolver
// queries: occupancy is derived, so there is no separate release step.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	deleted, err := s.ledger.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, deleted, auditlog.ActionCancelled, nil)
	return deleted, nil
}

// Reschedule releases the old slot and claims the new one, carrying the
// patient and payment status over. This is a compensating transaction, not
// an atomic one: when the new claim fails the original appointment is
// recreated, and only if that recreation also fails (the old slot was
// re-occupied in the gap) does the operation escalate to
// ErrCompensationFailed.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newDate, newTime string) (*appointment.Appointment, error) {
	old, err := s.ledger.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	next := &appointment.Appointment{
		PatientID:     old.PatientID,
		Date:          newDate,
		Time:          newTime,
		Status:        appointment.StatusScheduled,
		PaymentStatus: old.PaymentStatus,
	}
	if err := s.ledger.Create(ctx, next); err != nil {
		restore := *old
		if rerr := s.ledger.Create(ctx, &restore); rerr != nil {
			s.log.Error().Err(rerr).
				Str("appointment_id", old.ID.String()).
				Str("slot", old.Date+" "+old.Time).
				Msg("reschedule rollback failed")
			return nil, fmt.Errorf("%w: claim of %s %s failed (%v) and original slot %s %s could not be restored (%v)",
				ErrCompensationFailed, newDate, newTime, err, old.Date, old.Time, rerr)
		}
		return nil, err
	}

	detail := fmt.Sprintf("moved from %s %s to %s %s", old.Date, old.Time, newDate, newTime)
	s.record(ctx, old, auditlog.ActionRescheduled, &detail)
	return next, nil
}

// record appends an audit entry. Best effort: a failed write is logged and
// never fails the booking operation it trails.
func (s *Service) record(ctx context.Context, a *appointment.Appointment, action string, detail *string) {
	e := &auditlog.Entry{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		Date:          a.Date,
		Time:          a.Time,
		Action:        action,
		Detail:        detail,
	}
	if err := s.audit.Create(ctx, e); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("audit log write failed")
	}
}
