package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

// mockRepo guards check-then-insert with a mutex, mirroring the atomicity
// the partial unique index provides in Postgres.
type mockRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.appts {
		if other.Date == a.Date && other.Time == a.Time && other.IsActive() {
			return ErrSlotTaken
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.appts, id)
	return a, nil
}

func (m *mockRepo) OccupiedTimes(_ context.Context, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var times []string
	for _, a := range m.appts {
		if a.Date == date && a.IsActive() {
			times = append(times, a.Time)
		}
	}
	return times, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*Appointment
	for _, a := range m.appts {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*Appointment
	for _, a := range m.appts {
		result = append(result, a)
	}
	return result, len(result), nil
}

// -- Tests --

func TestCreate_Defaults(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default status scheduled, got %s", a.Status)
	}
	if a.PaymentStatus != PaymentPending {
		t.Errorf("expected default payment pending, got %s", a.PaymentStatus)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []struct {
		name string
		a    *Appointment
	}{
		{"missing patient", &Appointment{Date: "2025-06-10", Time: "09:00"}},
		{"bad date", &Appointment{PatientID: uuid.New(), Date: "10/06/2025", Time: "09:00"}},
		{"bad time", &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "9h"}},
		{"unknown status", &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00", Status: "booked"}},
		{"unknown payment", &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00", PaymentStatus: "refunded"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tc.a); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	svc := NewService(newMockRepo())
	first := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	if err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	if err := svc.Create(context.Background(), second); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCreate_InactiveDoesNotBlock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	done := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00", Status: StatusCompleted}
	if err := svc.Create(context.Background(), done); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Errorf("expected completed appointment not to occupy the slot, got %v", err)
	}
}

func TestDelete_ReturnsRecord(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	svc.Create(context.Background(), a)

	deleted, err := svc.Delete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.ID != a.ID || deleted.Time != "09:00" {
		t.Error("expected the removed record back")
	}
	if _, err := svc.Get(context.Background(), a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestUpdate_ConfirmWithMeetingLink(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	svc.Create(context.Background(), a)

	before := a.UpdatedAt
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{
		Status:      strPtr(StatusConfirmed),
		MeetingLink: strPtr("https://meet.example/abc"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", updated.Status)
	}
	if updated.MeetingLink == nil || *updated.MeetingLink != "https://meet.example/abc" {
		t.Error("expected meeting link to be set")
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to be refreshed")
	}
}

func TestUpdate_TransitionMatrix(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusNoShow, StatusScheduled, false},
		{StatusConfirmed, StatusScheduled, false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			svc := NewService(newMockRepo())
			a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00", Status: tc.from}
			svc.Create(context.Background(), a)

			_, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: strPtr(tc.to)})
			if tc.ok && err != nil {
				t.Errorf("expected transition to succeed, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestUpdate_SameStatusIsNoOp(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	svc.Create(context.Background(), a)

	if _, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: strPtr(StatusScheduled)}); err != nil {
		t.Errorf("expected same-status update to pass, got %v", err)
	}
}

func TestUpdate_PaymentStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"}
	svc.Create(context.Background(), a)

	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{PaymentStatus: strPtr(PaymentPaid)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PaymentStatus != PaymentPaid {
		t.Errorf("expected paid, got %s", updated.PaymentStatus)
	}

	_, err = svc.Update(context.Background(), a.ID, UpdateInput{PaymentStatus: strPtr("chargeback")})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOccupiedTimes(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.Create(context.Background(), &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "09:00"})
	svc.Create(context.Background(), &Appointment{PatientID: uuid.New(), Date: "2025-06-10", Time: "11:00", Status: StatusCompleted})
	svc.Create(context.Background(), &Appointment{PatientID: uuid.New(), Date: "2025-06-11", Time: "09:00"})

	times, err := svc.OccupiedTimes(context.Background(), "2025-06-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(times) != 1 || times[0] != "09:00" {
		t.Errorf("expected only the active 09:00 slot, got %v", times)
	}
}
