package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Input carries the patient details submitted with a booking.
type Input struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	BirthDate     string  `json:"birth_date"`
	Document      string  `json:"document"`
	Guardian      *string `json:"guardian,omitempty"`
	GuardianPhone *string `json:"guardian_phone,omitempty"`
}

// FindOrCreate returns the patient registered under the email, creating the
// record on first booking. Email is the natural key the booking form keys on.
func (s *Service) FindOrCreate(ctx context.Context, in Input) (*Patient, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	existing, err := s.patients.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if in.Name == "" || in.Phone == "" || in.BirthDate == "" || in.Document == "" {
		return nil, fmt.Errorf("%w: name, phone, birth_date and document are required", ErrInvalidInput)
	}

	p := &Patient{
		Name:          in.Name,
		Email:         email,
		Phone:         in.Phone,
		BirthDate:     in.BirthDate,
		Document:      in.Document,
		Guardian:      in.Guardian,
		GuardianPhone: in.GuardianPhone,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
