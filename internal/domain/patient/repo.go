package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// GetByEmail returns ErrNotFound when no patient carries the email.
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
