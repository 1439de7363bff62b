package auditlog

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)
}
