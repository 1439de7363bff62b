package auditlog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO cancellation_log (id, appointment_id, patient_id, visit_date, visit_time, action, detail)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING recorded`,
		e.ID, e.AppointmentID, e.PatientID, e.Date, e.Time, e.Action, e.Detail).Scan(&e.Recorded)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cancellation_log`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, patient_id, visit_date, visit_time, action, detail, recorded
		FROM cancellation_log ORDER BY recorded DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.PatientID, &e.Date, &e.Time,
			&e.Action, &e.Detail, &e.Recorded); err != nil {
			return nil, 0, err
		}
		items = append(items, &e)
	}
	return items, total, rows.Err()
}
