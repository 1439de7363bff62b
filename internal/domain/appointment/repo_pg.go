package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, visit_date, visit_time, status, payment_status,
	meeting_link, notes, report, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.Date, &a.Time, &a.Status, &a.PaymentStatus,
		&a.MeetingLink, &a.Notes, &a.Report, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

// Create relies on the partial unique index over (visit_date, visit_time)
// for active statuses: the conflict check and the insert are a single
// transactional update-if-absent, so two concurrent claims for the same slot
// can never both commit.
func (p *repoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := p.pool.QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, visit_date, visit_time, status,
			payment_status, meeting_link, notes, report)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.Date, a.Time, a.Status,
		a.PaymentStatus, a.MeetingLink, a.Notes, a.Report).Scan(&a.CreatedAt, &a.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlotTaken
	}
	return err
}

func (p *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(p.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (p *repoPG) Update(ctx context.Context, a *Appointment) error {
	err := p.pool.QueryRow(ctx, `
		UPDATE appointment SET status=$2, payment_status=$3, meeting_link=$4,
			notes=$5, report=$6, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Status, a.PaymentStatus, a.MeetingLink, a.Notes, a.Report).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (p *repoPG) Delete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(p.pool.QueryRow(ctx,
		`DELETE FROM appointment WHERE id = $1 RETURNING `+apptCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (p *repoPG) OccupiedTimes(ctx context.Context, date string) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT visit_time FROM appointment
		WHERE visit_date = $1 AND status IN ($2, $3)`,
		date, StatusScheduled, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (p *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return p.list(ctx, total, `
		SELECT `+apptCols+` FROM appointment WHERE patient_id = $1
		ORDER BY visit_date DESC, visit_time DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
}

func (p *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return p.list(ctx, total, `
		SELECT `+apptCols+` FROM appointment
		ORDER BY visit_date DESC, visit_time DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

func (p *repoPG) list(ctx context.Context, total int, sql string, args ...interface{}) ([]*Appointment, int, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
