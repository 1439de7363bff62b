package availability

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const ruleCols = `id, kind, slot_date, weekday, slot_time, active, created_at`

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	err := row.Scan(&r.ID, &r.Kind, &r.Date, &r.Weekday, &r.Time, &r.Active, &r.CreatedAt)
	return &r, err
}

func (p *repoPG) Create(ctx context.Context, r *Rule) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return p.pool.QueryRow(ctx, `
		INSERT INTO availability_rule (id, kind, slot_date, weekday, slot_time, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		r.ID, r.Kind, r.Date, r.Weekday, r.Time, r.Active).Scan(&r.CreatedAt)
}

func (p *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM availability_rule WHERE id = $1`, id)
	return err
}

func (p *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Rule, error) {
	r, err := scanRule(p.pool.QueryRow(ctx, `
		UPDATE availability_rule SET active = $2 WHERE id = $1
		RETURNING `+ruleCols, id, active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (p *repoPG) List(ctx context.Context) ([]*Rule, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+ruleCols+` FROM availability_rule ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (p *repoPG) ActiveTimesForWeekday(ctx context.Context, weekday int) ([]string, error) {
	return p.queryTimes(ctx, `
		SELECT slot_time FROM availability_rule
		WHERE kind = 'recurring' AND active AND weekday = $1`, weekday)
}

func (p *repoPG) ActiveTimesForDate(ctx context.Context, date string) ([]string, error) {
	return p.queryTimes(ctx, `
		SELECT slot_time FROM availability_rule
		WHERE kind = 'one_off' AND active AND slot_date = $1`, date)
}

func (p *repoPG) queryTimes(ctx context.Context, sql string, arg interface{}) ([]string, error) {
	rows, err := p.pool.Query(ctx, sql, arg)
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
