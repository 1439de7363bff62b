package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agenda/agenda/pkg/calendar"
)

type Service struct {
	rules Repository
}

func NewService(rules Repository) *Service {
	return &Service{rules: rules}
}

// CreateInput carries the fields of a rule-creation request. Date is only
// meaningful for one-off rules, Weekday only for recurring ones.
type CreateInput struct {
	Kind    string `json:"kind"`
	Date    string `json:"date"`
	Weekday int    `json:"weekday"`
	Time    string `json:"time"`
}

// BatchInput creates many rules sharing one kind and date/weekday from a
// list of times, the practitioner portal's "09:00, 10:00, 11:00" shortcut.
type BatchInput struct {
	Kind    string   `json:"kind"`
	Date    string   `json:"date"`
	Weekday int      `json:"weekday"`
	Times   []string `json:"times"`
}

func (s *Service) CreateRule(ctx context.Context, in CreateInput) (*Rule, error) {
	r, err := buildRule(in)
	if err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateBatch validates and creates each time independently; one malformed
// time does not reject the rest. It returns the created rules and the number
// of times attempted, so callers can report "2 of 3 created".
func (s *Service) CreateBatch(ctx context.Context, in BatchInput) ([]*Rule, int, error) {
	if len(in.Times) == 0 {
		return nil, 0, fmt.Errorf("%w: no times given", ErrInvalidRule)
	}

	var created []*Rule
	for _, t := range in.Times {
		r, err := buildRule(CreateInput{
			Kind:    in.Kind,
			Date:    in.Date,
			Weekday: in.Weekday,
			Time:    strings.TrimSpace(t),
		})
		if err != nil {
			continue
		}
		if err := s.rules.Create(ctx, r); err != nil {
			continue
		}
		created = append(created, r)
	}
	return created, len(in.Times), nil
}

func (s *Service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.rules.Delete(ctx, id)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Rule, error) {
	return s.rules.SetActive(ctx, id, active)
}

func (s *Service) ListRules(ctx context.Context) ([]*Rule, error) {
	return s.rules.List(ctx)
}

// TimesForWeekday reports the clock times templated by active recurring
// rules for the given weekday (1=Monday .. 7=Sunday).
func (s *Service) TimesForWeekday(ctx context.Context, weekday int) ([]string, error) {
	if weekday < 1 || weekday > 7 {
		return nil, fmt.Errorf("%w: weekday %d out of range 1..7", ErrInvalidRule, weekday)
	}
	return s.rules.ActiveTimesForWeekday(ctx, weekday)
}

// TimesForDate reports the clock times templated by active one-off rules
// bound to the given literal date.
func (s *Service) TimesForDate(ctx context.Context, date string) ([]string, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return s.rules.ActiveTimesForDate(ctx, date)
}

func buildRule(in CreateInput) (*Rule, error) {
	if !calendar.ValidClock(in.Time) {
		return nil, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidRule, in.Time)
	}

	r := &Rule{Kind: in.Kind, Time: in.Time, Active: true}
	switch in.Kind {
	case KindOneOff:
		if in.Date == "" {
			return nil, fmt.Errorf("%w: date is required for a one-off rule", ErrInvalidRule)
		}
		if _, err := calendar.ParseDate(in.Date); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		date := in.Date
		r.Date = &date
	case KindRecurring:
		if in.Weekday < 1 || in.Weekday > 7 {
			return nil, fmt.Errorf("%w: weekday is required for a recurring rule (1=Monday .. 7=Sunday)", ErrInvalidRule)
		}
		weekday := in.Weekday
		r.Weekday = &weekday
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, in.Kind)
	}
	return r, nil
}
