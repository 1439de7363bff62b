package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agenda/agenda/pkg/calendar"
)

// RuleSource is the slice of the availability rule store the resolver reads.
type RuleSource interface {
	TimesForWeekday(ctx context.Context, weekday int) ([]string, error)
	TimesForDate(ctx context.Context, date string) ([]string, error)
}

// OccupancySource is the slice of the appointment ledger the resolver reads.
type OccupancySource interface {
	OccupiedTimes(ctx context.Context, date string) ([]string, error)
}

// Resolver derives the free-slot calendar: templated times (recurring rules
// for the weekday plus one-off rules on the literal date) minus occupied
// times. It is read-only and idempotent; a result may race a concurrent
// claim and show a slot that is taken moments later, which the claim's own
// conflict check resolves.
type Resolver struct {
	rules RuleSource
	appts OccupancySource
	now   func() time.Time
}

func NewResolver(rules RuleSource, appts OccupancySource) *Resolver {
	return &Resolver{rules: rules, appts: appts, now: time.Now}
}

// ResolveMonth maps every bookable date of the month to its free times,
// sorted ascending. Dates with no free times are omitted.
func (r *Resolver) ResolveMonth(ctx context.Context, year int, month time.Month) (map[string][]string, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}

	today := r.now()
	result := make(map[string][]string)
	for _, date := range calendar.MonthDates(year, month) {
		if !calendar.IsBookable(date, today) {
			continue
		}
		free, err := r.freeTimes(ctx, date)
		if err != nil {
			return nil, err
		}
		if len(free) > 0 {
			result[calendar.FormatDate(date)] = free
		}
	}
	return result, nil
}

// ResolveDay returns the free times for a single date. It is the booking
// form's per-day primitive; bookability filtering (past dates, Sundays)
// belongs to the month view that feeds it.
func (r *Resolver) ResolveDay(ctx context.Context, date string) ([]string, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return r.freeTimes(ctx, d)
}

func (r *Resolver) freeTimes(ctx context.Context, date time.Time) ([]string, error) {
	dateStr := calendar.FormatDate(date)

	weekly, err := r.rules.TimesForWeekday(ctx, calendar.WeekdayIndex(date))
	if err != nil {
		return nil, err
	}
	oneOff, err := r.rules.TimesForDate(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	templated := make(map[string]bool, len(weekly)+len(oneOff))
	for _, t := range weekly {
		templated[t] = true
	}
	for _, t := range oneOff {
		templated[t] = true
	}
	if len(templated) == 0 {
		return nil, nil
	}

	occupied, err := r.appts.OccupiedTimes(ctx, dateStr)
	if err != nil {
		return nil, err
	}
	for _, t := range occupied {
		delete(templated, t)
	}

	free := make([]string, 0, len(templated))
	for t := range templated {
		free = append(free, t)
	}
	// HH:MM is fixed-width, so a lexicographic sort is chronological.
	sort.Strings(free)
	return free, nil
}
