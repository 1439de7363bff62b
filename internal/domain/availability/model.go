package availability

import (
	"time"

	"github.com/google/uuid"
)

// Rule kinds. A one-off rule offers a time on a single calendar date; a
// recurring rule offers it on every occurrence of a weekday.
const (
	KindOneOff    = "one_off"
	KindRecurring = "recurring"
)

// Rule maps to the availability_rule table. Exactly one of Date/Weekday is
// set, matching Kind. Rules are never edited in place except for the Active
// flag; inactive rules are kept for history but excluded from resolution.
type Rule struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Date      *string   `db:"slot_date" json:"date,omitempty"`
	Weekday   *int      `db:"weekday" json:"weekday,omitempty"`
	Time      string    `db:"slot_time" json:"time"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
