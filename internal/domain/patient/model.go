package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Guardian fields are filled when the
// patient is a minor.
type Patient struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	BirthDate     string    `db:"birth_date" json:"birth_date"`
	Document      string    `db:"document" json:"document"`
	Guardian      *string   `db:"guardian" json:"guardian,omitempty"`
	GuardianPhone *string   `db:"guardian_phone" json:"guardian_phone,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
