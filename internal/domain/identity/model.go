package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MRN       string     `db:"mrn" json:"mrn"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	Email     *string    `db:"email" json:"email,omitempty"`
	Address   *string    `db:"address" json:"address,omitempty"`
	Active    *bool      `db:"active" json:"active,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Code        string     `db:"code" json:"code"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	SpecialtyID *uuid.UUID `db:"specialty_id" json:"specialty_id,omitempty"`
	Title       *string    `db:"title" json:"title,omitempty"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	Email       *string    `db:"email" json:"email,omitempty"`
	Active      *bool      `db:"active" json:"active,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the doctor's display name, with title when present.
func (d *Doctor) FullName() string {
	name := d.FirstName + " " + d.LastName
	if d.Title != nil && *d.Title != "" {
		return *d.Title + " " + name
	}
	return name
}
