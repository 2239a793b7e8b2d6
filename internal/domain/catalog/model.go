package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Specialty maps to the specialty table.
type Specialty struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Active    *bool     `db:"active" json:"active,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClinicalService maps to the clinical_service table. Price is stored in
// cents to avoid floating point drift.
type ClinicalService struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Code            string    `db:"code" json:"code"`
	Name            string    `db:"name" json:"name"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Active          *bool     `db:"active" json:"active,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Room maps to the room table.
type Room struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Floor     *string   `db:"floor" json:"floor,omitempty"`
	Active    *bool     `db:"active" json:"active,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
