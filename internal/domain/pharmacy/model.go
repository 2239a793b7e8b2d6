package pharmacy

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when a prescription asks for more units
// than a medicine has in stock. The whole prescription rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

// Medicine maps to the medicine table. Prices are stored in cents.
type Medicine struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	Unit           string    `db:"unit" json:"unit"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	StockQty       int       `db:"stock_qty" json:"stock_qty"`
	Active         *bool     `db:"active" json:"active,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Prescription maps to the prescription table. Items are loaded separately.
type Prescription struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	PatientID uuid.UUID           `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID           `db:"doctor_id" json:"doctor_id"`
	RecordID  *uuid.UUID          `db:"record_id" json:"record_id,omitempty"`
	Note      *string             `db:"note" json:"note,omitempty"`
	Items     []*PrescriptionItem `db:"-" json:"items,omitempty"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// PrescriptionItem maps to the prescription_item table.
type PrescriptionItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	MedicineID     uuid.UUID `db:"medicine_id" json:"medicine_id"`
	Quantity       int       `db:"quantity" json:"quantity"`
	Dosage         *string   `db:"dosage" json:"dosage,omitempty"`
}
