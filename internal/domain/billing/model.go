package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when an invoice status change is not
// allowed by the lifecycle.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// Invoice statuses.
const (
	StatusDraft     = "draft"
	StatusIssued    = "issued"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusDraft: true, StatusIssued: true, StatusPaid: true, StatusCancelled: true,
}

// statusTransitions encodes the invoice lifecycle: draft -> issued -> paid,
// with cancellation possible until payment.
var statusTransitions = map[string][]string{
	StatusDraft:  {StatusIssued, StatusCancelled},
	StatusIssued: {StatusPaid, StatusCancelled},
}

// CanTransition reports whether an invoice may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Invoice maps to the invoice table. Amounts are stored in cents. Line items
// are loaded separately.
type Invoice struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	PatientID     uuid.UUID          `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID         `db:"appointment_id" json:"appointment_id,omitempty"`
	Status        string             `db:"status" json:"status"`
	Currency      string             `db:"currency" json:"currency"`
	TotalCents    int64              `db:"total_cents" json:"total_cents"`
	IssuedAt      *time.Time         `db:"issued_at" json:"issued_at,omitempty"`
	Note          *string            `db:"note" json:"note,omitempty"`
	Items         []*InvoiceLineItem `db:"-" json:"items,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// InvoiceLineItem maps to the invoice_line_item table.
type InvoiceLineItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InvoiceID      uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Description    string    `db:"description" json:"description"`
	Quantity       int       `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
}
