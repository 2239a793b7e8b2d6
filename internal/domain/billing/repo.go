package billing

import (
	"context"

	"github.com/google/uuid"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	CreateItem(ctx context.Context, item *InvoiceLineItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetItems(ctx context.Context, invoiceID uuid.UUID) ([]*InvoiceLineItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, issued bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error)
}
