package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	// DecrementStock atomically takes qty units off a medicine's stock.
	// Returns ErrInsufficientStock when fewer than qty units remain.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	CreateItem(ctx context.Context, item *PrescriptionItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	GetItems(ctx context.Context, prescriptionID uuid.UUID) ([]*PrescriptionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
}
