package records

import (
	"context"

	"github.com/google/uuid"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, rec *MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	Update(ctx context.Context, rec *MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error)
}
