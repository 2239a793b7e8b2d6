package pharmacy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TxRunner executes fn inside a storage transaction. Production wiring uses
// db.RunInTx so the prescription, its items, and the stock deductions commit
// or roll back together.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// PassthroughTx runs fn directly, without a transaction.
func PassthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	medicines     MedicineRepository
	prescriptions PrescriptionRepository
	runTx         TxRunner
}

func NewService(medicines MedicineRepository, prescriptions PrescriptionRepository, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = PassthroughTx
	}
	return &Service{medicines: medicines, prescriptions: prescriptions, runTx: runTx}
}

// -- Medicine --

func (s *Service) CreateMedicine(ctx context.Context, m *Medicine) error {
	if m.Code == "" {
		return fmt.Errorf("code is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if m.UnitPriceCents < 0 {
		return fmt.Errorf("unit_price_cents must not be negative")
	}
	if m.StockQty < 0 {
		return fmt.Errorf("stock_qty must not be negative")
	}
	if m.Active == nil {
		active := true
		m.Active = &active
	}
	return s.medicines.Create(ctx, m)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if m.UnitPriceCents < 0 || m.StockQty < 0 {
		return fmt.Errorf("price and stock must not be negative")
	}
	return s.medicines.Update(ctx, m)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.List(ctx, limit, offset)
}

// -- Prescription --

// CreatePrescription writes the prescription, its items, and the matching
// stock deductions in one transaction. Any shortage aborts the whole thing
// with ErrInsufficientStock.
func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if p.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("prescription needs at least one item")
	}
	for _, item := range p.Items {
		if item.MedicineID == uuid.Nil {
			return fmt.Errorf("item medicine_id is required")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
	}

	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.prescriptions.Create(ctx, p); err != nil {
			return err
		}
		for _, item := range p.Items {
			item.PrescriptionID = p.ID
			if err := s.prescriptions.CreateItem(ctx, item); err != nil {
				return err
			}
			if err := s.medicines.DecrementStock(ctx, item.MedicineID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.prescriptions.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return p, nil
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	return s.prescriptions.Delete(ctx, id)
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.ListByPatient(ctx, patientID, limit, offset)
}
