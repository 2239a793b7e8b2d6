package pharmacy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockMedicineRepo struct {
	medicines map[uuid.UUID]*Medicine
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{medicines: make(map[uuid.UUID]*Medicine)}
}

func (m *mockMedicineRepo) Create(_ context.Context, med *Medicine) error {
	med.ID = uuid.New()
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	med, ok := m.medicines[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return med, nil
}

func (m *mockMedicineRepo) Update(_ context.Context, med *Medicine) error {
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.medicines, id)
	return nil
}

func (m *mockMedicineRepo) List(_ context.Context, limit, offset int) ([]*Medicine, int, error) {
	var items []*Medicine
	for _, med := range m.medicines {
		items = append(items, med)
	}
	return items, len(items), nil
}

func (m *mockMedicineRepo) DecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	med, ok := m.medicines[id]
	if !ok || med.StockQty < qty {
		return fmt.Errorf("%w: medicine %s, requested %d", ErrInsufficientStock, id, qty)
	}
	med.StockQty -= qty
	return nil
}

type mockPrescriptionRepo struct {
	prescriptions map[uuid.UUID]*Prescription
	items         []*PrescriptionItem
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{prescriptions: make(map[uuid.UUID]*Prescription)}
}

func (m *mockPrescriptionRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	m.prescriptions[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) CreateItem(_ context.Context, item *PrescriptionItem) error {
	item.ID = uuid.New()
	m.items = append(m.items, item)
	return nil
}

func (m *mockPrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPrescriptionRepo) GetItems(_ context.Context, prescriptionID uuid.UUID) ([]*PrescriptionItem, error) {
	var items []*PrescriptionItem
	for _, item := range m.items {
		if item.PrescriptionID == prescriptionID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockPrescriptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.prescriptions, id)
	return nil
}

func (m *mockPrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockMedicineRepo, *mockPrescriptionRepo) {
	mr := newMockMedicineRepo()
	pr := newMockPrescriptionRepo()
	return NewService(mr, pr, PassthroughTx), mr, pr
}

func addMedicine(t *testing.T, svc *Service, code string, stock int) *Medicine {
	t.Helper()
	m := &Medicine{Code: code, Name: code, Unit: "tablet", UnitPriceCents: 500, StockQty: stock}
	if err := svc.CreateMedicine(context.Background(), m); err != nil {
		t.Fatalf("CreateMedicine(%s): %v", code, err)
	}
	return m
}

func TestCreateMedicine_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.CreateMedicine(context.Background(), &Medicine{Name: "x", Unit: "ml"}); err == nil {
		t.Error("missing code must be rejected")
	}
	if err := svc.CreateMedicine(context.Background(), &Medicine{Code: "X", Name: "x", Unit: "ml", StockQty: -1}); err == nil {
		t.Error("negative stock must be rejected")
	}

	m := addMedicine(t, svc, "AMOX-500", 100)
	if m.Active == nil || !*m.Active {
		t.Error("medicine should default to active")
	}
}

func TestCreatePrescription_DeductsStock(t *testing.T) {
	svc, medRepo, _ := newTestService()
	amox := addMedicine(t, svc, "AMOX-500", 100)
	ibup := addMedicine(t, svc, "IBUP-400", 50)

	dosage := "1 tablet every 8h"
	p := &Prescription{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Items: []*PrescriptionItem{
			{MedicineID: amox.ID, Quantity: 21, Dosage: &dosage},
			{MedicineID: ibup.ID, Quantity: 10},
		},
	}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("CreatePrescription: %v", err)
	}

	if got := medRepo.medicines[amox.ID].StockQty; got != 79 {
		t.Errorf("amoxicillin stock = %d, want 79", got)
	}
	if got := medRepo.medicines[ibup.ID].StockQty; got != 40 {
		t.Errorf("ibuprofen stock = %d, want 40", got)
	}
	for _, item := range p.Items {
		if item.PrescriptionID != p.ID {
			t.Error("item not linked to prescription")
		}
	}
}

func TestCreatePrescription_InsufficientStock(t *testing.T) {
	svc, _, _ := newTestService()
	amox := addMedicine(t, svc, "AMOX-500", 5)

	p := &Prescription{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Items:     []*PrescriptionItem{{MedicineID: amox.ID, Quantity: 21}},
	}
	err := svc.CreatePrescription(context.Background(), p)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestCreatePrescription_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	med := addMedicine(t, svc, "AMOX-500", 10)

	cases := []struct {
		name string
		p    Prescription
	}{
		{"missing patient", Prescription{DoctorID: uuid.New(), Items: []*PrescriptionItem{{MedicineID: med.ID, Quantity: 1}}}},
		{"missing doctor", Prescription{PatientID: uuid.New(), Items: []*PrescriptionItem{{MedicineID: med.ID, Quantity: 1}}}},
		{"no items", Prescription{PatientID: uuid.New(), DoctorID: uuid.New()}},
		{"zero quantity", Prescription{PatientID: uuid.New(), DoctorID: uuid.New(), Items: []*PrescriptionItem{{MedicineID: med.ID, Quantity: 0}}}},
	}
	for _, tc := range cases {
		p := tc.p
		if err := svc.CreatePrescription(context.Background(), &p); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestGetPrescription_LoadsItems(t *testing.T) {
	svc, _, _ := newTestService()
	med := addMedicine(t, svc, "AMOX-500", 100)

	p := &Prescription{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Items:     []*PrescriptionItem{{MedicineID: med.ID, Quantity: 3}},
	}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("CreatePrescription: %v", err)
	}

	got, err := svc.GetPrescription(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetPrescription: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].MedicineID != med.ID {
		t.Errorf("items not loaded: %+v", got.Items)
	}
}
