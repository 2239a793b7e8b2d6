package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRecordRepo struct {
	records map[uuid.UUID]*MedicalRecord
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[uuid.UUID]*MedicalRecord)}
}

func (m *mockRecordRepo) Create(_ context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*MedicalRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return rec, nil
}

func (m *mockRecordRepo) Update(_ context.Context, rec *MedicalRecord) error {
	if _, ok := m.records[rec.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRecordRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var items []*MedicalRecord
	for _, rec := range m.records {
		if rec.PatientID == patientID {
			items = append(items, rec)
		}
	}
	return items, len(items), nil
}

func TestCreateRecord(t *testing.T) {
	repo := newMockRecordRepo()
	svc := NewService(repo)

	rec := &MedicalRecord{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Diagnosis: "Seasonal rhinitis",
	}
	if err := svc.CreateRecord(context.Background(), rec); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("id not assigned")
	}
	if rec.VisitDate.IsZero() {
		t.Error("visit date should default to now")
	}
}

func TestCreateRecord_Validation(t *testing.T) {
	svc := NewService(newMockRecordRepo())

	cases := []MedicalRecord{
		{DoctorID: uuid.New(), Diagnosis: "x"},  // missing patient
		{PatientID: uuid.New(), Diagnosis: "x"}, // missing doctor
		{PatientID: uuid.New(), DoctorID: uuid.New()}, // missing diagnosis
	}
	for i, rec := range cases {
		r := rec
		if err := svc.CreateRecord(context.Background(), &r); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestListRecordsByPatient(t *testing.T) {
	repo := newMockRecordRepo()
	svc := NewService(repo)

	patient := uuid.New()
	for i := 0; i < 3; i++ {
		rec := &MedicalRecord{
			PatientID: patient,
			DoctorID:  uuid.New(),
			Diagnosis: "Follow-up",
			VisitDate: time.Now().AddDate(0, 0, -i),
		}
		if err := svc.CreateRecord(context.Background(), rec); err != nil {
			t.Fatalf("CreateRecord: %v", err)
		}
	}
	// A record for someone else must not leak in.
	other := &MedicalRecord{PatientID: uuid.New(), DoctorID: uuid.New(), Diagnosis: "x"}
	if err := svc.CreateRecord(context.Background(), other); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	_, total, err := svc.ListRecordsByPatient(context.Background(), patient, 20, 0)
	if err != nil {
		t.Fatalf("ListRecordsByPatient: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}
