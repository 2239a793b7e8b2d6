package identity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.MRN == "" {
		p.MRN = "MRN-" + strings.ToUpper(p.ID.String()[:8])
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPatientRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		if name, ok := params["name"]; ok {
			if !strings.Contains(strings.ToLower(p.FirstName+" "+p.LastName), strings.ToLower(name)) {
				continue
			}
		}
		items = append(items, p)
	}
	return items, len(items), nil
}

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	if d.Code == "" {
		d.Code = "DOC-" + strings.ToUpper(d.ID.String()[:8])
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByCode(_ context.Context, code string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockDoctorRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorRepo) ListBySpecialty(_ context.Context, specialtyID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.doctors {
		if d.SpecialtyID != nil && *d.SpecialtyID == specialtyID {
			items = append(items, d)
		}
	}
	return items, len(items), nil
}

func (m *mockDoctorRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.doctors {
		items = append(items, d)
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockPatientRepo, *mockDoctorRepo) {
	pr := newMockPatientRepo()
	dr := newMockDoctorRepo()
	return NewService(pr, dr), pr, dr
}

func TestRegisterPatient(t *testing.T) {
	svc, repo, _ := newTestService()

	p := &Patient{FirstName: "Ana", LastName: "Silva"}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("id not assigned")
	}
	if p.MRN == "" {
		t.Error("mrn not generated")
	}
	if p.Active == nil || !*p.Active {
		t.Error("patient should default to active")
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected 1 stored patient, got %d", len(repo.patients))
	}
}

func TestRegisterPatient_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.RegisterPatient(context.Background(), &Patient{LastName: "Silva"}); err == nil {
		t.Error("missing first_name must be rejected")
	}
	if err := svc.RegisterPatient(context.Background(), &Patient{FirstName: "Ana"}); err == nil {
		t.Error("missing last_name must be rejected")
	}

	bad := "sometimes"
	err := svc.RegisterPatient(context.Background(), &Patient{FirstName: "Ana", LastName: "Silva", Gender: &bad})
	if err == nil {
		t.Error("invalid gender must be rejected")
	}
}

func TestGetPatientByMRN(t *testing.T) {
	svc, _, _ := newTestService()

	p := &Patient{FirstName: "Ana", LastName: "Silva", MRN: "MRN-TEST0001"}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}

	got, err := svc.GetPatientByMRN(context.Background(), "MRN-TEST0001")
	if err != nil {
		t.Fatalf("GetPatientByMRN: %v", err)
	}
	if got.ID != p.ID {
		t.Error("wrong patient returned")
	}
}

func TestUpdatePatient_RequiresNames(t *testing.T) {
	svc, _, _ := newTestService()

	p := &Patient{FirstName: "Ana", LastName: "Silva"}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}

	p.FirstName = ""
	if err := svc.UpdatePatient(context.Background(), p); err == nil {
		t.Error("blank first_name on update must be rejected")
	}
}

func TestRegisterDoctor(t *testing.T) {
	svc, _, repo := newTestService()

	title := "Dr."
	d := &Doctor{FirstName: "Joao", LastName: "Santos", Title: &title}
	if err := svc.RegisterDoctor(context.Background(), d); err != nil {
		t.Fatalf("RegisterDoctor: %v", err)
	}
	if d.Code == "" {
		t.Error("code not generated")
	}
	if d.Active == nil || !*d.Active {
		t.Error("doctor should default to active")
	}
	if got := d.FullName(); got != "Dr. Joao Santos" {
		t.Errorf("FullName() = %q", got)
	}
	if len(repo.doctors) != 1 {
		t.Errorf("expected 1 stored doctor, got %d", len(repo.doctors))
	}
}

func TestListDoctorsBySpecialty(t *testing.T) {
	svc, _, _ := newTestService()

	cardio := uuid.New()
	derm := uuid.New()
	for _, specialtyID := range []uuid.UUID{cardio, cardio, derm} {
		s := specialtyID
		d := &Doctor{FirstName: "A", LastName: "B", SpecialtyID: &s}
		if err := svc.RegisterDoctor(context.Background(), d); err != nil {
			t.Fatalf("RegisterDoctor: %v", err)
		}
	}

	items, total, err := svc.ListDoctorsBySpecialty(context.Background(), cardio, 20, 0)
	if err != nil {
		t.Fatalf("ListDoctorsBySpecialty: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 cardiology doctors, got %d", total)
	}
}
