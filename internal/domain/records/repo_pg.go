package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

func (r *medicalRecordRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const recordCols = `id, patient_id, doctor_id, appointment_id, symptoms,
	diagnosis, treatment, note, visit_date, created_at, updated_at`

func (r *medicalRecordRepoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.AppointmentID, &rec.Symptoms,
		&rec.Diagnosis, &rec.Treatment, &rec.Note, &rec.VisitDate, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *medicalRecordRepoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medical_record (id, patient_id, doctor_id, appointment_id, symptoms,
			diagnosis, treatment, note, visit_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.AppointmentID, rec.Symptoms,
		rec.Diagnosis, rec.Treatment, rec.Note, rec.VisitDate)
	return err
}

func (r *medicalRecordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM medical_record WHERE id = $1`, id))
}

func (r *medicalRecordRepoPG) Update(ctx context.Context, rec *MedicalRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_record SET symptoms=$2, diagnosis=$3, treatment=$4, note=$5,
			visit_date=$6, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Symptoms, rec.Diagnosis, rec.Treatment, rec.Note, rec.VisitDate)
	return err
}

func (r *medicalRecordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medical_record WHERE id = $1`, id)
	return err
}

func (r *medicalRecordRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medical_record WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+recordCols+` FROM medical_record WHERE patient_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}
