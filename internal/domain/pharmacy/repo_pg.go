package pharmacy

import (
	"context"
	"fmt"

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

// =========== Medicine Repository ===========

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository { return &medicineRepoPG{pool: pool} }

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const medicineCols = `id, code, name, unit, unit_price_cents, stock_qty, active, created_at, updated_at`

func (r *medicineRepoPG) scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Unit, &m.UnitPriceCents, &m.StockQty,
		&m.Active, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicine (id, code, name, unit, unit_price_cents, stock_qty, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.Code, m.Name, m.Unit, m.UnitPriceCents, m.StockQty, m.Active)
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicine WHERE id = $1`, id))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicine SET code=$2, name=$3, unit=$4, unit_price_cents=$5,
			stock_qty=$6, active=$7, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Code, m.Name, m.Unit, m.UnitPriceCents, m.StockQty, m.Active)
	return err
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicine WHERE id = $1`, id)
	return err
}

func (r *medicineRepoPG) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medicine`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medicineCols+` FROM medicine ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := r.scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

// DecrementStock relies on the stock_qty >= $2 guard so two concurrent
// prescriptions can never drive stock negative.
func (r *medicineRepoPG) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicine SET stock_qty = stock_qty - $2, updated_at=NOW()
		WHERE id = $1 AND stock_qty >= $2`, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: medicine %s, requested %d", ErrInsufficientStock, id, qty)
	}
	return nil
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const prescriptionCols = `id, patient_id, doctor_id, record_id, note, created_at, updated_at`

func (r *prescriptionRepoPG) scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.RecordID, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription (id, patient_id, doctor_id, record_id, note)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.PatientID, p.DoctorID, p.RecordID, p.Note)
	return err
}

func (r *prescriptionRepoPG) CreateItem(ctx context.Context, item *PrescriptionItem) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription_item (id, prescription_id, medicine_id, quantity, dosage)
		VALUES ($1,$2,$3,$4,$5)`,
		item.ID, item.PrescriptionID, item.MedicineID, item.Quantity, item.Dosage)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return r.scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) GetItems(ctx context.Context, prescriptionID uuid.UUID) ([]*PrescriptionItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, prescription_id, medicine_id, quantity, dosage
		FROM prescription_item WHERE prescription_id = $1`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PrescriptionItem
	for rows.Next() {
		var item PrescriptionItem
		if err := rows.Scan(&item.ID, &item.PrescriptionID, &item.MedicineID, &item.Quantity, &item.Dosage); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescription WHERE id = $1`, id)
	return err
}

func (r *prescriptionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
