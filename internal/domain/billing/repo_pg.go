package billing

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

type invoiceRepoPG struct{ pool *pgxpool.Pool }

func NewInvoiceRepoPG(pool *pgxpool.Pool) InvoiceRepository { return &invoiceRepoPG{pool: pool} }

func (r *invoiceRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const invoiceCols = `id, patient_id, appointment_id, status, currency, total_cents, issued_at, note, created_at, updated_at`

func (r *invoiceRepoPG) scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.AppointmentID, &inv.Status, &inv.Currency,
		&inv.TotalCents, &inv.IssuedAt, &inv.Note, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *invoiceRepoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoice (id, patient_id, appointment_id, status, currency, total_cents, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		inv.ID, inv.PatientID, inv.AppointmentID, inv.Status, inv.Currency, inv.TotalCents, inv.Note)
	return err
}

func (r *invoiceRepoPG) CreateItem(ctx context.Context, item *InvoiceLineItem) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoice_line_item (id, invoice_id, description, quantity, unit_price_cents, amount_cents)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPriceCents, item.AmountCents)
	return err
}

func (r *invoiceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return r.scanInvoice(r.conn(ctx).QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE id = $1`, id))
}

func (r *invoiceRepoPG) GetItems(ctx context.Context, invoiceID uuid.UUID) ([]*InvoiceLineItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price_cents, amount_cents
		FROM invoice_line_item WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*InvoiceLineItem
	for rows.Next() {
		var item InvoiceLineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPriceCents, &item.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

// UpdateStatus stamps issued_at the first time an invoice leaves draft.
func (r *invoiceRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string, issued bool) error {
	if issued {
		_, err := r.conn(ctx).Exec(ctx, `
			UPDATE invoice SET status=$2, issued_at=NOW(), updated_at=NOW() WHERE id = $1`, id, status)
		return err
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoice SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *invoiceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoice WHERE id = $1`, id)
	return err
}

func (r *invoiceRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM invoice WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, nil
}
