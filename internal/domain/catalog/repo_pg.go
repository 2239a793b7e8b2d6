package catalog

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

// =========== Specialty Repository ===========

type specialtyRepoPG struct{ pool *pgxpool.Pool }

func NewSpecialtyRepoPG(pool *pgxpool.Pool) SpecialtyRepository { return &specialtyRepoPG{pool: pool} }

func (r *specialtyRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const specialtyCols = `id, code, name, active, created_at, updated_at`

func (r *specialtyRepoPG) scanSpecialty(row pgx.Row) (*Specialty, error) {
	var s Specialty
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *specialtyRepoPG) Create(ctx context.Context, s *Specialty) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO specialty (id, code, name, active)
		VALUES ($1,$2,$3,$4)`,
		s.ID, s.Code, s.Name, s.Active)
	return err
}

func (r *specialtyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return r.scanSpecialty(r.conn(ctx).QueryRow(ctx, `SELECT `+specialtyCols+` FROM specialty WHERE id = $1`, id))
}

func (r *specialtyRepoPG) Update(ctx context.Context, s *Specialty) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE specialty SET code=$2, name=$3, active=$4, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Code, s.Name, s.Active)
	return err
}

func (r *specialtyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM specialty WHERE id = $1`, id)
	return err
}

func (r *specialtyRepoPG) List(ctx context.Context, limit, offset int) ([]*Specialty, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM specialty`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+specialtyCols+` FROM specialty ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Specialty
	for rows.Next() {
		s, err := r.scanSpecialty(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

// =========== Clinical Service Repository ===========

type clinicalServiceRepoPG struct{ pool *pgxpool.Pool }

func NewClinicalServiceRepoPG(pool *pgxpool.Pool) ClinicalServiceRepository {
	return &clinicalServiceRepoPG{pool: pool}
}

func (r *clinicalServiceRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const serviceCols = `id, code, name, price_cents, duration_minutes, active, created_at, updated_at`

func (r *clinicalServiceRepoPG) scanService(row pgx.Row) (*ClinicalService, error) {
	var cs ClinicalService
	err := row.Scan(&cs.ID, &cs.Code, &cs.Name, &cs.PriceCents, &cs.DurationMinutes,
		&cs.Active, &cs.CreatedAt, &cs.UpdatedAt)
	return &cs, err
}

func (r *clinicalServiceRepoPG) Create(ctx context.Context, cs *ClinicalService) error {
	cs.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinical_service (id, code, name, price_cents, duration_minutes, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		cs.ID, cs.Code, cs.Name, cs.PriceCents, cs.DurationMinutes, cs.Active)
	return err
}

func (r *clinicalServiceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalService, error) {
	return r.scanService(r.conn(ctx).QueryRow(ctx, `SELECT `+serviceCols+` FROM clinical_service WHERE id = $1`, id))
}

func (r *clinicalServiceRepoPG) Update(ctx context.Context, cs *ClinicalService) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_service SET code=$2, name=$3, price_cents=$4, duration_minutes=$5,
			active=$6, updated_at=NOW()
		WHERE id = $1`,
		cs.ID, cs.Code, cs.Name, cs.PriceCents, cs.DurationMinutes, cs.Active)
	return err
}

func (r *clinicalServiceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinical_service WHERE id = $1`, id)
	return err
}

func (r *clinicalServiceRepoPG) List(ctx context.Context, limit, offset int) ([]*ClinicalService, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM clinical_service`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+serviceCols+` FROM clinical_service ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ClinicalService
	for rows.Next() {
		cs, err := r.scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cs)
	}
	return items, total, nil
}

// =========== Room Repository ===========

type roomRepoPG struct{ pool *pgxpool.Pool }

func NewRoomRepoPG(pool *pgxpool.Pool) RoomRepository { return &roomRepoPG{pool: pool} }

func (r *roomRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const roomCols = `id, code, name, floor, active, created_at, updated_at`

func (r *roomRepoPG) scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.Code, &rm.Name, &rm.Floor, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt)
	return &rm, err
}

func (r *roomRepoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO room (id, code, name, floor, active)
		VALUES ($1,$2,$3,$4,$5)`,
		rm.ID, rm.Code, rm.Name, rm.Floor, rm.Active)
	return err
}

func (r *roomRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	return r.scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM room WHERE id = $1`, id))
}

func (r *roomRepoPG) Update(ctx context.Context, rm *Room) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE room SET code=$2, name=$3, floor=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		rm.ID, rm.Code, rm.Name, rm.Floor, rm.Active)
	return err
}

func (r *roomRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM room WHERE id = $1`, id)
	return err
}

func (r *roomRepoPG) List(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM room`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+roomCols+` FROM room ORDER BY code ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Room
	for rows.Next() {
		rm, err := r.scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rm)
	}
	return items, total, nil
}
