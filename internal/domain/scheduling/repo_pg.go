package scheduling

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

// =========== Work Shift Repository ===========

type workShiftRepoPG struct{ pool *pgxpool.Pool }

func NewWorkShiftRepoPG(pool *pgxpool.Pool) WorkShiftRepository { return &workShiftRepoPG{pool: pool} }

func (r *workShiftRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

// Times come back as HH:MM text; the columns are native TIME so the store
// can compare intervals in the exclusion guard.
const shiftCols = `id, doctor_id, to_char(date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	room_id, active, created_at, updated_at`

func (r *workShiftRepoPG) scanShift(row pgx.Row) (*WorkShift, error) {
	var ws WorkShift
	err := row.Scan(&ws.ID, &ws.DoctorID, &ws.Date, &ws.StartTime, &ws.EndTime,
		&ws.RoomID, &ws.Active, &ws.CreatedAt, &ws.UpdatedAt)
	return &ws, err
}

func (r *workShiftRepoPG) Create(ctx context.Context, ws *WorkShift) error {
	ws.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO work_shift (id, doctor_id, date, start_time, end_time, room_id, active)
		VALUES ($1,$2,$3::date,$4::time,$5::time,$6,$7)`,
		ws.ID, ws.DoctorID, ws.Date, ws.StartTime, ws.EndTime, ws.RoomID, ws.Active)
	return err
}

func (r *workShiftRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*WorkShift, error) {
	return r.scanShift(r.conn(ctx).QueryRow(ctx, `SELECT `+shiftCols+` FROM work_shift WHERE id = $1`, id))
}

func (r *workShiftRepoPG) Update(ctx context.Context, ws *WorkShift) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE work_shift SET date=$2::date, start_time=$3::time, end_time=$4::time,
			room_id=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		ws.ID, ws.Date, ws.StartTime, ws.EndTime, ws.RoomID, ws.Active)
	return err
}

func (r *workShiftRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM work_shift WHERE id = $1`, id)
	return err
}

func (r *workShiftRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*WorkShift, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM work_shift WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+shiftCols+` FROM work_shift WHERE doctor_id = $1 ORDER BY date DESC, start_time ASC LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*WorkShift
	for rows.Next() {
		ws, err := r.scanShift(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ws)
	}
	return items, total, nil
}

func (r *workShiftRepoPG) ListActiveByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*WorkShift, error) {
	return r.listActive(ctx, `doctor_id = $1`, doctorID, date)
}

func (r *workShiftRepoPG) ListActiveByRoomDate(ctx context.Context, roomID uuid.UUID, date string) ([]*WorkShift, error) {
	return r.listActive(ctx, `room_id = $1`, roomID, date)
}

func (r *workShiftRepoPG) listActive(ctx context.Context, where string, owner uuid.UUID, date string) ([]*WorkShift, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+shiftCols+` FROM work_shift
		WHERE `+where+` AND date = $2::date AND active = TRUE
		ORDER BY start_time ASC`, owner, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WorkShift
	for rows.Next() {
		ws, err := r.scanShift(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ws)
	}
	return items, nil
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const apptCols = `id, patient_id, doctor_id, room_id, service_id,
	to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	status, reason, note, created_at, updated_at`

func (r *appointmentRepoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.RoomID, &a.ServiceID,
		&a.Date, &a.StartTime, &a.EndTime,
		&a.Status, &a.Reason, &a.Note, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, room_id, service_id,
			date, start_time, end_time, status, reason, note)
		VALUES ($1,$2,$3,$4,$5,$6::date,$7::time,$8::time,$9,$10,$11)`,
		a.ID, a.PatientID, a.DoctorID, a.RoomID, a.ServiceID,
		a.Date, a.StartTime, a.EndTime, a.Status, a.Reason, a.Note)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppt(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET room_id=$2, service_id=$3, date=$4::date,
			start_time=$5::time, end_time=$6::time, status=$7, reason=$8, note=$9, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.RoomID, a.ServiceID, a.Date, a.StartTime, a.EndTime,
		a.Status, a.Reason, a.Note)
	return err
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE appointment SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+` FROM appointment WHERE patient_id = $1 ORDER BY date DESC, start_time DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *appointmentRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["patient"]; ok {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["doctor"]; ok {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["date"]; ok {
		query += fmt.Sprintf(` AND date = $%d::date`, idx)
		countQuery += fmt.Sprintf(` AND date = $%d::date`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date DESC, start_time DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *appointmentRepoPG) ListBookedByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error) {
	return r.listBooked(ctx, `doctor_id = $1`, doctorID, date)
}

func (r *appointmentRepoPG) ListBookedByRoomDate(ctx context.Context, roomID uuid.UUID, date string) ([]*Appointment, error) {
	return r.listBooked(ctx, `room_id = $1`, roomID, date)
}

func (r *appointmentRepoPG) listBooked(ctx context.Context, where string, owner uuid.UUID, date string) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+` FROM appointment
		WHERE `+where+` AND date = $2::date AND status = ANY($3)
		ORDER BY start_time ASC`, owner, date, BookedStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}
