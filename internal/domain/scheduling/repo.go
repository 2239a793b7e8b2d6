package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type WorkShiftRepository interface {
	Create(ctx context.Context, ws *WorkShift) error
	GetByID(ctx context.Context, id uuid.UUID) (*WorkShift, error)
	Update(ctx context.Context, ws *WorkShift) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*WorkShift, int, error)
	// ListActiveByDoctorDate returns the doctor's active shifts for one day.
	ListActiveByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*WorkShift, error)
	// ListActiveByRoomDate returns the active shifts occupying a room for one day.
	ListActiveByRoomDate(ctx context.Context, roomID uuid.UUID, date string) ([]*WorkShift, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error)
	// ListBookedByDoctorDate returns the doctor's slot-occupying appointments
	// (pending, confirmed, checked_in) for one day.
	ListBookedByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error)
	// ListBookedByRoomDate returns the slot-occupying appointments held in a
	// room for one day.
	ListBookedByRoomDate(ctx context.Context, roomID uuid.UUID, date string) ([]*Appointment, error)
}
