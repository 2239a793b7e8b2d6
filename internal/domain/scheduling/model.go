package scheduling

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors mapped to HTTP statuses by the handler.
var (
	// ErrConflict is returned when a shift or appointment interval collides
	// with an existing one for the same doctor or room.
	ErrConflict = errors.New("time slot already taken")
	// ErrInvalidTransition is returned when a status change is not allowed
	// by the appointment state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Appointment statuses. pending, confirmed and checked_in occupy the slot;
// completed and cancelled free it.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCheckedIn = "checked_in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// BookedStatuses are the statuses that block a time slot.
var BookedStatuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn}

var validStatuses = map[string]bool{
	StatusPending: true, StatusConfirmed: true, StatusCheckedIn: true,
	StatusCompleted: true, StatusCancelled: true,
}

// statusTransitions encodes the appointment state machine. Cancellation is
// only reachable before check-in.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// WorkShift maps to the work_shift table. Date is a calendar day
// (YYYY-MM-DD); StartTime/EndTime are wall-clock HH:MM.
type WorkShift struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Date      string     `db:"date" json:"date"`
	StartTime string     `db:"start_time" json:"start_time"`
	EndTime   string     `db:"end_time" json:"end_time"`
	RoomID    *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	Active    *bool      `db:"active" json:"active,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	RoomID    *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	ServiceID *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	Date      string     `db:"date" json:"date"`
	StartTime string     `db:"start_time" json:"start_time"`
	EndTime   string     `db:"end_time" json:"end_time"`
	Status    string     `db:"status" json:"status"`
	Reason    *string    `db:"reason" json:"reason,omitempty"`
	Note      *string    `db:"note" json:"note,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// IsBooked reports whether the appointment still occupies its slot.
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusCheckedIn
}

// AvailabilitySlot is the wire shape of one entry in a doctor's day view.
type AvailabilitySlot struct {
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Status string     `json:"status"`
	RoomID *uuid.UUID `json:"room_id,omitempty"`
}
