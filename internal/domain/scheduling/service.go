package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/schedule"
)

// TxRunner executes fn inside a storage transaction. Production wiring uses
// db.RunSerializable so the availability check and the insert observe one
// snapshot; tests use PassthroughTx.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// PassthroughTx runs fn directly, without a transaction.
func PassthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	shifts       WorkShiftRepository
	appointments AppointmentRepository
	runTx        TxRunner
	slotMinutes  int
}

func NewService(shifts WorkShiftRepository, appointments AppointmentRepository, runTx TxRunner, slotMinutes int) *Service {
	if runTx == nil {
		runTx = PassthroughTx
	}
	if slotMinutes <= 0 {
		slotMinutes = schedule.DefaultSlotMinutes
	}
	return &Service{shifts: shifts, appointments: appointments, runTx: runTx, slotMinutes: slotMinutes}
}

// parseInterval validates the date and the HH:MM bounds and returns them as
// minutes since midnight.
func parseInterval(date, start, end string) (int, int, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, 0, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	s, err := schedule.ToMinutes(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := schedule.ToMinutes(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, fmt.Errorf("start_time %s must be before end_time %s", start, end)
	}
	return s, e, nil
}

func shiftsToBusy(shifts []*WorkShift) ([]schedule.BusyInterval, error) {
	busy := make([]schedule.BusyInterval, 0, len(shifts))
	for _, ws := range shifts {
		s, err := schedule.ToMinutes(ws.StartTime)
		if err != nil {
			return nil, fmt.Errorf("stored shift %s: %w", ws.ID, err)
		}
		e, err := schedule.ToMinutes(ws.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored shift %s: %w", ws.ID, err)
		}
		busy = append(busy, schedule.BusyInterval{ID: ws.ID, Start: s, End: e})
	}
	return busy, nil
}

func appointmentsToBusy(appts []*Appointment) ([]schedule.BusyInterval, error) {
	busy := make([]schedule.BusyInterval, 0, len(appts))
	for _, a := range appts {
		s, err := schedule.ToMinutes(a.StartTime)
		if err != nil {
			return nil, fmt.Errorf("stored appointment %s: %w", a.ID, err)
		}
		e, err := schedule.ToMinutes(a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored appointment %s: %w", a.ID, err)
		}
		busy = append(busy, schedule.BusyInterval{ID: a.ID, Start: s, End: e})
	}
	return busy, nil
}

// -- Work Shift --

func (s *Service) CreateWorkShift(ctx context.Context, ws *WorkShift) error {
	if ws.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	start, end, err := parseInterval(ws.Date, ws.StartTime, ws.EndTime)
	if err != nil {
		return err
	}
	if ws.Active == nil {
		active := true
		ws.Active = &active
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.checkShiftConflict(ctx, ws, start, end, uuid.Nil); err != nil {
			return err
		}
		return s.shifts.Create(ctx, ws)
	})
}

func (s *Service) UpdateWorkShift(ctx context.Context, ws *WorkShift) error {
	stored, err := s.shifts.GetByID(ctx, ws.ID)
	if err != nil {
		return err
	}
	// The doctor comes from the stored row, never the request body; a zeroed
	// doctor_id would otherwise dodge the conflict check entirely.
	ws.DoctorID = stored.DoctorID
	start, end, err := parseInterval(ws.Date, ws.StartTime, ws.EndTime)
	if err != nil {
		return err
	}
	if ws.Active == nil {
		ws.Active = stored.Active
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.checkShiftConflict(ctx, ws, start, end, ws.ID); err != nil {
			return err
		}
		return s.shifts.Update(ctx, ws)
	})
}

// checkShiftConflict rejects a shift that overlaps another active shift for
// the same doctor, or for the same room, on the same day. The exclude id
// skips the row being updated.
func (s *Service) checkShiftConflict(ctx context.Context, ws *WorkShift, start, end int, exclude uuid.UUID) error {
	doctorShifts, err := s.shifts.ListActiveByDoctorDate(ctx, ws.DoctorID, ws.Date)
	if err != nil {
		return err
	}
	busy, err := shiftsToBusy(doctorShifts)
	if err != nil {
		return err
	}
	if schedule.HasConflict(busy, start, end, exclude) {
		return fmt.Errorf("%w: doctor already has a shift in %s-%s on %s", ErrConflict, ws.StartTime, ws.EndTime, ws.Date)
	}

	if ws.RoomID != nil {
		roomShifts, err := s.shifts.ListActiveByRoomDate(ctx, *ws.RoomID, ws.Date)
		if err != nil {
			return err
		}
		busy, err := shiftsToBusy(roomShifts)
		if err != nil {
			return err
		}
		if schedule.HasConflict(busy, start, end, exclude) {
			return fmt.Errorf("%w: room is occupied in %s-%s on %s", ErrConflict, ws.StartTime, ws.EndTime, ws.Date)
		}
	}
	return nil
}

func (s *Service) GetWorkShift(ctx context.Context, id uuid.UUID) (*WorkShift, error) {
	return s.shifts.GetByID(ctx, id)
}

func (s *Service) DeleteWorkShift(ctx context.Context, id uuid.UUID) error {
	return s.shifts.Delete(ctx, id)
}

func (s *Service) ListWorkShiftsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*WorkShift, int, error) {
	return s.shifts.ListByDoctor(ctx, doctorID, limit, offset)
}

// -- Appointment --

func (s *Service) BookAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	start, end, err := parseInterval(a.Date, a.StartTime, a.EndTime)
	if err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Status != StatusPending && a.Status != StatusConfirmed {
		return fmt.Errorf("new appointment status must be %s or %s, got %s", StatusPending, StatusConfirmed, a.Status)
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.checkAppointmentConflict(ctx, a, start, end, uuid.Nil); err != nil {
			return err
		}
		return s.appointments.Create(ctx, a)
	})
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	stored, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	// Patient and doctor are fixed at booking time; the body cannot reassign
	// them (or zero them out to slip past the conflict check).
	a.PatientID = stored.PatientID
	a.DoctorID = stored.DoctorID
	start, end, err := parseInterval(a.Date, a.StartTime, a.EndTime)
	if err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = stored.Status
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if a.IsBooked() {
			if err := s.checkAppointmentConflict(ctx, a, start, end, a.ID); err != nil {
				return err
			}
		}
		return s.appointments.Update(ctx, a)
	})
}

// checkAppointmentConflict rejects an appointment overlapping any
// slot-occupying appointment for the same doctor, or for the same room when
// one is assigned.
func (s *Service) checkAppointmentConflict(ctx context.Context, a *Appointment, start, end int, exclude uuid.UUID) error {
	doctorAppts, err := s.appointments.ListBookedByDoctorDate(ctx, a.DoctorID, a.Date)
	if err != nil {
		return err
	}
	busy, err := appointmentsToBusy(doctorAppts)
	if err != nil {
		return err
	}
	if schedule.HasConflict(busy, start, end, exclude) {
		return fmt.Errorf("%w: doctor is booked in %s-%s on %s", ErrConflict, a.StartTime, a.EndTime, a.Date)
	}

	if a.RoomID != nil {
		roomAppts, err := s.appointments.ListBookedByRoomDate(ctx, *a.RoomID, a.Date)
		if err != nil {
			return err
		}
		busy, err := appointmentsToBusy(roomAppts)
		if err != nil {
			return err
		}
		if schedule.HasConflict(busy, start, end, exclude) {
			return fmt.Errorf("%w: room is booked in %s-%s on %s", ErrConflict, a.StartTime, a.EndTime, a.Date)
		}
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.Search(ctx, params, limit, offset)
}

// TransitionAppointment moves an appointment through the state machine.
func (s *Service) TransitionAppointment(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(a.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, status)
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

// -- Availability --

// AvailableSlots computes a doctor's annotated slot list for one day: active
// shifts carved into fixed-duration slots, each marked available or booked
// against the day's slot-occupying appointments. A non-nil roomID restricts
// the computation to shifts assigned to that room.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, duration int, roomID *uuid.UUID) ([]AvailabilitySlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	if duration <= 0 {
		duration = s.slotMinutes
	}

	shifts, err := s.shifts.ListActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	appts, err := s.appointments.ListBookedByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	engineShifts := make([]schedule.Shift, 0, len(shifts))
	for _, ws := range shifts {
		if roomID != nil && (ws.RoomID == nil || *ws.RoomID != *roomID) {
			continue
		}
		start, err := schedule.ToMinutes(ws.StartTime)
		if err != nil {
			return nil, fmt.Errorf("stored shift %s: %w", ws.ID, err)
		}
		end, err := schedule.ToMinutes(ws.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored shift %s: %w", ws.ID, err)
		}
		engineShifts = append(engineShifts, schedule.Shift{Start: start, End: end, RoomID: ws.RoomID})
	}

	booked := make([]schedule.Interval, 0, len(appts))
	for _, a := range appts {
		start, err := schedule.ToMinutes(a.StartTime)
		if err != nil {
			return nil, fmt.Errorf("stored appointment %s: %w", a.ID, err)
		}
		end, err := schedule.ToMinutes(a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored appointment %s: %w", a.ID, err)
		}
		booked = append(booked, schedule.Interval{Start: start, End: end})
	}

	slots := schedule.MarkBooked(schedule.GenerateSlots(engineShifts, duration), booked)

	out := make([]AvailabilitySlot, 0, len(slots))
	for _, sl := range slots {
		out = append(out, AvailabilitySlot{
			Start:  schedule.FormatMinutes(sl.Start),
			End:    schedule.FormatMinutes(sl.End),
			Status: sl.Status,
			RoomID: sl.RoomID,
		})
	}
	return out, nil
}
