package schedule

import "github.com/google/uuid"

// DefaultSlotMinutes is the slot length used when the caller does not ask
// for a specific duration.
const DefaultSlotMinutes = 30

// Slot statuses.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// Shift is one working interval of a doctor's day, in minutes since
// midnight, optionally bound to a room.
type Shift struct {
	Start  int
	End    int
	RoomID *uuid.UUID
}

// Interval is a booked time range, in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Slot is a candidate appointment window derived from a shift. Slots are
// computed fresh on every query and never persisted.
type Slot struct {
	Start  int
	End    int
	RoomID *uuid.UUID
	Status string
}

// GenerateSlots enumerates consecutive candidate slots of exactly duration
// minutes within each shift. A trailing remainder shorter than duration is
// dropped; partial slots are never offered. Zero shifts yield an empty
// sequence. Slots carry the room of their parent shift and start out
// available.
func GenerateSlots(shifts []Shift, duration int) []Slot {
	if duration <= 0 {
		duration = DefaultSlotMinutes
	}
	var slots []Slot
	for _, sh := range shifts {
		for cur := sh.Start; cur+duration <= sh.End; cur += duration {
			slots = append(slots, Slot{
				Start:  cur,
				End:    cur + duration,
				RoomID: sh.RoomID,
				Status: StatusAvailable,
			})
		}
	}
	return slots
}

// MarkBooked classifies each candidate slot against the booked intervals: a
// slot is booked iff it overlaps any of them. The nested scan is deliberate;
// at clinic scale (dozens of slots, single-digit bookings) nothing faster is
// warranted. The input slice is not modified.
func MarkBooked(slots []Slot, booked []Interval) []Slot {
	out := make([]Slot, len(slots))
	for i, sl := range slots {
		sl.Status = StatusAvailable
		for _, b := range booked {
			if Overlaps(sl.Start, sl.End, b.Start, b.End) {
				sl.Status = StatusBooked
				break
			}
		}
		out[i] = sl
	}
	return out
}
