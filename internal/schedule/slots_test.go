package schedule

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func mins(t *testing.T, s string) int {
	t.Helper()
	m, err := ToMinutes(s)
	if err != nil {
		t.Fatalf("ToMinutes(%q): %v", s, err)
	}
	return m
}

func TestGenerateSlots_EvenShift(t *testing.T) {
	shifts := []Shift{{Start: mins(t, "08:00"), End: mins(t, "09:00")}}
	slots := GenerateSlots(shifts, 30)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Start != mins(t, "08:00") || slots[0].End != mins(t, "08:30") {
		t.Errorf("slot 0 = %s-%s", FormatMinutes(slots[0].Start), FormatMinutes(slots[0].End))
	}
	if slots[1].Start != mins(t, "08:30") || slots[1].End != mins(t, "09:00") {
		t.Errorf("slot 1 = %s-%s", FormatMinutes(slots[1].Start), FormatMinutes(slots[1].End))
	}
}

func TestGenerateSlots_TrailingRemainderDropped(t *testing.T) {
	shifts := []Shift{{Start: mins(t, "08:00"), End: mins(t, "08:45")}}
	slots := GenerateSlots(shifts, 30)

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Start != mins(t, "08:00") || slots[0].End != mins(t, "08:30") {
		t.Errorf("slot = %s-%s", FormatMinutes(slots[0].Start), FormatMinutes(slots[0].End))
	}
}

func TestGenerateSlots_NoShifts(t *testing.T) {
	if slots := GenerateSlots(nil, 30); len(slots) != 0 {
		t.Errorf("expected empty slot list, got %d", len(slots))
	}
}

func TestGenerateSlots_ExactDurations(t *testing.T) {
	shifts := []Shift{{Start: mins(t, "09:00"), End: mins(t, "12:00")}}
	for _, sl := range GenerateSlots(shifts, 20) {
		if sl.End-sl.Start != 20 {
			t.Errorf("slot %s-%s has wrong duration", FormatMinutes(sl.Start), FormatMinutes(sl.End))
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	room := uuid.New()
	shifts := []Shift{
		{Start: mins(t, "08:00"), End: mins(t, "11:30"), RoomID: &room},
		{Start: mins(t, "13:00"), End: mins(t, "17:00"), RoomID: &room},
	}
	first := GenerateSlots(shifts, 30)
	second := GenerateSlots(shifts, 30)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical slots")
	}
}

func TestGenerateSlots_DefaultDuration(t *testing.T) {
	shifts := []Shift{{Start: mins(t, "08:00"), End: mins(t, "09:00")}}
	if got := GenerateSlots(shifts, 0); len(got) != 2 {
		t.Errorf("expected default %d-minute slots, got %d slots", DefaultSlotMinutes, len(got))
	}
}

func TestGenerateSlots_RoomInherited(t *testing.T) {
	room := uuid.New()
	shifts := []Shift{{Start: mins(t, "08:00"), End: mins(t, "09:00"), RoomID: &room}}
	for _, sl := range GenerateSlots(shifts, 30) {
		if sl.RoomID == nil || *sl.RoomID != room {
			t.Error("slot must carry its parent shift's room")
		}
	}
}

func TestMarkBooked_ThreeWayOverlap(t *testing.T) {
	slots := []Slot{
		{Start: mins(t, "07:30"), End: mins(t, "08:00")},
		{Start: mins(t, "08:00"), End: mins(t, "08:30")},
		{Start: mins(t, "08:15"), End: mins(t, "08:45")},
		{Start: mins(t, "08:30"), End: mins(t, "09:00")},
	}
	booked := []Interval{{Start: mins(t, "08:00"), End: mins(t, "08:30")}}

	got := MarkBooked(slots, booked)
	want := []string{StatusAvailable, StatusBooked, StatusBooked, StatusAvailable}
	for i, w := range want {
		if got[i].Status != w {
			t.Errorf("slot %d (%s-%s): status %q, want %q",
				i, FormatMinutes(got[i].Start), FormatMinutes(got[i].End), got[i].Status, w)
		}
	}
}

func TestMarkBooked_NoBookings(t *testing.T) {
	slots := GenerateSlots([]Shift{{Start: mins(t, "08:00"), End: mins(t, "10:00")}}, 30)
	for _, sl := range MarkBooked(slots, nil) {
		if sl.Status != StatusAvailable {
			t.Errorf("slot %s should be available", FormatMinutes(sl.Start))
		}
	}
}

func TestMarkBooked_DoesNotMutateInput(t *testing.T) {
	slots := []Slot{{Start: 480, End: 510, Status: StatusAvailable}}
	booked := []Interval{{Start: 480, End: 510}}
	_ = MarkBooked(slots, booked)
	if slots[0].Status != StatusAvailable {
		t.Error("input slice must not be modified")
	}
}

// End-to-end scenario: one shift 09:00-11:00, one booked appointment
// 10:00-10:30, duration 30 -> four slots with the third booked.
func TestSlotPipeline_EndToEnd(t *testing.T) {
	room := uuid.New()
	shifts := []Shift{{Start: mins(t, "09:00"), End: mins(t, "11:00"), RoomID: &room}}
	booked := []Interval{{Start: mins(t, "10:00"), End: mins(t, "10:30")}}

	slots := MarkBooked(GenerateSlots(shifts, 30), booked)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	for i, sl := range slots {
		want := StatusAvailable
		if i == 2 {
			want = StatusBooked
		}
		if sl.Status != want {
			t.Errorf("slot %d (%s-%s): status %q, want %q",
				i, FormatMinutes(sl.Start), FormatMinutes(sl.End), sl.Status, want)
		}
	}
	if slots[2].Start != mins(t, "10:00") || slots[2].End != mins(t, "10:30") {
		t.Errorf("third slot = %s-%s, want 10:00-10:30",
			FormatMinutes(slots[2].Start), FormatMinutes(slots[2].End))
	}
}
