package scheduling

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_GetDoctorSlots(t *testing.T) {
	h, e := newTestHandler()
	doctor := uuid.New()
	mustCreateShift(t, h.svc, doctor, "09:00", "10:00", nil)

	target := fmt.Sprintf("/?date=%s&duration=30", testDate)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(doctor.String())

	if err := h.GetDoctorSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var slots []AvailabilitySlot
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].Status != "available" {
		t.Errorf("first slot = %s %s, want 09:00 available", slots[0].Start, slots[0].Status)
	}
}

func TestHandler_GetDoctorSlots_RoomFilter(t *testing.T) {
	h, e := newTestHandler()
	doctor := uuid.New()
	roomA := uuid.New()
	roomB := uuid.New()
	mustCreateShift(t, h.svc, doctor, "09:00", "10:00", &roomA)
	mustCreateShift(t, h.svc, doctor, "10:00", "10:30", &roomB)

	q := url.Values{}
	q.Set("date", testDate)
	q.Set("duration", "30")
	q.Set("room_id", roomB.String())
	req := httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(doctor.String())

	if err := h.GetDoctorSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var slots []AvailabilitySlot
	json.Unmarshal(rec.Body.Bytes(), &slots)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot in room B, got %d", len(slots))
	}
	if slots[0].RoomID == nil || *slots[0].RoomID != roomB {
		t.Error("slot not in requested room")
	}
}

func TestHandler_GetDoctorSlots_BadRequest(t *testing.T) {
	h, e := newTestHandler()

	cases := []struct {
		name   string
		target string
	}{
		{"missing date", "/?duration=30"},
		{"bad date", "/?date=today&duration=30"},
		{"bad duration", "/?date=" + testDate + "&duration=-5"},
		{"bad room", "/?date=" + testDate + "&room_id=front-desk"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(uuid.New().String())

		err := h.GetDoctorSlots(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 HTTPError, got %v", tc.name, err)
		}
	}
}

func TestHandler_BookAppointment_Conflict409(t *testing.T) {
	h, e := newTestHandler()
	doctor := uuid.New()
	bookAppt(t, h.svc, doctor, "09:00", "09:30")

	body := fmt.Sprintf(`{"patient_id":%q,"doctor_id":%q,"date":%q,"start_time":"09:00","end_time":"09:30"}`,
		uuid.New(), doctor, testDate)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.BookAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409 for double booking, got %v", err)
	}
}

func TestHandler_TransitionAppointment_Invalid409(t *testing.T) {
	h, e := newTestHandler()
	a := bookAppt(t, h.svc, uuid.New(), "09:00", "09:30")

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	err := h.TransitionAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409 for pending -> completed, got %v", err)
	}
}

func TestHandler_TransitionAppointment(t *testing.T) {
	h, e := newTestHandler()
	a := bookAppt(t, h.svc, uuid.New(), "09:00", "09:30")

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.TransitionAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var got Appointment
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != StatusConfirmed {
		t.Errorf("status = %q, want confirmed", got.Status)
	}
}

func TestHandler_UpdateWorkShift_Conflict409(t *testing.T) {
	h, e := newTestHandler()
	doctor := uuid.New()
	mustCreateShift(t, h.svc, doctor, "08:00", "12:00", nil)
	second := mustCreateShift(t, h.svc, doctor, "14:00", "16:00", nil)

	// Body omits doctor_id entirely; the stored doctor still applies.
	body := fmt.Sprintf(`{"date":%q,"start_time":"08:00","end_time":"12:00"}`, testDate)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(second.ID.String())

	err := h.UpdateWorkShift(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409 for overlapping shift update, got %v", err)
	}
}

func TestHandler_GetAppointment_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
