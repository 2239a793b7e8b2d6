package scheduling

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/shifts", h.CreateWorkShift)
	api.GET("/shifts", h.ListWorkShifts)
	api.GET("/shifts/:id", h.GetWorkShift)
	api.PUT("/shifts/:id", h.UpdateWorkShift)
	api.DELETE("/shifts/:id", h.DeleteWorkShift)

	api.GET("/doctors/:id/slots", h.GetDoctorSlots)

	api.POST("/appointments", h.BookAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.PATCH("/appointments/:id/status", h.TransitionAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)
}

// writeError maps domain sentinel errors onto HTTP statuses.
func writeError(err error) error {
	switch {
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// -- Work Shift Handlers --

func (h *Handler) CreateWorkShift(c echo.Context) error {
	var ws WorkShift
	if err := c.Bind(&ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateWorkShift(c.Request().Context(), &ws); err != nil {
		return writeError(err)
	}
	return c.JSON(http.StatusCreated, ws)
}

func (h *Handler) GetWorkShift(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ws, err := h.svc.GetWorkShift(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "shift not found")
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *Handler) ListWorkShifts(c echo.Context) error {
	pg := pagination.FromContext(c)
	doctorID, err := uuid.Parse(c.QueryParam("doctor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id is required")
	}
	items, total, err := h.svc.ListWorkShiftsByDoctor(c.Request().Context(), doctorID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateWorkShift(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var ws WorkShift
	if err := c.Bind(&ws); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ws.ID = id
	if err := h.svc.UpdateWorkShift(c.Request().Context(), &ws); err != nil {
		return writeError(err)
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *Handler) DeleteWorkShift(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteWorkShift(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Availability Handlers --

func (h *Handler) GetDoctorSlots(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	duration := 0
	if d := c.QueryParam("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "duration must be a positive integer")
		}
	}
	var roomID *uuid.UUID
	if r := c.QueryParam("room_id"); r != "" {
		rid, err := uuid.Parse(r)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
		}
		roomID = &rid
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), doctorID, date, duration, roomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}

// -- Appointment Handlers --

func (h *Handler) BookAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.BookAppointment(c.Request().Context(), &a); err != nil {
		return writeError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		items, total, err := h.svc.ListAppointmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	params := map[string]string{}
	for _, key := range []string{"doctor", "status", "date"} {
		if v := c.QueryParam(key); v != "" {
			params[key] = v
		}
	}
	items, total, err := h.svc.SearchAppointments(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	if err := h.svc.UpdateAppointment(c.Request().Context(), &a); err != nil {
		return writeError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) TransitionAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	a, err := h.svc.TransitionAppointment(c.Request().Context(), id, body.Status)
	if err != nil {
		return writeError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
