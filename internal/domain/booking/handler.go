package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/availability"
	"github.com/agenda/agenda/internal/domain/patient"
)

// PatientDirectory is the find-or-create lookup the booking form goes
// through before a slot is claimed.
type PatientDirectory interface {
	FindOrCreate(ctx context.Context, in patient.Input) (*patient.Patient, error)
}

type Handler struct {
	svc      *Service
	resolver *Resolver
	patients PatientDirectory
}

func NewHandler(svc *Service, resolver *Resolver, patients PatientDirectory) *Handler {
	return &Handler{svc: svc, resolver: resolver, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/slots", h.Month)
	api.GET("/slots/day", h.Day)
	api.POST("/bookings", h.Create)
	api.DELETE("/bookings/:id", h.Cancel)
	api.POST("/bookings/:id/reschedule", h.Reschedule)
}

// MonthResponse carries the resolved month. Month is zero-based on the wire,
// matching the calendar widget convention the front end uses.
type MonthResponse struct {
	Year      int                 `json:"year"`
	Month     int                 `json:"month"`
	Days      map[string][]string `json:"days"`
	TotalDays int                 `json:"total_days"`
}

func (h *Handler) Month(c echo.Context) error {
	now := time.Now()
	year := now.Year()
	month := int(now.Month()) - 1

	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = n
	}
	if month < 0 || month > 11 {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be 0-11")
	}

	days, err := h.resolver.ResolveMonth(c.Request().Context(), year, time.Month(month+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, MonthResponse{Year: year, Month: month, Days: days, TotalDays: len(days)})
}

// DayResponse lists the free times of one date.
type DayResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

func (h *Handler) Day(c echo.Context) error {
	date := c.QueryParam("date")
	times, err := h.resolver.ResolveDay(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, DayResponse{Date: date, Times: times})
}

// CreateInput is the public booking form: patient details plus the slot.
type CreateInput struct {
	Patient patient.Input `json:"patient"`
	Date    string        `json:"date"`
	Time    string        `json:"time"`
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	p, err := h.patients.FindOrCreate(ctx, in.Patient)
	if err != nil {
		if errors.Is(err, patient.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	a, err := h.svc.Claim(ctx, p.ID, in.Date, in.Time)
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return bookingError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RescheduleInput names the new slot; the patient and payment status carry
// over from the existing appointment.
type RescheduleInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (h *Handler) Reschedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in RescheduleInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Reschedule(c.Request().Context(), id, in.Date, in.Time)
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, a)
}

// bookingError maps the booking error taxonomy onto HTTP statuses. A failed
// compensation is a 500 with an explicit body so operators can tell it apart
// from an ordinary conflict.
func bookingError(err error) error {
	switch {
	case errors.Is(err, ErrCompensationFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	case errors.Is(err, appointment.ErrSlotTaken):
		return echo.NewHTTPError(http.StatusConflict, "slot is already booked")
	case errors.Is(err, appointment.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, appointment.ErrInvalidInput), errors.Is(err, availability.ErrInvalidRule):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
