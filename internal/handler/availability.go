package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/model"
	"github.com/elfogon/restaurant-reservations/internal/repository"
)

// AvailabilityHandler serves the two public availability reads customers use
// to fill the booking form. Both endpoints hit the database on every request:
// this data goes stale the instant another reservation lands, so it is never
// cached.
type AvailabilityHandler struct {
	Slots        *repository.SlotRepo
	Reservations *repository.ReservationRepo
}

func NewAvailabilityHandler(s *repository.SlotRepo, r *repository.ReservationRepo) *AvailabilityHandler {
	if s == nil || r == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Slots: s, Reservations: r}
}

// OpenSlots handles GET /v1/reservations/availability/slots?date=YYYY-MM-DD.
// It derives the weekday from the date and returns the template times for
// that weekday in ascending order. A weekday with no configured slots yields
// an empty array, not an error.
func (h *AvailabilityHandler) OpenSlots(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("date"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	weekday := model.WeekdayName(date)

	times, err := h.Slots.TimesByWeekday(c.Request().Context(), weekday)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"fecha":      date.Format(model.DateLayout),
		"dia_semana": weekday,
		"horarios":   times,
	})
}

// OpenTables handles
// GET /v1/reservations/availability/tables?date=&time=&zone_id=&party_size=.
// It returns the tables of the zone that can seat the party and are not held
// by an active reservation at that date and time. An unknown zone comes back
// as an empty list.
func (h *AvailabilityHandler) OpenTables(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("date"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	slotTime := strings.TrimSpace(c.QueryParam("time"))
	if slotTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time is required"})
	}
	zoneID, err := strconv.ParseUint(c.QueryParam("zone_id"), 10, 64)
	if err != nil || zoneID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone_id"})
	}
	partySize, err := strconv.ParseUint(c.QueryParam("party_size"), 10, 32)
	if err != nil || partySize == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid party_size"})
	}

	tables, err := h.Reservations.OpenTables(c.Request().Context(), date, slotTime, zoneID, uint32(partySize))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"fecha":     date.Format(model.DateLayout),
		"hora_spot": slotTime,
		"mesas":     tables,
	})
}
