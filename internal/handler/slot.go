package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/model"
	"github.com/elfogon/restaurant-reservations/internal/repository"
)

// SlotHandler manages the weekly slot template: which times of day are
// bookable on which weekday. Staff-only; customers see slots only through
// the availability endpoint.
type SlotHandler struct {
	Slots *repository.SlotRepo
}

func NewSlotHandler(s *repository.SlotRepo) *SlotHandler {
	if s == nil {
		panic("nil repository passed to NewSlotHandler")
	}
	return &SlotHandler{Slots: s}
}

type slotReq struct {
	Weekday string `json:"dia_semana"`
	Time    string `json:"hora_spot"`
}

var slotTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (req *slotReq) validate() (string, bool) {
	req.Weekday = strings.TrimSpace(req.Weekday)
	req.Time = strings.TrimSpace(req.Time)
	if !model.IsWeekdayName(req.Weekday) {
		return "dia_semana must be one of Domingo..Sábado", false
	}
	if !slotTimeRe.MatchString(req.Time) {
		return "hora_spot must be HH:MM", false
	}
	return "", true
}

// List handles GET /v1/slots.
func (h *SlotHandler) List(c echo.Context) error {
	slots, err := h.Slots.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": slots})
}

// Get handles GET /v1/slots/:id.
func (h *SlotHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	slot, err := h.Slots.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch slot"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": slot})
}

// Create handles POST /v1/slots.
func (h *SlotHandler) Create(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	slot := &repository.Slot{Weekday: req.Weekday, Time: req.Time}
	if err := h.Slots.Create(c.Request().Context(), slot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create slot"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": slot})
}

// Update handles PATCH /v1/slots/:id. Existing reservations keep their
// turno_id, so edits here only change what is bookable going forward.
func (h *SlotHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	slot := &repository.Slot{ID: id, Weekday: req.Weekday, Time: req.Time}
	if err := h.Slots.Update(c.Request().Context(), slot); err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update slot"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": slot})
}

// Delete handles DELETE /v1/slots/:id.
func (h *SlotHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	if err := h.Slots.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot cannot be deleted"})
	}
	return c.NoContent(http.StatusNoContent)
}
