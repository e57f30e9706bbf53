package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/model"
	"github.com/elfogon/restaurant-reservations/internal/queue"
	"github.com/elfogon/restaurant-reservations/internal/repository"
	queue_publisher "github.com/elfogon/restaurant-reservations/internal/service"
)

// ReservationHandler carries the repositories behind the booking endpoints.
// Create and Lookup are public; the list, detail, estado and delete
// operations are staff-only and rely on the JWT middleware having run.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Slots        *repository.SlotRepo
	Tables       *repository.TableRepo
}

func NewReservationHandler(r *repository.ReservationRepo, s *repository.SlotRepo, t *repository.TableRepo) *ReservationHandler {
	if r == nil || s == nil || t == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r, Slots: s, Tables: t}
}

type createReservationReq struct {
	CustomerName  string `json:"nombre_cliente"`
	CustomerDNI   string `json:"dni_cliente"`
	CustomerEmail string `json:"correo_cliente"`
	Date          string `json:"fecha_reserva"`
	SlotID        uint64 `json:"turno_id"`
	PartySize     uint32 `json:"numero_personas"`
	TableID       uint64 `json:"mesa_id"`
}

// Create handles POST /v1/reservations. The availability predicate is
// re-evaluated inside the same transaction as the insert, and the unique key
// on active (mesa, fecha, turno) rows settles any race the re-check does not
// see. Both losing paths answer 409 so clients cannot tell which check
// caught them.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerDNI = strings.TrimSpace(req.CustomerDNI)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if req.CustomerName == "" || req.CustomerDNI == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre_cliente and dni_cliente are required"})
	}
	if req.SlotID == 0 || req.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "turno_id and mesa_id are required"})
	}
	if req.PartySize == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "numero_personas must be at least 1"})
	}
	date, err := model.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fecha_reserva, expected YYYY-MM-DD"})
	}

	ctx := c.Request().Context()

	slot, err := h.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// The slot must belong to the weekday of the requested date or the
	// reservation would occupy a time the restaurant never offers that day.
	if slot.Weekday != model.WeekdayName(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot does not run on the requested date"})
	}
	table, err := h.Tables.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.PartySize > table.Capacity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party exceeds table capacity"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Zone and capacity come from the stored table, not the request, so the
	// predicate here is exactly the one the availability endpoint ran.
	open, err := h.Reservations.OpenTablesTx(ctx, tx, date, slot.Time, table.Zone.ID, req.PartySize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	found := false
	for _, t := range open {
		if t.ID == req.TableID {
			found = true
			break
		}
	}
	if !found {
		return c.JSON(http.StatusConflict, echo.Map{"error": "table unavailable for the requested date and time"})
	}

	reference, err := repository.GenerateReference(time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate reference"})
	}
	rec := &repository.ReservationRecord{
		Reference:     reference,
		CustomerName:  req.CustomerName,
		CustomerDNI:   req.CustomerDNI,
		CustomerEmail: req.CustomerEmail,
		Date:          date,
		SlotID:        req.SlotID,
		PartySize:     req.PartySize,
		TableID:       req.TableID,
		Estado:        model.EstadoPendiente,
	}
	if err := h.Reservations.CreateTx(ctx, tx, rec); err != nil {
		if errors.Is(err, repository.ErrTableUnavailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table unavailable for the requested date and time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	detail, err := h.Reservations.GetByID(ctx, rec.ID)
	if err != nil {
		// The row is committed; answer with what we know rather than failing.
		log.Printf("reservation: read-back of %d failed: %v", rec.ID, err)
		return c.JSON(http.StatusCreated, echo.Map{
			"id":             rec.ID,
			"numero_reserva": rec.Reference,
			"estado":         rec.Estado,
		})
	}

	publishEvent(queue.EventReservationCreated, detail)

	return c.JSON(http.StatusCreated, echo.Map{"item": detail})
}

// Lookup handles GET /v1/reservations/lookup?dni=&reference=. Customers have
// no accounts; the DNI plus the booking reference is what identifies them.
// A wrong DNI with a right reference is the same 404 as no match at all.
func (h *ReservationHandler) Lookup(c echo.Context) error {
	dni := strings.TrimSpace(c.QueryParam("dni"))
	reference := strings.TrimSpace(c.QueryParam("reference"))
	if dni == "" || reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dni and reference are required"})
	}
	detail, err := h.Reservations.FindByDNIAndReference(c.Request().Context(), dni, reference)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// List handles GET /v1/reservations for staff review.
func (h *ReservationHandler) List(c echo.Context) error {
	details, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	detail, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

type updateEstadoReq struct {
	Estado string `json:"estado"`
}

// UpdateEstado handles PATCH /v1/reservations/:id. The move is checked
// against the lifecycle table and then applied with a compare-and-swap on
// the current estado, so two staff members racing on the same reservation
// resolve to one success and one 409.
func (h *ReservationHandler) UpdateEstado(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateEstadoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	next, ok := model.ParseEstado(req.Estado)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown estado"})
	}

	ctx := c.Request().Context()
	current, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if !current.Estado.CanTransitionTo(next) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "illegal estado transition",
			"from":  current.Estado,
			"to":    next,
		})
	}
	if err := h.Reservations.UpdateEstado(ctx, id, current.Estado, next); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrEstadoConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation changed concurrently"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
		}
	}
	current.Estado = next

	publishEvent(eventTypeFor(next), current)

	return c.JSON(http.StatusOK, echo.Map{"item": current})
}

// Delete handles DELETE /v1/reservations/:id. Hard delete, staff-only;
// customers cancel through the estado transition so the record survives.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

func eventTypeFor(e model.Estado) string {
	switch e {
	case model.EstadoConfirmada:
		return queue.EventReservationConfirmed
	case model.EstadoCancelada:
		return queue.EventReservationCancelled
	case model.EstadoFinalizada:
		return queue.EventReservationFinished
	default:
		return queue.EventReservationCreated
	}
}

// publishEvent ships the reservation to the notification queue in the
// background. A broker outage must never surface to the customer: the
// reservation is already committed when this runs.
func publishEvent(eventType string, d *repository.ReservationDetail) {
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: d.ID,
		Reference:     d.Reference,
		CustomerName:  d.CustomerName,
		CustomerDNI:   d.CustomerDNI,
		CustomerEmail: d.CustomerEmail,
		Date:          d.Date,
		Time:          d.Slot.Time,
		PartySize:     d.PartySize,
		TableNumber:   d.Table.Number,
		ZoneName:      d.Table.Zone.Name,
		Estado:        string(d.Estado),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishReservationEvent(ctx, ev); err != nil {
			log.Printf("reservation: publish %s for %s failed: %v", eventType, ev.Reference, err)
		}
	}()
}
