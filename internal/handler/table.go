package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/model"
	"github.com/elfogon/restaurant-reservations/internal/repository"
)

// TableHandler manages the restaurant's tables. All routes are staff-only:
// customers never address tables directly, they see them through the
// availability endpoint.
type TableHandler struct {
	Tables *repository.TableRepo
	Zones  *repository.ZoneRepo
}

func NewTableHandler(t *repository.TableRepo, z *repository.ZoneRepo) *TableHandler {
	if t == nil || z == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: t, Zones: z}
}

type tableReq struct {
	Number      uint32  `json:"numero_mesa"`
	Capacity    uint32  `json:"capacidad"`
	Status      string  `json:"estado"`
	Description *string `json:"descripcion"`
	ZoneID      uint64  `json:"zona_id"`
}

func (req *tableReq) validate() (string, bool) {
	if req.Number == 0 {
		return "numero_mesa must be positive", false
	}
	if req.Capacity == 0 {
		return "capacidad must be at least 1", false
	}
	if req.ZoneID == 0 {
		return "zona_id is required", false
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if req.Status != "" && req.Status != model.TableAvailable && req.Status != model.TableBlocked {
		return "estado must be disponible or bloqueada", false
	}
	return "", true
}

// List handles GET /v1/tables.
func (h *TableHandler) List(c echo.Context) error {
	tables, err := h.Tables.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tables})
}

// Get handles GET /v1/tables/:id.
func (h *TableHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	table, err := h.Tables.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch table"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": table})
}

// Create handles POST /v1/tables.
func (h *TableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Zones.GetByID(ctx, req.ZoneID); err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	table := &repository.Table{
		Number:      req.Number,
		Capacity:    req.Capacity,
		Status:      req.Status,
		Description: req.Description,
		Zone:        repository.Zone{ID: req.ZoneID},
	}
	if err := h.Tables.Create(ctx, table); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": table})
}

// Update handles PATCH /v1/tables/:id. The whole row is rewritten; clients
// send the full desired state.
func (h *TableHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if req.Status == "" {
		req.Status = model.TableAvailable
	}
	ctx := c.Request().Context()
	if _, err := h.Zones.GetByID(ctx, req.ZoneID); err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	table := &repository.Table{
		ID:          id,
		Number:      req.Number,
		Capacity:    req.Capacity,
		Status:      req.Status,
		Description: req.Description,
		Zone:        repository.Zone{ID: req.ZoneID},
	}
	if err := h.Tables.Update(ctx, table); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update table"})
	}
	stored, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch table"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": stored})
}

// Delete handles DELETE /v1/tables/:id. Tables with historic reservations
// are protected by the schema's foreign key and come back as a conflict.
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if err := h.Tables.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "table cannot be deleted"})
	}
	return c.NoContent(http.StatusNoContent)
}
