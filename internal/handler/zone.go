package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/repository"
)

// ZoneHandler manages dining zones. List and Get are public so the booking
// form can populate its zone selector; mutations are staff-only.
type ZoneHandler struct {
	Zones *repository.ZoneRepo
}

func NewZoneHandler(z *repository.ZoneRepo) *ZoneHandler {
	if z == nil {
		panic("nil repository passed to NewZoneHandler")
	}
	return &ZoneHandler{Zones: z}
}

type zoneReq struct {
	Name string `json:"nombre"`
}

// List handles GET /v1/zones.
func (h *ZoneHandler) List(c echo.Context) error {
	zones, err := h.Zones.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load zones"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": zones})
}

// Get handles GET /v1/zones/:id.
func (h *ZoneHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	zone, err := h.Zones.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch zone"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": zone})
}

// Create handles POST /v1/zones.
func (h *ZoneHandler) Create(c echo.Context) error {
	var req zoneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre is required"})
	}
	zone := &repository.Zone{Name: req.Name}
	if err := h.Zones.Create(c.Request().Context(), zone); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create zone"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": zone})
}

// Update handles PATCH /v1/zones/:id.
func (h *ZoneHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	var req zoneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre is required"})
	}
	if err := h.Zones.Update(c.Request().Context(), id, req.Name); err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update zone"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": repository.Zone{ID: id, Name: req.Name}})
}

// Delete handles DELETE /v1/zones/:id. A zone that still owns tables is
// protected by the schema's foreign key and comes back as a conflict.
func (h *ZoneHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	if err := h.Zones.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "zone cannot be deleted"})
	}
	return c.NoContent(http.StatusNoContent)
}
