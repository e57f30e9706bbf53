package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/handler"
)

// RegisterPublic registers the unauthenticated booking surface: availability
// reads, reservation create, the customer lookup and the zone catalog.
//
// rateLimit guards every public route against abuse. catalogCache is applied
// to the zone catalog only: zones change when staff edit them, which is rare,
// while availability answers change with every booking and must always be
// computed fresh.
func RegisterPublic(e *echo.Echo,
	av *handler.AvailabilityHandler,
	res *handler.ReservationHandler,
	zones *handler.ZoneHandler,
	rateLimit echo.MiddlewareFunc,
	catalogCache echo.MiddlewareFunc,
) {
	g := e.Group("/v1", rateLimit)

	g.GET("/reservations/availability/slots", av.OpenSlots)
	g.GET("/reservations/availability/tables", av.OpenTables)
	g.POST("/reservations", res.Create)
	g.GET("/reservations/lookup", res.Lookup)

	g.GET("/zones", zones.List, catalogCache)
	g.GET("/zones/:id", zones.Get, catalogCache)
}
