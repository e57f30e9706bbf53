package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elfogon/restaurant-reservations/internal/handler"
	"github.com/elfogon/restaurant-reservations/internal/middleware"
)

// RegisterStaff registers the staff administration surface: catalog
// mutations and reservation management. Every route requires a valid access
// token with the ADMIN or WAITER role.
func RegisterStaff(e *echo.Echo,
	zones *handler.ZoneHandler,
	tables *handler.TableHandler,
	slots *handler.SlotHandler,
	res *handler.ReservationHandler,
	jwtSecret string,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "WAITER"))

	// Zone list/detail stay public; only mutations live here.
	g.POST("/zones", zones.Create)
	g.PATCH("/zones/:id", zones.Update)
	g.DELETE("/zones/:id", zones.Delete)

	g.GET("/tables", tables.List)
	g.GET("/tables/:id", tables.Get)
	g.POST("/tables", tables.Create)
	g.PATCH("/tables/:id", tables.Update)
	g.DELETE("/tables/:id", tables.Delete)

	g.GET("/slots", slots.List)
	g.GET("/slots/:id", slots.Get)
	g.POST("/slots", slots.Create)
	g.PATCH("/slots/:id", slots.Update)
	g.DELETE("/slots/:id", slots.Delete)

	g.GET("/reservations", res.List)
	g.GET("/reservations/:id", res.Get)
	g.PATCH("/reservations/:id", res.UpdateEstado)
	g.DELETE("/reservations/:id", res.Delete)
}
