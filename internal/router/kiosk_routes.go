package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/handler"
)

// RegisterKiosk registers the gate-terminal endpoints. The kiosk runs
// unauthenticated on a locked-down terminal inside the gate network, so
// these routes carry no JWT; the save path is rate limited instead (see
// cmd/server).
func RegisterKiosk(e *echo.Echo, k *handler.KioskHandler, s *handler.SearchHandler, saveLimiter echo.MiddlewareFunc) {
	// Stateless lookups used by the terminal and by diagnostics.
	e.POST("/v1/search/vehicles", s.SearchVehicles)
	e.POST("/v1/search/drivers", s.SearchDrivers)
	e.POST("/v1/search/vehicle-info", s.SearchVehicleInfo)

	// Session flow. Every call answers with the full session state.
	g := e.Group("/v1/kiosk/sessions")
	g.POST("", k.CreateSession)
	g.GET("/:id", k.GetSession)
	g.POST("/:id/search", k.Search)
	g.POST("/:id/choose", k.Choose)
	g.POST("/:id/record", k.OpenRecord)
	g.POST("/:id/driver", k.SelectDriver)
	g.POST("/:id/driver/new", k.NewDriverTab)
	g.POST("/:id/driver/existing", k.ExistingDriverTab)
	g.POST("/:id/back", k.Back)
	g.POST("/:id/reset", k.Reset)
	g.POST("/:id/save", k.SaveRecord, saveLimiter)
}
