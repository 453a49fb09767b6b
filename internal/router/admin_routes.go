package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/handler"
	"github.com/gatepass/vehicle-access/internal/middleware"
	"github.com/gatepass/vehicle-access/internal/model"
)

// RegisterAdmin registers the management screens: vehicles, people, the
// access-record log, photo upload and the field specifications. Reads are
// open to guards and admins; writes are admin-only.
func RegisterAdmin(e *echo.Echo,
	v *handler.VehiclesHandler,
	p *handler.PeopleHandler,
	r *handler.RecordsHandler,
	u *handler.UploadHandler,
	jwtSecret string,
	fieldsCache echo.MiddlewareFunc,
) {
	read := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin, model.RoleGuard))
	write := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))

	read.GET("/vehicles", v.List)
	read.GET("/vehicles/:id", v.Get)
	read.GET("/vehicles/:id/people", v.Drivers)
	write.POST("/vehicles", v.Create)
	write.PATCH("/vehicles/:id/status", v.UpdateStatus)
	write.POST("/vehicles/:id/people", v.LinkPerson)

	read.GET("/people", p.List)
	read.GET("/people/:id", p.Get)
	write.POST("/people", p.Create)
	write.PATCH("/people/:id/status", p.UpdateStatus)

	read.GET("/records", r.List)
	read.GET("/records/:id", r.Get)
	// Guards may backfill records manually from the booth.
	read.POST("/records", r.Save)

	write.POST("/uploads", u.Photo)

	// Field specs change only on deploy; cache them.
	read.GET("/fields/:entity", handler.Fields, fieldsCache)
}
