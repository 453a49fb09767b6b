package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/fieldspec"
)

// Fields returns the field specification for an entity. The admin client
// renders its filter drawer, add modal and detail modal from this single
// payload.
func Fields(c echo.Context) error {
	fields, ok := fieldspec.ByEntity(c.Param("entity"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown entity"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": fields})
}
