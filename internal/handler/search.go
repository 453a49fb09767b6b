package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/repository"
)

// SearchHandler serves the kiosk lookup endpoints. These are plain reads
// with no session attached; the stateful flow in kiosk.go calls the same
// repositories.
type SearchHandler struct {
	Vehicles *repository.VehicleRepo
	People   *repository.PersonRepo
}

func NewSearchHandler(v *repository.VehicleRepo, p *repository.PersonRepo) *SearchHandler {
	return &SearchHandler{Vehicles: v, People: p}
}

type vehicleSearchReq struct {
	PlateNumber string `json:"plate_number"`
}

type vehicleIDReq struct {
	VehicleID string `json:"vehicle_id"`
}

// SearchVehicles returns active vehicles whose plate contains the query,
// case-insensitively, plate descending. No query returns all active
// vehicles.
func (h *SearchHandler) SearchVehicles(c echo.Context) error {
	var req vehicleSearchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	items, err := h.Vehicles.SearchByPlate(c.Request().Context(), strings.TrimSpace(req.PlateNumber))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// SearchDrivers resolves the active drivers associated with a vehicle.
func (h *SearchHandler) SearchDrivers(c echo.Context) error {
	var req vehicleIDReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.VehicleID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id required"})
	}

	items, err := h.People.ListByVehicle(c.Request().Context(), strings.TrimSpace(req.VehicleID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// SearchVehicleInfo is the exact-id lookup backing the info screen. The
// result is wrapped in a list for symmetry with the other search
// endpoints; an unknown id yields an empty list, not a 404.
func (h *SearchHandler) SearchVehicleInfo(c echo.Context) error {
	var req vehicleIDReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.VehicleID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id required"})
	}

	v, err := h.Vehicles.GetByID(c.Request().Context(), strings.TrimSpace(req.VehicleID))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{"data": []any{}})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": []any{v}})
}
