package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/fieldspec"
	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/repository"
)

// VehiclesHandler serves the vehicle admin screen.
type VehiclesHandler struct {
	Vehicles *repository.VehicleRepo
	People   *repository.PersonRepo
}

func NewVehiclesHandler(v *repository.VehicleRepo, p *repository.PersonRepo) *VehiclesHandler {
	return &VehiclesHandler{Vehicles: v, People: p}
}

// List returns one filtered page of vehicles plus the total count.
func (h *VehiclesHandler) List(c echo.Context) error {
	f := repository.VehicleFilter{
		PlateNumber:     strings.TrimSpace(c.QueryParam("plate_number")),
		VehicleType:     strings.TrimSpace(c.QueryParam("vehicle_type")),
		OwnerDepartment: strings.TrimSpace(c.QueryParam("owner_department")),
		SpecialNotes:    strings.TrimSpace(c.QueryParam("special_notes")),
		Status:          strings.TrimSpace(c.QueryParam("status")),
		IsPublic:        queryBool(c, "is_public_vehicle"),
		FreePass:        queryBool(c, "is_free_pass_enabled"),
		AccessStart:     queryDate(c, "access_start_date"),
		AccessEnd:       queryDate(c, "access_end_date"),
	}
	page := queryPage(c)

	items, total, err := h.Vehicles.List(c.Request().Context(), f, page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, repository.Paged[model.Vehicle]{
		Data: items, Count: total, Page: page.Num, PageSize: page.Size,
	})
}

// Get returns one vehicle.
func (h *VehiclesHandler) Get(c echo.Context) error {
	v, err := h.Vehicles.GetByID(c.Request().Context(), c.Param("id"))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, v)
}

// Create runs the add-form submit protocol over the vehicle field
// specification and inserts the composed row.
func (h *VehiclesHandler) Create(c echo.Context) error {
	form := map[string]any{}
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	composed, err := fieldspec.Submit(fieldspec.Vehicles(), form)
	if err != nil {
		if ve, ok := err.(*fieldspec.ValidationError); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation", "field": ve.Key, "message": ve.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	v := model.Vehicle{
		PlateNumber:       fieldspec.Str(composed, "plate_number"),
		VehicleType:       fieldspec.Str(composed, "vehicle_type"),
		IsPublicVehicle:   fieldspec.Bool(composed, "is_public_vehicle"),
		OwnerDepartment:   fieldspec.StrPtr(composed, "owner_department"),
		AccessStartDate:   fieldspec.Date(composed, "access_start_date"),
		AccessEndDate:     fieldspec.Date(composed, "access_end_date"),
		IsFreePassEnabled: fieldspec.Bool(composed, "is_free_pass_enabled"),
		SpecialNotes:      fieldspec.Str(composed, "special_notes"),
		Status:            fieldspec.Str(composed, "status"),
	}
	if err := h.Vehicles.Create(c.Request().Context(), &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a vehicle between lifecycle states; vehicles are
// never deleted.
func (h *VehiclesHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil || !validStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be active/inactive/blocked"})
	}
	err := h.Vehicles.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type linkReq struct {
	PersonID string `json:"person_id"`
}

// LinkPerson associates a driver with the vehicle. Duplicate links are
// accepted silently.
func (h *VehiclesHandler) LinkPerson(c echo.Context) error {
	var req linkReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PersonID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "person_id required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Vehicles.GetByID(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if _, err := h.People.GetByID(ctx, req.PersonID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	if err := h.People.Link(ctx, c.Param("id"), req.PersonID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "link failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Drivers lists the active drivers linked to the vehicle.
func (h *VehiclesHandler) Drivers(c echo.Context) error {
	items, err := h.People.ListByVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func validStatus(s string) bool {
	switch s {
	case model.StatusActive, model.StatusInactive, model.StatusBlocked:
		return true
	}
	return false
}
