package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/fieldspec"
	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/repository"
)

// PhotoURLResolver turns a stored photo key into a fetchable URL.
type PhotoURLResolver interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}

// PeopleHandler serves the driver/visitor admin screen.
type PeopleHandler struct {
	People *repository.PersonRepo
	Photos PhotoURLResolver // may be nil when storage is not configured
}

func NewPeopleHandler(p *repository.PersonRepo, photos PhotoURLResolver) *PeopleHandler {
	return &PeopleHandler{People: p, Photos: photos}
}

// personDetail decorates a person with the resolved photo URL.
type personDetail struct {
	model.Person
	PhotoURL string `json:"photo_url,omitempty"`
}

// List returns one filtered page of people plus the total count.
func (h *PeopleHandler) List(c echo.Context) error {
	f := repository.PersonFilter{
		Name:          strings.TrimSpace(c.QueryParam("name")),
		Organization:  strings.TrimSpace(c.QueryParam("organization")),
		OrgDeptPos:    strings.TrimSpace(c.QueryParam("org_dept_pos")),
		Phone:         strings.TrimSpace(c.QueryParam("phone_number")),
		VIPLevel:      strings.TrimSpace(c.QueryParam("vip_level")),
		Status:        strings.TrimSpace(c.QueryParam("status")),
		IsWorker:      queryBool(c, "is_worker"),
		ActivityStart: queryDate(c, "activity_start_date"),
		ActivityEnd:   queryDate(c, "activity_end_date"),
	}
	page := queryPage(c)

	items, total, err := h.People.List(c.Request().Context(), f, page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, repository.Paged[model.Person]{
		Data: items, Count: total, Page: page.Num, PageSize: page.Size,
	})
}

// Get returns one person with the photo URL resolved for the detail view.
func (h *PeopleHandler) Get(c echo.Context) error {
	p, err := h.People.GetByID(c.Request().Context(), c.Param("id"))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}

	detail := personDetail{Person: p}
	if h.Photos != nil && p.PhotoPath != nil && *p.PhotoPath != "" {
		if url, err := h.Photos.ResolveURL(c.Request().Context(), *p.PhotoPath); err == nil {
			detail.PhotoURL = url
		}
	}
	return c.JSON(http.StatusOK, detail)
}

// Create runs the add-form submit protocol over the people field
// specification and inserts the composed row. The org_dept_pos display
// string is derived by the spec's generator, not supplied by the client.
func (h *PeopleHandler) Create(c echo.Context) error {
	form := map[string]any{}
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	composed, err := fieldspec.Submit(fieldspec.People(), form)
	if err != nil {
		if ve, ok := err.(*fieldspec.ValidationError); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation", "field": ve.Key, "message": ve.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	p := model.Person{
		Name:               fieldspec.Str(composed, "name"),
		PhoneNumber:        fieldspec.Str(composed, "phone_number"),
		Organization:       fieldspec.Str(composed, "organization"),
		Department:         fieldspec.StrPtr(composed, "department"),
		Position:           fieldspec.StrPtr(composed, "position"),
		OrgDeptPos:         fieldspec.StrPtr(composed, "org_dept_pos"),
		PhotoPath:          fieldspec.StrPtr(composed, "photo_path"),
		VIPLevel:           fieldspec.Str(composed, "vip_level"),
		IsWorker:           fieldspec.Bool(composed, "is_worker"),
		ActivityStartDate:  fieldspec.Date(composed, "activity_start_date"),
		ActivityEndDate:    fieldspec.Date(composed, "activity_end_date"),
		ContactPersonName:  fieldspec.StrPtr(composed, "contact_person_name"),
		ContactPersonPhone: fieldspec.StrPtr(composed, "contact_person_phone"),
		Status:             fieldspec.Str(composed, "status"),
	}
	if err := h.People.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateStatus moves a person between lifecycle states.
func (h *PeopleHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil || !validStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be active/inactive/blocked"})
	}
	err := h.People.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
