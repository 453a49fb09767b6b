package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/kiosk"
	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/queue"
	"github.com/gatepass/vehicle-access/internal/repository"
	"github.com/gatepass/vehicle-access/internal/utils"
)

// RecordStore is the record-repository surface the log screen and direct
// save path need.
type RecordStore interface {
	Insert(ctx context.Context, rec *model.AccessRecord) error
	List(ctx context.Context, f repository.RecordFilter, p repository.Page) ([]model.AccessRecord, int64, error)
	GetByID(ctx context.Context, id string) (model.AccessRecord, error)
}

// RecordsHandler serves the access-record log screen and the direct save
// endpoint used when a record is written without a kiosk session (manual
// backfill from the guard booth).
type RecordsHandler struct {
	Records RecordStore
	Pub     kiosk.Publisher // may be nil
	Loc     *time.Location
}

func NewRecordsHandler(r RecordStore, pub kiosk.Publisher, loc *time.Location) *RecordsHandler {
	return &RecordsHandler{Records: r, Pub: pub, Loc: loc}
}

// List returns one filtered page of records, most recent entry first.
func (h *RecordsHandler) List(c echo.Context) error {
	f := repository.RecordFilter{
		PlateNumber: strings.TrimSpace(c.QueryParam("plate_number")),
		VehicleType: strings.TrimSpace(c.QueryParam("vehicle_type")),
		Name:        strings.TrimSpace(c.QueryParam("name")),
		OrgDeptPos:  strings.TrimSpace(c.QueryParam("org_dept_pos")),
		Phone:       strings.TrimSpace(c.QueryParam("phone")),
		Passengers:  strings.TrimSpace(c.QueryParam("passengers")),
		Purpose:     strings.TrimSpace(c.QueryParam("purpose")),
		Notes:       strings.TrimSpace(c.QueryParam("notes")),
		Start:       queryDate(c, "start_date"),
		End:         queryDate(c, "end_date"),
	}
	page := queryPage(c)

	items, total, err := h.Records.List(c.Request().Context(), f, page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, repository.Paged[model.AccessRecord]{
		Data: items, Count: total, Page: page.Num, PageSize: page.Size,
	})
}

// Get returns one record.
func (h *RecordsHandler) Get(c echo.Context) error {
	rec, err := h.Records.GetByID(c.Request().Context(), c.Param("id"))
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

type directSaveReq struct {
	kiosk.RecordDraft
	VehicleID  *string `json:"vehicle_id"`
	PersonID   *string `json:"person_id"`
	IsFreePass bool    `json:"is_free_pass"`
}

// Save writes a record directly, outside any kiosk session. Same
// validation and envelope as the kiosk save path.
func (h *RecordsHandler) Save(c echo.Context) error {
	var req directSaveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "data": nil, "message": "invalid body",
		})
	}

	rec, err := kiosk.BuildRecord(req.RecordDraft, h.Loc)
	if err == kiosk.ErrMissingRequired {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "data": nil, "message": "차량번호와 운전자명은 필수입니다.",
		})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "data": nil, "message": err.Error(),
		})
	}
	rec.VehicleID = req.VehicleID
	rec.PersonID = req.PersonID
	rec.IsFreePass = req.IsFreePass

	ctx := c.Request().Context()
	if err := h.Records.Insert(ctx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false, "data": nil, "message": "기록 저장에 실패했습니다.",
		})
	}

	// Fire-and-forget, same as the kiosk path: a broker outage must not
	// fail a saved record.
	if h.Pub != nil {
		ev := queue.EntryRecordedEvent{
			RecordID:     rec.ID,
			VehicleID:    rec.VehicleID,
			PersonID:     rec.PersonID,
			PlateNumber:  rec.RawPlateNumber,
			VehicleType:  rec.RawVehicleType,
			PersonName:   rec.RawPersonName,
			PersonPhone:  utils.FormatPhone(rec.RawPersonPhone),
			Organization: rec.DriverOrganization,
			Purpose:      rec.Purpose,
			IsFreePass:   rec.IsFreePass,
			EnteredAt:    rec.EnteredAt.Format(time.RFC3339),
		}
		if err := h.Pub.PublishEntryRecorded(ctx, ev); err != nil {
			log.Printf("records: publish entry event failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "data": rec, "message": "저장되었습니다.",
	})
}

// queryPage reads page/page_size with the admin-table defaults.
func queryPage(c echo.Context) repository.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps > 100 {
		ps = 100
	}
	return repository.Page{Num: page, Size: ps}.Normalize()
}

// queryDate reads a civil-date query param ("2006-01-02"), nil when absent
// or malformed.
func queryDate(c echo.Context, key string) *time.Time {
	v := strings.TrimSpace(c.QueryParam(key))
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

// queryBool reads an optional boolean filter, nil when the param is
// absent or the sentinel "전체".
func queryBool(c echo.Context, key string) *bool {
	v := strings.TrimSpace(c.QueryParam(key))
	switch v {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}
