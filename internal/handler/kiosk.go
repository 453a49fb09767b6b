package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/kiosk"
)

// KioskHandler exposes the kiosk session flow over HTTP. Every endpoint
// returns the full session state so the terminal renders from a single
// source of truth; an expired or unknown session silently becomes a fresh
// search screen.
type KioskHandler struct {
	Flow *kiosk.Flow
}

func NewKioskHandler(f *kiosk.Flow) *KioskHandler {
	return &KioskHandler{Flow: f}
}

type sessionResp struct {
	SessionID string      `json:"session_id"`
	State     kiosk.State `json:"state"`
}

type searchReq struct {
	PlateNumber string `json:"plate_number"`
}

type chooseReq struct {
	// VehicleID nil means the operator picked "register new".
	VehicleID *string `json:"vehicle_id"`
}

type openRecordReq struct {
	VehicleID string `json:"vehicle_id"`
}

type driverReq struct {
	Index int `json:"index"`
}

// CreateSession mints a session id and returns the initial state.
func (h *KioskHandler) CreateSession(c echo.Context) error {
	sid := uuid.NewString()
	s, err := h.Flow.Get(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusCreated, sessionResp{SessionID: sid, State: s})
}

// GetSession returns the current state, resurrecting expired sessions as
// fresh ones.
func (h *KioskHandler) GetSession(c echo.Context) error {
	sid := c.Param("id")
	s, err := h.Flow.Get(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// Search runs a plate query against the session.
func (h *KioskHandler) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	sid := c.Param("id")
	s, err := h.Flow.Search(c.Request().Context(), sid, req.PlateNumber)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// Choose resolves a disambiguation pick.
func (h *KioskHandler) Choose(c echo.Context) error {
	var req chooseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	sid := c.Param("id")
	s, err := h.Flow.Choose(c.Request().Context(), sid, req.VehicleID)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// OpenRecord moves from the info screen to record entry.
func (h *KioskHandler) OpenRecord(c echo.Context) error {
	var req openRecordReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.VehicleID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id required"})
	}
	sid := c.Param("id")
	s, err := h.Flow.OpenRecord(c.Request().Context(), sid, req.VehicleID)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// SelectDriver moves the driver carousel. The index comes from the body;
// out-of-range picks are ignored by the transition and simply echo the
// state back.
func (h *KioskHandler) SelectDriver(c echo.Context) error {
	var req driverReq
	if err := c.Bind(&req); err != nil {
		// Also accept ?index= for dumb clients.
		idx, convErr := strconv.Atoi(c.QueryParam("index"))
		if convErr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		req.Index = idx
	}
	sid := c.Param("id")
	s, err := h.Flow.SelectDriver(c.Request().Context(), sid, req.Index)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// NewDriverTab deselects the driver, remembering the carousel position.
func (h *KioskHandler) NewDriverTab(c echo.Context) error {
	sid := c.Param("id")
	s, err := h.Flow.SelectNewDriver(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// ExistingDriverTab restores the previously selected driver.
func (h *KioskHandler) ExistingDriverTab(c echo.Context) error {
	sid := c.Param("id")
	s, err := h.Flow.SelectExistingDriver(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// Back applies the screen-dependent back rules. The terminal binds both
// its on-screen back button and the browser back button here.
func (h *KioskHandler) Back(c echo.Context) error {
	sid := c.Param("id")
	s, err := h.Flow.Back(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// Reset clears the session, as a terminal reload does.
func (h *KioskHandler) Reset(c echo.Context) error {
	sid := c.Param("id")
	s, err := h.Flow.Reset(c.Request().Context(), sid)
	if err != nil {
		return kioskErr(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp{SessionID: sid, State: s})
}

// SaveRecord persists the record form and returns the session to search
// mode. The response keeps the {success, data, message} envelope the
// terminal was originally written against.
func (h *KioskHandler) SaveRecord(c echo.Context) error {
	var draft kiosk.RecordDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "data": nil, "message": "invalid body",
		})
	}
	sid := c.Param("id")

	s, rec, err := h.Flow.SaveRecord(c.Request().Context(), sid, draft)
	if err == kiosk.ErrMissingRequired {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "data": nil, "message": "차량번호와 운전자명은 필수입니다.",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false, "data": nil, "message": "기록 저장에 실패했습니다.",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "data": rec, "message": "저장되었습니다.", "state": s,
	})
}

func kioskErr(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session_error", "message": err.Error()})
}
