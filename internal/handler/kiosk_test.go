package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gatepass/vehicle-access/internal/kiosk"
)

// A flow over the in-memory store with no data sources is enough for the
// paths that never reach the database.
func newKioskHandler() *KioskHandler {
	flow := kiosk.NewFlow(kiosk.NewMemoryStore(time.Minute), nil, nil, nil, nil, time.UTC)
	return NewKioskHandler(flow)
}

func kioskCtx(e *echo.Echo, method, target, body, sid string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sid)
	return c, rec
}

func TestKiosk_GetSessionCreatesFreshState(t *testing.T) {
	e := echo.New()
	h := newKioskHandler()

	c, rec := kioskCtx(e, http.MethodGet, "/v1/kiosk/sessions/abc", "", "abc")
	require.NoError(t, h.GetSession(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string `json:"session_id"`
		State     struct {
			Mode      string `json:"mode"`
			DriverIdx int    `json:"driver_idx"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "abc", resp.SessionID)
	require.Equal(t, "search", resp.State.Mode)
	require.Equal(t, -1, resp.State.DriverIdx)
}

func TestKiosk_SaveRecordRequiresPlateAndName(t *testing.T) {
	e := echo.New()
	h := newKioskHandler()

	c, rec := kioskCtx(e, http.MethodPost, "/v1/kiosk/sessions/abc/save",
		`{"driver_name":"김철수"}`, "abc")
	require.NoError(t, h.SaveRecord(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "차량번호와 운전자명은 필수입니다.", resp.Message)
}

func TestKiosk_ResetReturnsInitialState(t *testing.T) {
	e := echo.New()
	h := newKioskHandler()

	c, rec := kioskCtx(e, http.MethodPost, "/v1/kiosk/sessions/abc/reset", "", "abc")
	require.NoError(t, h.Reset(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		State struct {
			Mode string `json:"mode"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "search", resp.State.Mode)
}
