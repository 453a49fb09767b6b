package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestFields_KnownEntity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/fields/people", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/fields/:entity")
	c.SetParamNames("entity")
	c.SetParamValues("people")

	require.NoError(t, Fields(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Key  string `json:"key"`
			Kind string `json:"kind"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)

	keys := map[string]string{}
	for _, f := range body.Data {
		keys[f.Key] = f.Kind
	}
	require.Equal(t, "text", keys["name"])
	require.Equal(t, "select", keys["vip_level"])
	require.Equal(t, "file", keys["photo_path"])
}

func TestFields_UnknownEntity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/fields/shows", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/fields/:entity")
	c.SetParamNames("entity")
	c.SetParamValues("shows")

	require.NoError(t, Fields(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
