package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/queue"
	"github.com/gatepass/vehicle-access/internal/repository"
)

type stubRecordStore struct {
	inserted []model.AccessRecord
}

func (s *stubRecordStore) Insert(_ context.Context, rec *model.AccessRecord) error {
	rec.ID = "rec-1"
	s.inserted = append(s.inserted, *rec)
	return nil
}

func (s *stubRecordStore) List(context.Context, repository.RecordFilter, repository.Page) ([]model.AccessRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubRecordStore) GetByID(context.Context, string) (model.AccessRecord, error) {
	return model.AccessRecord{}, repository.ErrNotFound
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) PublishEntryRecorded(context.Context, queue.EntryRecordedEvent) error {
	p.calls++
	return errors.New("broker down")
}

func saveContext(t *testing.T, e *echo.Echo, payload map[string]any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/records", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecordsSave_PublishFailureDoesNotFailSave(t *testing.T) {
	store := &stubRecordStore{}
	pub := &failingPublisher{}
	h := NewRecordsHandler(store, pub, time.UTC)

	var logged bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logged)
	defer log.SetOutput(prev)

	c, rec := saveContext(t, echo.New(), map[string]any{
		"plate_number": "12가3456",
		"driver_name":  "김철수",
	})
	require.NoError(t, h.Save(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "저장되었습니다.", body.Message)

	require.Len(t, store.inserted, 1)
	require.Equal(t, 1, pub.calls)
	require.True(t, strings.Contains(logged.String(), "publish entry event failed"))
}

func TestRecordsSave_MissingRequiredFields(t *testing.T) {
	store := &stubRecordStore{}
	pub := &failingPublisher{}
	h := NewRecordsHandler(store, pub, time.UTC)

	c, rec := saveContext(t, echo.New(), map[string]any{
		"plate_number": "  ",
		"driver_name":  "김철수",
	})
	require.NoError(t, h.Save(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, "차량번호와 운전자명은 필수입니다.", body.Message)
	require.Empty(t, store.inserted)
	require.Zero(t, pub.calls)
}
