package kiosk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/queue"
	"github.com/gatepass/vehicle-access/internal/repository"
)

type stubVehicles struct {
	byPlate map[string][]model.Vehicle
	byID    map[string]model.Vehicle
	err     error
}

func (s *stubVehicles) SearchByPlate(_ context.Context, plate string) ([]model.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byPlate[plate], nil
}

func (s *stubVehicles) GetByID(_ context.Context, id string) (model.Vehicle, error) {
	if s.err != nil {
		return model.Vehicle{}, s.err
	}
	v, ok := s.byID[id]
	if !ok {
		return model.Vehicle{}, repository.ErrNotFound
	}
	return v, nil
}

type stubDrivers struct {
	byVehicle map[string][]model.Person
}

func (s *stubDrivers) ListByVehicle(_ context.Context, vehicleID string) ([]model.Person, error) {
	return s.byVehicle[vehicleID], nil
}

type stubRecords struct {
	inserted []model.AccessRecord
	err      error
}

func (s *stubRecords) Insert(_ context.Context, rec *model.AccessRecord) error {
	if s.err != nil {
		return s.err
	}
	rec.ID = "rec-1"
	s.inserted = append(s.inserted, *rec)
	return nil
}

type stubPublisher struct {
	events []queue.EntryRecordedEvent
	err    error
}

func (s *stubPublisher) PublishEntryRecorded(_ context.Context, ev queue.EntryRecordedEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

func newTestFlow(t *testing.T) (*Flow, *stubVehicles, *stubRecords, *stubPublisher) {
	t.Helper()
	v := vehicle("v1", "12가3456")
	vehicles := &stubVehicles{
		byPlate: map[string][]model.Vehicle{"3456": {v}},
		byID:    map[string]model.Vehicle{"v1": v},
	}
	drivers := &stubDrivers{byVehicle: map[string][]model.Person{
		"v1": {person("p1", "김철수")},
	}}
	records := &stubRecords{}
	pub := &stubPublisher{}
	flow := NewFlow(NewMemoryStore(time.Minute), vehicles, drivers, records, pub, time.UTC)
	return flow, vehicles, records, pub
}

func TestFlow_GetCreatesFreshSession(t *testing.T) {
	flow, _, _, _ := newTestFlow(t)

	s, err := flow.Get(context.Background(), "sid")
	require.NoError(t, err)
	require.Equal(t, NewState(), s)
}

func TestFlow_SearchExactMatchLoadsDrivers(t *testing.T) {
	flow, _, _, _ := newTestFlow(t)
	ctx := context.Background()

	s, err := flow.Search(ctx, "sid", "3456")
	require.NoError(t, err)
	require.Equal(t, ModeInfo, s.Mode)
	require.Len(t, s.Drivers, 1)
	require.Equal(t, "p1", s.Driver().ID)

	// State survives across calls through the store.
	again, err := flow.Get(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, s, again)
}

func TestFlow_SearchFetchErrorLeavesStateUntouched(t *testing.T) {
	flow, vehicles, _, _ := newTestFlow(t)
	ctx := context.Background()

	before, err := flow.Get(ctx, "sid")
	require.NoError(t, err)

	vehicles.err = errors.New("db down")
	_, err = flow.Search(ctx, "sid", "3456")
	require.Error(t, err)

	after, err := flow.Get(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestFlow_SaveRecordFillsSessionContext(t *testing.T) {
	flow, _, records, pub := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Search(ctx, "sid", "3456")
	require.NoError(t, err)

	s, rec, err := flow.SaveRecord(ctx, "sid", RecordDraft{
		PlateNumber: " 12가3456 ",
		DriverName:  " 김철수 ",
		DriverPhone: "01012345678",
		Purpose:     "납품",
	})
	require.NoError(t, err)

	require.Len(t, records.inserted, 1)
	require.Equal(t, "12가3456", rec.RawPlateNumber)
	require.Equal(t, "김철수", rec.RawPersonName)
	require.NotNil(t, rec.VehicleID)
	require.Equal(t, "v1", *rec.VehicleID)
	require.NotNil(t, rec.PersonID)
	require.Equal(t, "p1", *rec.PersonID)
	require.False(t, rec.EnteredAt.IsZero())
	require.Nil(t, rec.ExitedAt)

	// Session returned to the initial search screen.
	require.Equal(t, NewState(), s)

	// Entry event published with the snapshot; the phone is hyphenated
	// for the gate log.
	require.Len(t, pub.events, 1)
	require.Equal(t, "rec-1", pub.events[0].RecordID)
	require.Equal(t, "12가3456", pub.events[0].PlateNumber)
	require.Equal(t, "010-1234-5678", pub.events[0].PersonPhone)
}

func TestFlow_SaveRecordNewDriverTabOmitsPersonID(t *testing.T) {
	flow, _, _, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Search(ctx, "sid", "3456")
	require.NoError(t, err)
	_, err = flow.SelectNewDriver(ctx, "sid")
	require.NoError(t, err)

	_, rec, err := flow.SaveRecord(ctx, "sid", RecordDraft{
		PlateNumber: "12가3456",
		DriverName:  "새운전자",
	})
	require.NoError(t, err)
	require.Nil(t, rec.PersonID)
	require.NotNil(t, rec.VehicleID)
}

func TestFlow_SaveRecordValidation(t *testing.T) {
	flow, _, records, _ := newTestFlow(t)
	ctx := context.Background()

	_, _, err := flow.SaveRecord(ctx, "sid", RecordDraft{DriverName: "김철수"})
	require.ErrorIs(t, err, ErrMissingRequired)

	_, _, err = flow.SaveRecord(ctx, "sid", RecordDraft{PlateNumber: "1234"})
	require.ErrorIs(t, err, ErrMissingRequired)

	require.Empty(t, records.inserted)
}

func TestFlow_SaveRecordStorageFailureKeepsSession(t *testing.T) {
	flow, _, records, pub := newTestFlow(t)
	ctx := context.Background()

	before, err := flow.Search(ctx, "sid", "3456")
	require.NoError(t, err)

	records.err = errors.New("insert failed")
	_, _, err = flow.SaveRecord(ctx, "sid", RecordDraft{PlateNumber: "1234", DriverName: "김철수"})
	require.Error(t, err)

	after, err := flow.Get(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Empty(t, pub.events)
}

func TestFlow_PublishFailureDoesNotFailSave(t *testing.T) {
	flow, _, records, pub := newTestFlow(t)
	ctx := context.Background()

	pub.err = errors.New("broker down")
	_, _, err := flow.SaveRecord(ctx, "sid", RecordDraft{PlateNumber: "1234", DriverName: "김철수"})
	require.NoError(t, err)
	require.Len(t, records.inserted, 1)
}

func TestBuildRecord_Timestamps(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	rec, err := BuildRecord(RecordDraft{PlateNumber: "1234", DriverName: "김철수"}, seoul)
	require.NoError(t, err)

	require.Equal(t, seoul, rec.EnteredAt.Location())
	require.Equal(t, time.UTC, rec.CreatedAt.Location())
	require.WithinDuration(t, time.Now(), rec.CreatedAt, 5*time.Second)
}
