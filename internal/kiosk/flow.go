package kiosk

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gatepass/vehicle-access/internal/model"
	"github.com/gatepass/vehicle-access/internal/queue"
	"github.com/gatepass/vehicle-access/internal/utils"
)

// ErrMissingRequired rejects record drafts without the two mandatory raw
// fields. Handlers translate it into a 400 with the operator message.
var ErrMissingRequired = errors.New("plate number and driver name are required")

// VehicleSource is the subset of the vehicle repository the flow needs.
type VehicleSource interface {
	SearchByPlate(ctx context.Context, plate string) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id string) (model.Vehicle, error)
}

// DriverSource resolves the drivers associated with a vehicle.
type DriverSource interface {
	ListByVehicle(ctx context.Context, vehicleID string) ([]model.Person, error)
}

// RecordSink persists access records.
type RecordSink interface {
	Insert(ctx context.Context, rec *model.AccessRecord) error
}

// Publisher emits entry events after a successful save. Publishing is
// fire-and-forget: errors are logged and never fail the save.
type Publisher interface {
	PublishEntryRecorded(ctx context.Context, ev queue.EntryRecordedEvent) error
}

// Flow orchestrates kiosk sessions: it loads the session, performs the
// fetches an event needs, applies the pure Transition and saves the
// result. A failed fetch returns the error with the prior state left
// untouched in the store.
type Flow struct {
	store    SessionStore
	vehicles VehicleSource
	drivers  DriverSource
	records  RecordSink
	pub      Publisher // may be nil
	loc      *time.Location
}

func NewFlow(store SessionStore, vehicles VehicleSource, drivers DriverSource, records RecordSink, pub Publisher, loc *time.Location) *Flow {
	return &Flow{store: store, vehicles: vehicles, drivers: drivers, records: records, pub: pub, loc: loc}
}

// Get returns the session's current state, creating a fresh search-mode
// session for unknown ids. Expired and unknown sessions therefore always
// land on a cleared search screen.
func (f *Flow) Get(ctx context.Context, sid string) (State, error) {
	s, ok, err := f.store.Load(ctx, sid)
	if err != nil {
		return State{}, err
	}
	if !ok {
		s = NewState()
		if err := f.store.Save(ctx, sid, s); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

// Search runs a plate query and advances the session according to the
// match count.
func (f *Flow) Search(ctx context.Context, sid, plate string) (State, error) {
	s, err := f.Get(ctx, sid)
	if err != nil {
		return State{}, err
	}

	ev := SearchCompleted{Query: plate}
	plate = strings.TrimSpace(plate)
	if plate != "" {
		matches, err := f.vehicles.SearchByPlate(ctx, plate)
		if err != nil {
			return s, err
		}
		ev.Matches = matches
		if len(matches) == 1 && len([]rune(plate)) == ExactPlateLen {
			drivers, err := f.drivers.ListByVehicle(ctx, matches[0].ID)
			if err != nil {
				return s, err
			}
			ev.Drivers = drivers
		}
	}
	return f.apply(ctx, sid, s, ev)
}

// Choose resolves a candidate pick. A nil vehicleID means "register new":
// the vehicle context is cleared and the session moves to record entry.
func (f *Flow) Choose(ctx context.Context, sid string, vehicleID *string) (State, error) {
	s, err := f.Get(ctx, sid)
	if err != nil {
		return State{}, err
	}

	ev := VehicleChosen{}
	if vehicleID != nil {
		v, err := f.vehicles.GetByID(ctx, *vehicleID)
		if err != nil {
			return s, err
		}
		drivers, err := f.drivers.ListByVehicle(ctx, v.ID)
		if err != nil {
			return s, err
		}
		ev.Vehicle = &v
		ev.Drivers = drivers
	}
	return f.apply(ctx, sid, s, ev)
}

// OpenRecord moves from info to record entry, refetching the vehicle
// detail so the record form starts from current data.
func (f *Flow) OpenRecord(ctx context.Context, sid, vehicleID string) (State, error) {
	s, err := f.Get(ctx, sid)
	if err != nil {
		return State{}, err
	}
	v, err := f.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return s, err
	}
	return f.apply(ctx, sid, s, RecordOpened{Vehicle: v})
}

// SelectDriver moves the driver carousel to index.
func (f *Flow) SelectDriver(ctx context.Context, sid string, index int) (State, error) {
	return f.applyLoaded(ctx, sid, DriverPicked{Index: index})
}

// SelectNewDriver switches to the new-driver tab (no driver selected).
func (f *Flow) SelectNewDriver(ctx context.Context, sid string) (State, error) {
	return f.applyLoaded(ctx, sid, NewDriverTab{})
}

// SelectExistingDriver returns from the new-driver tab, restoring the
// previous carousel position.
func (f *Flow) SelectExistingDriver(ctx context.Context, sid string) (State, error) {
	return f.applyLoaded(ctx, sid, ExistingDriverTab{})
}

// Back applies the state-dependent back rules.
func (f *Flow) Back(ctx context.Context, sid string) (State, error) {
	return f.applyLoaded(ctx, sid, WentBack{})
}

// Reset clears the session back to search mode.
func (f *Flow) Reset(ctx context.Context, sid string) (State, error) {
	return f.applyLoaded(ctx, sid, ResetRequested{})
}

// RecordDraft is the operator's record form. The raw fields are stored
// verbatim as the historical snapshot.
type RecordDraft struct {
	PlateNumber        string `json:"plate_number"`
	VehicleType        string `json:"vehicle_type"`
	DriverName         string `json:"driver_name"`
	DriverPhone        string `json:"driver_phone"`
	DriverOrganization string `json:"driver_organization"`
	Passengers         string `json:"passengers"`
	Purpose            string `json:"purpose"`
	Notes              string `json:"notes"`
}

// SaveRecord validates the draft, persists the access record with the
// session's vehicle/driver context and returns the session to search
// mode. Validation and storage failures leave the session where it was.
func (f *Flow) SaveRecord(ctx context.Context, sid string, draft RecordDraft) (State, model.AccessRecord, error) {
	s, err := f.Get(ctx, sid)
	if err != nil {
		return State{}, model.AccessRecord{}, err
	}

	rec, err := BuildRecord(draft, f.loc)
	if err != nil {
		return s, model.AccessRecord{}, err
	}
	if s.Vehicle != nil {
		rec.VehicleID = &s.Vehicle.ID
		rec.IsFreePass = s.Vehicle.IsFreePassEnabled
	}
	if d := s.Driver(); d != nil {
		rec.PersonID = &d.ID
	}

	if err := f.records.Insert(ctx, &rec); err != nil {
		return s, model.AccessRecord{}, err
	}
	f.publish(ctx, rec)

	next, err := f.apply(ctx, sid, s, RecordSaved{})
	return next, rec, err
}

// BuildRecord turns a draft into a record row: trims every raw field,
// enforces the two required ones and stamps created_at plus entered_at.
// entered_at is carried in the gate zone so in-process formatting (event
// payloads, logs) reads gate-local; the driver stores the same instant
// in UTC like every other timestamp.
func BuildRecord(draft RecordDraft, loc *time.Location) (model.AccessRecord, error) {
	plate := strings.TrimSpace(draft.PlateNumber)
	name := strings.TrimSpace(draft.DriverName)
	if plate == "" || name == "" {
		return model.AccessRecord{}, ErrMissingRequired
	}
	return model.AccessRecord{
		RawPlateNumber:     plate,
		RawVehicleType:     strings.TrimSpace(draft.VehicleType),
		RawPersonName:      name,
		RawPersonPhone:     strings.TrimSpace(draft.DriverPhone),
		DriverOrganization: strings.TrimSpace(draft.DriverOrganization),
		Passengers:         strings.TrimSpace(draft.Passengers),
		Purpose:            strings.TrimSpace(draft.Purpose),
		Notes:              strings.TrimSpace(draft.Notes),
		EnteredAt:          utils.CivilNow(loc),
		CreatedAt:          time.Now().UTC(),
	}, nil
}

func (f *Flow) publish(ctx context.Context, rec model.AccessRecord) {
	if f.pub == nil {
		return
	}
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
	if err := f.pub.PublishEntryRecorded(ctx, ev); err != nil {
		log.Printf("kiosk: publish entry event failed: %v", err)
	}
}

func (f *Flow) applyLoaded(ctx context.Context, sid string, ev Event) (State, error) {
	s, err := f.Get(ctx, sid)
	if err != nil {
		return State{}, err
	}
	return f.apply(ctx, sid, s, ev)
}

func (f *Flow) apply(ctx context.Context, sid string, s State, ev Event) (State, error) {
	next := Transition(s, ev)
	if err := f.store.Save(ctx, sid, next); err != nil {
		return s, err
	}
	return next, nil
}
