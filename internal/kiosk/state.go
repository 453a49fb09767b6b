// Package kiosk implements the gate kiosk navigation flow: plate search,
// candidate disambiguation, vehicle/driver info and access-record entry.
// The state machine itself is pure — Transition takes a state and an
// event carrying already-fetched data and returns the next state — so it
// can be tested without any I/O. The Flow type owns the side effects.
package kiosk

import (
	"strings"

	"github.com/gatepass/vehicle-access/internal/model"
)

// Mode identifies a kiosk screen.
type Mode string

const (
	ModeSearch Mode = "search"
	ModeChoice Mode = "choice"
	ModeInfo   Mode = "info"
	ModeRecord Mode = "record"
)

// ExactPlateLen is the query length treated as a complete plate number: a
// single match for a 4-character query goes straight to the info screen,
// while shorter partial queries fall through to manual entry.
const ExactPlateLen = 4

// Operator-facing advisory messages shown on the record screen.
const (
	AlertNoMatch  = "일치하는 차량이 없습니다."
	AlertEnterNew = "새로운 정보를 입력해주세요!"
)

// State is one kiosk session. Candidates holds the vehicles of the last
// search (order preserved); Vehicle and Drivers are set once a vehicle is
// resolved. DriverIdx indexes Drivers, with -1 meaning the "new driver"
// tab where no registered driver is selected; PrevDriverIdx remembers the
// carousel position to restore when leaving that tab.
type State struct {
	Mode          Mode            `json:"mode"`
	Candidates    []model.Vehicle `json:"candidates"`
	Vehicle       *model.Vehicle  `json:"vehicle"`
	Drivers       []model.Person  `json:"drivers"`
	DriverIdx     int             `json:"driver_idx"`
	PrevDriverIdx int             `json:"prev_driver_idx"`
	Alert         string          `json:"alert"`
}

// NewState returns the initial state: the search screen with everything
// cleared.
func NewState() State {
	return State{Mode: ModeSearch, DriverIdx: -1, PrevDriverIdx: -1}
}

// Driver returns the currently selected driver, or nil on the new-driver
// tab or when the vehicle has none.
func (s State) Driver() *model.Person {
	if s.DriverIdx < 0 || s.DriverIdx >= len(s.Drivers) {
		return nil
	}
	d := s.Drivers[s.DriverIdx]
	return &d
}

// Event is something that happened to a session. Events carry any data
// the transition needs, fetched beforehand by the orchestrating layer.
type Event interface{ kioskEvent() }

// SearchCompleted carries the result of a plate query. Drivers is only
// populated when the query had exactly one match of canonical length.
type SearchCompleted struct {
	Query   string
	Matches []model.Vehicle
	Drivers []model.Person
}

// VehicleChosen is the disambiguation pick. A nil Vehicle means the
// operator chose "register new" instead of a candidate.
type VehicleChosen struct {
	Vehicle *model.Vehicle
	Drivers []model.Person
}

// RecordOpened moves from the info screen to record entry, carrying the
// freshly refetched vehicle detail.
type RecordOpened struct{ Vehicle model.Vehicle }

// RecordSaved signals a successful save; the session returns to search.
type RecordSaved struct{}

// DriverPicked selects a driver by carousel index.
type DriverPicked struct{ Index int }

// NewDriverTab switches to the new-driver tab, deselecting the driver but
// remembering the carousel position.
type NewDriverTab struct{}

// ExistingDriverTab returns from the new-driver tab, restoring the
// previously selected driver.
type ExistingDriverTab struct{}

// WentBack is the state-dependent back action (also bound to the browser
// back button by the client).
type WentBack struct{}

// ResetRequested clears the session outright, as a reload does.
type ResetRequested struct{}

func (SearchCompleted) kioskEvent()   {}
func (VehicleChosen) kioskEvent()     {}
func (RecordOpened) kioskEvent()      {}
func (RecordSaved) kioskEvent()       {}
func (DriverPicked) kioskEvent()      {}
func (NewDriverTab) kioskEvent()      {}
func (ExistingDriverTab) kioskEvent() {}
func (WentBack) kioskEvent()          {}
func (ResetRequested) kioskEvent()    {}

// Transition computes the next state for an event. It never performs I/O
// and never mutates its input. Unknown or out-of-place events leave the
// state unchanged.
func Transition(s State, ev Event) State {
	switch e := ev.(type) {
	case SearchCompleted:
		return transitionSearch(s, e)

	case VehicleChosen:
		next := s
		next.Alert = ""
		if e.Vehicle == nil {
			next.Vehicle = nil
			next.Drivers = nil
			next.DriverIdx, next.PrevDriverIdx = -1, -1
			next.Mode = ModeRecord
			return next
		}
		v := *e.Vehicle
		next.Vehicle = &v
		next.Drivers = e.Drivers
		next.DriverIdx = defaultDriverIdx(e.Drivers)
		next.PrevDriverIdx = next.DriverIdx
		next.Mode = ModeInfo
		return next

	case RecordOpened:
		if s.Mode != ModeInfo {
			return s
		}
		next := s
		v := e.Vehicle
		next.Vehicle = &v
		next.Mode = ModeRecord
		return next

	case RecordSaved:
		return NewState()

	case DriverPicked:
		if s.Mode != ModeInfo || e.Index < 0 || e.Index >= len(s.Drivers) {
			return s
		}
		next := s
		next.DriverIdx = e.Index
		return next

	case NewDriverTab:
		if s.Mode != ModeInfo {
			return s
		}
		next := s
		next.PrevDriverIdx = s.DriverIdx
		next.DriverIdx = -1
		return next

	case ExistingDriverTab:
		if s.Mode != ModeInfo || len(s.Drivers) == 0 {
			return s
		}
		next := s
		next.DriverIdx = s.PrevDriverIdx
		if next.DriverIdx < 0 || next.DriverIdx >= len(s.Drivers) {
			next.DriverIdx = 0
		}
		return next

	case WentBack:
		return transitionBack(s)

	case ResetRequested:
		return NewState()
	}
	return s
}

func transitionSearch(s State, e SearchCompleted) State {
	query := strings.TrimSpace(e.Query)
	if query == "" {
		next := NewState()
		next.Mode = ModeRecord
		next.Alert = AlertEnterNew
		return next
	}

	switch {
	case len(e.Matches) == 1 && len([]rune(query)) == ExactPlateLen:
		next := s
		next.Alert = ""
		next.Candidates = e.Matches
		v := e.Matches[0]
		next.Vehicle = &v
		next.Drivers = e.Drivers
		next.DriverIdx = defaultDriverIdx(e.Drivers)
		next.PrevDriverIdx = next.DriverIdx
		next.Mode = ModeInfo
		return next

	case len(e.Matches) == 1:
		// A lone partial match is not trusted as an identification.
		next := s
		next.Mode = ModeRecord
		next.Alert = AlertNoMatch
		return next

	case len(e.Matches) > 1:
		next := s
		next.Alert = ""
		next.Candidates = e.Matches
		next.Vehicle = nil
		next.Drivers = nil
		next.DriverIdx, next.PrevDriverIdx = -1, -1
		next.Mode = ModeChoice
		return next

	default:
		next := NewState()
		next.Mode = ModeRecord
		next.Alert = AlertNoMatch
		return next
	}
}

// transitionBack implements the state-dependent back rules. This is not a
// stack pop: where "back" lands depends on how many candidates the search
// produced and whether a vehicle is resolved.
func transitionBack(s State) State {
	next := s
	switch s.Mode {
	case ModeChoice:
		next.Mode = ModeSearch
		next.Candidates = nil

	case ModeInfo:
		if len(s.Candidates) > 1 {
			next.Mode = ModeChoice
		} else if len(s.Candidates) == 1 {
			next.Mode = ModeSearch
			next.DriverIdx, next.PrevDriverIdx = -1, -1
		}

	case ModeRecord:
		switch {
		case s.Vehicle == nil && len(s.Candidates) == 0:
			next.Mode = ModeSearch
		case s.Vehicle == nil:
			next.Mode = ModeChoice
		default:
			next.Mode = ModeInfo
		}
	}
	return next
}

func defaultDriverIdx(drivers []model.Person) int {
	if len(drivers) == 0 {
		return -1
	}
	return 0
}
