package kiosk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatepass/vehicle-access/internal/model"
)

func vehicle(id, plate string) model.Vehicle {
	return model.Vehicle{ID: id, PlateNumber: plate, Status: model.StatusActive}
}

func person(id, name string) model.Person {
	return model.Person{ID: id, Name: name, Status: model.StatusActive}
}

func TestTransition_SearchExactMatchGoesToInfo(t *testing.T) {
	v := vehicle("v1", "12가3456")
	drivers := []model.Person{person("p1", "김철수"), person("p2", "이영희")}

	next := Transition(NewState(), SearchCompleted{
		Query:   "3456",
		Matches: []model.Vehicle{v},
		Drivers: drivers,
	})

	require.Equal(t, ModeInfo, next.Mode)
	require.NotNil(t, next.Vehicle)
	require.Equal(t, "v1", next.Vehicle.ID)
	require.Len(t, next.Drivers, 2)
	require.Equal(t, 0, next.DriverIdx)
	require.Empty(t, next.Alert)
}

func TestTransition_SearchSinglePartialMatchGoesToRecord(t *testing.T) {
	// One match for a 3-character query is not a confirmed identification.
	next := Transition(NewState(), SearchCompleted{
		Query:   "345",
		Matches: []model.Vehicle{vehicle("v1", "12가3456")},
	})

	require.Equal(t, ModeRecord, next.Mode)
	require.Equal(t, AlertNoMatch, next.Alert)
	require.Nil(t, next.Vehicle)
}

func TestTransition_SearchMultipleMatchesGoToChoicePreservingOrder(t *testing.T) {
	matches := []model.Vehicle{vehicle("v3", "9999"), vehicle("v1", "5555"), vehicle("v2", "1111")}

	next := Transition(NewState(), SearchCompleted{Query: "1", Matches: matches})

	require.Equal(t, ModeChoice, next.Mode)
	require.Len(t, next.Candidates, 3)
	for i, m := range matches {
		require.Equal(t, m.ID, next.Candidates[i].ID)
	}
	require.Nil(t, next.Vehicle)
	require.Equal(t, -1, next.DriverIdx)
}

func TestTransition_SearchNoMatchGoesToRecordWithAlert(t *testing.T) {
	next := Transition(NewState(), SearchCompleted{Query: "0000"})

	require.Equal(t, ModeRecord, next.Mode)
	require.Equal(t, AlertNoMatch, next.Alert)
	require.Empty(t, next.Candidates)
}

func TestTransition_EmptyQueryGoesToRecordEnterNew(t *testing.T) {
	// State left over from a previous search must be cleared.
	prev := Transition(NewState(), SearchCompleted{
		Query:   "1",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "2222")},
	})

	next := Transition(prev, SearchCompleted{Query: "   "})

	require.Equal(t, ModeRecord, next.Mode)
	require.Equal(t, AlertEnterNew, next.Alert)
	require.Empty(t, next.Candidates)
	require.Nil(t, next.Vehicle)
}

func TestTransition_ExactLengthCountsRunesNotBytes(t *testing.T) {
	// Korean plates: 4 runes is an exact query even though it is >4 bytes.
	next := Transition(NewState(), SearchCompleted{
		Query:   "가나다라",
		Matches: []model.Vehicle{vehicle("v1", "가나다라")},
	})
	require.Equal(t, ModeInfo, next.Mode)
}

func TestTransition_ChooseCandidate(t *testing.T) {
	choice := Transition(NewState(), SearchCompleted{
		Query:   "11",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "1122")},
	})

	v := vehicle("v2", "1122")
	next := Transition(choice, VehicleChosen{Vehicle: &v, Drivers: []model.Person{person("p1", "박민준")}})

	require.Equal(t, ModeInfo, next.Mode)
	require.Equal(t, "v2", next.Vehicle.ID)
	require.Equal(t, 0, next.DriverIdx)
	// Candidates survive so back from info can return to choice.
	require.Len(t, next.Candidates, 2)
}

func TestTransition_ChooseRegisterNewGoesToRecord(t *testing.T) {
	choice := Transition(NewState(), SearchCompleted{
		Query:   "11",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "1122")},
	})

	next := Transition(choice, VehicleChosen{Vehicle: nil})

	require.Equal(t, ModeRecord, next.Mode)
	require.Nil(t, next.Vehicle)
	require.Equal(t, -1, next.DriverIdx)
}

func TestTransition_NewDriverTabRemembersAndRestores(t *testing.T) {
	v := vehicle("v1", "1234")
	info := Transition(NewState(), SearchCompleted{
		Query:   "1234",
		Matches: []model.Vehicle{v},
		Drivers: []model.Person{person("p1", "a"), person("p2", "b"), person("p3", "c")},
	})
	info = Transition(info, DriverPicked{Index: 2})
	require.Equal(t, 2, info.DriverIdx)

	onNewTab := Transition(info, NewDriverTab{})
	require.Equal(t, -1, onNewTab.DriverIdx)
	require.Nil(t, onNewTab.Driver())

	restored := Transition(onNewTab, ExistingDriverTab{})
	require.Equal(t, 2, restored.DriverIdx)
	require.Equal(t, "p3", restored.Driver().ID)
}

func TestTransition_DriverPickedOutOfRangeIgnored(t *testing.T) {
	v := vehicle("v1", "1234")
	info := Transition(NewState(), SearchCompleted{
		Query:   "1234",
		Matches: []model.Vehicle{v},
		Drivers: []model.Person{person("p1", "a")},
	})

	require.Equal(t, info, Transition(info, DriverPicked{Index: 5}))
	require.Equal(t, info, Transition(info, DriverPicked{Index: -1}))
}

func TestTransition_BackFromChoiceClearsCandidates(t *testing.T) {
	choice := Transition(NewState(), SearchCompleted{
		Query:   "11",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "1122")},
	})

	next := Transition(choice, WentBack{})

	require.Equal(t, ModeSearch, next.Mode)
	require.Empty(t, next.Candidates)
}

func TestTransition_BackFromInfoDependsOnCandidateCount(t *testing.T) {
	// Multiple candidates: info -> choice.
	choice := Transition(NewState(), SearchCompleted{
		Query:   "11",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "1122")},
	})
	v := vehicle("v1", "1111")
	info := Transition(choice, VehicleChosen{Vehicle: &v})
	require.Equal(t, ModeChoice, Transition(info, WentBack{}).Mode)

	// Single candidate: info -> search, driver selection cleared.
	single := Transition(NewState(), SearchCompleted{
		Query:   "1111",
		Matches: []model.Vehicle{v},
		Drivers: []model.Person{person("p1", "a")},
	})
	back := Transition(single, WentBack{})
	require.Equal(t, ModeSearch, back.Mode)
	require.Equal(t, -1, back.DriverIdx)
}

func TestTransition_BackFromRecordDependsOnContext(t *testing.T) {
	// No vehicle, no candidates (fresh registration): record -> search.
	noCtx := Transition(NewState(), SearchCompleted{Query: "0000"})
	require.Equal(t, ModeRecord, noCtx.Mode)
	require.Equal(t, ModeSearch, Transition(noCtx, WentBack{}).Mode)

	// No vehicle but candidates exist (chose "register new"): record -> choice.
	choice := Transition(NewState(), SearchCompleted{
		Query:   "11",
		Matches: []model.Vehicle{vehicle("v1", "1111"), vehicle("v2", "1122")},
	})
	rec := Transition(choice, VehicleChosen{Vehicle: nil})
	require.Equal(t, ModeChoice, Transition(rec, WentBack{}).Mode)

	// Vehicle context exists: record -> info.
	v := vehicle("v1", "1234")
	info := Transition(NewState(), SearchCompleted{Query: "1234", Matches: []model.Vehicle{v}})
	require.Equal(t, ModeInfo, info.Mode)
	opened := Transition(info, RecordOpened{Vehicle: v})
	require.Equal(t, ModeRecord, opened.Mode)
	require.Equal(t, ModeInfo, Transition(opened, WentBack{}).Mode)
}

func TestTransition_SaveAndResetReturnToInitialState(t *testing.T) {
	v := vehicle("v1", "1234")
	s := Transition(NewState(), SearchCompleted{
		Query:   "1234",
		Matches: []model.Vehicle{v},
		Drivers: []model.Person{person("p1", "a")},
	})

	for _, ev := range []Event{RecordSaved{}, ResetRequested{}} {
		next := Transition(s, ev)
		require.Equal(t, NewState(), next)
	}
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	v := vehicle("v1", "1234")
	s := Transition(NewState(), SearchCompleted{
		Query:   "1234",
		Matches: []model.Vehicle{v},
		Drivers: []model.Person{person("p1", "a")},
	})
	before := s

	_ = Transition(s, NewDriverTab{})
	_ = Transition(s, WentBack{})
	_ = Transition(s, ResetRequested{})

	require.Equal(t, before, s)
}
