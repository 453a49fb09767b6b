package model

import "time"

// AccessRecord is one gate entry event. The raw_* columns are a
// denormalized snapshot of the vehicle and driver at the moment of entry:
// later edits to the Vehicle or Person rows must not rewrite history, so
// the record carries its own copy of everything shown on the log screen.
// VehicleID/PersonID are optional back-references for records created from
// a known vehicle; WorkID is reserved and currently always nil.
//
// Records are written once and never mutated by this service. ExitedAt is
// kept in the schema but no code path sets it: the gate keeps an
// entry-only log.
type AccessRecord struct {
	ID                 string     `json:"id"`
	VehicleID          *string    `json:"vehicle_id"`
	PersonID           *string    `json:"person_id"`
	WorkID             *string    `json:"work_id"`
	RawPlateNumber     string     `json:"raw_plate_number"`
	RawVehicleType     string     `json:"raw_vehicle_type"`
	RawPersonName      string     `json:"raw_person_name"`
	RawPersonPhone     string     `json:"raw_person_phone"`
	DriverOrganization string     `json:"driver_organization"`
	Passengers         string     `json:"passengers"`
	Purpose            string     `json:"purpose"`
	Notes              string     `json:"notes"`
	IsFreePass         bool       `json:"is_free_pass"`
	EnteredAt          time.Time  `json:"entered_at"`
	ExitedAt           *time.Time `json:"exited_at"`
	CreatedAt          time.Time  `json:"created_at"`
}
