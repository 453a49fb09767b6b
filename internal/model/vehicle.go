package model

import "time"

// Vehicle lifecycle states. Vehicles are never hard-deleted; the guard
// desk moves them between these states instead.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBlocked  = "blocked"
)

// Vehicle represents a registered vehicle as stored in the `vehicles`
// table. PlateNumber is free text: besides normal plates it may hold the
// literal "기타" sentinel for vehicles registered without a real plate.
// The access window (AccessStartDate/AccessEndDate) is a nullable pair;
// when present the writer guarantees start <= end.
//
// Fields:
//  ID                – UUID primary key.
//  PlateNumber       – plate text, matched by case-insensitive substring.
//  VehicleType       – free-text type (승용차, 화물차, ...).
//  IsPublicVehicle   – public (공용) vs private (개인) vehicle.
//  OwnerDepartment   – owning department, nullable.
//  AccessStartDate   – start of the permitted access window, nullable.
//  AccessEndDate     – end of the permitted access window, nullable.
//  IsFreePassEnabled – bypasses normal access restrictions when true.
//  SpecialNotes      – free-text remarks shown on the info panel.
//  Status            – one of active/inactive/blocked.
type Vehicle struct {
	ID                string     `json:"id"`
	PlateNumber       string     `json:"plate_number"`
	VehicleType       string     `json:"vehicle_type"`
	IsPublicVehicle   bool       `json:"is_public_vehicle"`
	OwnerDepartment   *string    `json:"owner_department"`
	AccessStartDate   *time.Time `json:"access_start_date"`
	AccessEndDate     *time.Time `json:"access_end_date"`
	IsFreePassEnabled bool       `json:"is_free_pass_enabled"`
	SpecialNotes      string     `json:"special_notes"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
