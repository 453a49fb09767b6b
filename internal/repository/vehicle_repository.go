package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/gatepass/vehicle-access/internal/model"
)

const vehicleCols = `id, plate_number, vehicle_type, is_public_vehicle, owner_department,
	access_start_date, access_end_date, is_free_pass_enabled, special_notes, status,
	created_at, updated_at`

// VehicleFilter is the sparse filter for the vehicle admin screen. Zero
// values mean "no constraint".
type VehicleFilter struct {
	PlateNumber     string
	VehicleType     string
	OwnerDepartment string
	SpecialNotes    string
	Status          string
	IsPublic        *bool
	FreePass        *bool
	AccessStart     *time.Time
	AccessEnd       *time.Time
}

type VehicleRepo struct {
	db  *sql.DB
	loc *time.Location
}

func NewVehicleRepo(db *sql.DB, loc *time.Location) *VehicleRepo {
	return &VehicleRepo{db: db, loc: loc}
}

func scanVehicle(sc interface{ Scan(...any) error }) (model.Vehicle, error) {
	var v model.Vehicle
	err := sc.Scan(
		&v.ID, &v.PlateNumber, &v.VehicleType, &v.IsPublicVehicle, &v.OwnerDepartment,
		&v.AccessStartDate, &v.AccessEndDate, &v.IsFreePassEnabled, &v.SpecialNotes,
		&v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// SearchByPlate returns active vehicles whose plate contains the query,
// case-insensitively, ordered by plate descending. An empty query returns
// all active vehicles (the kiosk "browse everything" case).
func (r *VehicleRepo) SearchByPlate(ctx context.Context, plate string) ([]model.Vehicle, error) {
	var b Builder
	b.Choice("status", model.StatusActive)
	b.Text("plate_number", plate)
	cond, args := b.Clause()

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles WHERE "+cond+" ORDER BY plate_number DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID fetches one vehicle; ErrNotFound when the id is unknown.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (model.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Vehicle{}, ErrNotFound
	}
	return v, err
}

// List returns one page of vehicles matching the filter plus the exact
// total count, newest first.
func (r *VehicleRepo) List(ctx context.Context, f VehicleFilter, p Page) ([]model.Vehicle, int64, error) {
	var b Builder
	b.Text("plate_number", f.PlateNumber)
	b.Text("vehicle_type", f.VehicleType)
	b.Text("owner_department", f.OwnerDepartment)
	b.Text("special_notes", f.SpecialNotes)
	b.Choice("status", f.Status)
	b.Flag("is_public_vehicle", f.IsPublic)
	b.Flag("is_free_pass_enabled", f.FreePass)
	b.DayRange("access_start_date", f.AccessStart, nil, r.loc)
	b.DayRange("access_end_date", nil, f.AccessEnd, r.loc)
	cond, args := b.Clause()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vehicles WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := p.LimitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Vehicle, 0, limit)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// Create inserts a vehicle, assigning a UUID when the caller did not.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = model.StatusActive
	}
	now := time.Now().UTC()
	v.CreatedAt, v.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, plate_number, vehicle_type, is_public_vehicle,
			owner_department, access_start_date, access_end_date, is_free_pass_enabled,
			special_notes, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		v.ID, v.PlateNumber, v.VehicleType, v.IsPublicVehicle, v.OwnerDepartment,
		v.AccessStartDate, v.AccessEndDate, v.IsFreePassEnabled, v.SpecialNotes,
		v.Status, v.CreatedAt, v.UpdatedAt)
	return err
}

// UpdateStatus moves a vehicle between lifecycle states. Vehicles are
// never deleted.
func (r *VehicleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vehicles SET status=?, updated_at=? WHERE id=?",
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
