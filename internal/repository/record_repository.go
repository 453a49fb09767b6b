package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/gatepass/vehicle-access/internal/model"
)

const recordCols = `id, vehicle_id, person_id, work_id, raw_plate_number, raw_vehicle_type,
	raw_person_name, raw_person_phone, driver_organization, passengers, purpose, notes,
	is_free_pass, entered_at, exited_at, created_at`

// RecordFilter is the sparse filter for the access-record log screen.
// Note the column mapping: the UI "name" field filters raw_person_name,
// the snapshot column, not the live people table.
type RecordFilter struct {
	PlateNumber string
	VehicleType string
	Name        string
	OrgDeptPos  string
	Phone       string
	Passengers  string
	Purpose     string
	Notes       string
	Start       *time.Time
	End         *time.Time
}

type RecordRepo struct {
	db  *sql.DB
	loc *time.Location
}

func NewRecordRepo(db *sql.DB, loc *time.Location) *RecordRepo {
	return &RecordRepo{db: db, loc: loc}
}

// Insert writes one entry record. Records are immutable afterwards;
// exited_at is never set by this service.
func (r *RecordRepo) Insert(ctx context.Context, rec *model.AccessRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_records (id, vehicle_id, person_id, work_id, raw_plate_number,
			raw_vehicle_type, raw_person_name, raw_person_phone, driver_organization,
			passengers, purpose, notes, is_free_pass, entered_at, exited_at, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.VehicleID, rec.PersonID, rec.WorkID, rec.RawPlateNumber,
		rec.RawVehicleType, rec.RawPersonName, rec.RawPersonPhone, rec.DriverOrganization,
		rec.Passengers, rec.Purpose, rec.Notes, rec.IsFreePass, rec.EnteredAt,
		rec.ExitedAt, rec.CreatedAt)
	return err
}

// List returns one page of records matching the filter plus the exact
// total count, most recent entry first.
func (r *RecordRepo) List(ctx context.Context, f RecordFilter, p Page) ([]model.AccessRecord, int64, error) {
	var b Builder
	b.Text("raw_plate_number", f.PlateNumber)
	b.Text("raw_vehicle_type", f.VehicleType)
	b.Text("raw_person_name", f.Name)
	b.Text("driver_organization", f.OrgDeptPos)
	b.Phone("raw_person_phone", f.Phone)
	b.Text("passengers", f.Passengers)
	b.Text("purpose", f.Purpose)
	b.Text("notes", f.Notes)
	b.DayRange("entered_at", f.Start, f.End, r.loc)
	cond, args := b.Clause()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM access_records WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := p.LimitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordCols+" FROM access_records WHERE "+cond+
			" ORDER BY entered_at DESC LIMIT ? OFFSET ?",
		append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.AccessRecord, 0, limit)
	for rows.Next() {
		var rec model.AccessRecord
		if err := rows.Scan(
			&rec.ID, &rec.VehicleID, &rec.PersonID, &rec.WorkID, &rec.RawPlateNumber,
			&rec.RawVehicleType, &rec.RawPersonName, &rec.RawPersonPhone,
			&rec.DriverOrganization, &rec.Passengers, &rec.Purpose, &rec.Notes,
			&rec.IsFreePass, &rec.EnteredAt, &rec.ExitedAt, &rec.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

// GetByID fetches one record; ErrNotFound when the id is unknown.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (model.AccessRecord, error) {
	var rec model.AccessRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT "+recordCols+" FROM access_records WHERE id=? LIMIT 1", id).Scan(
		&rec.ID, &rec.VehicleID, &rec.PersonID, &rec.WorkID, &rec.RawPlateNumber,
		&rec.RawVehicleType, &rec.RawPersonName, &rec.RawPersonPhone,
		&rec.DriverOrganization, &rec.Passengers, &rec.Purpose, &rec.Notes,
		&rec.IsFreePass, &rec.EnteredAt, &rec.ExitedAt, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AccessRecord{}, ErrNotFound
	}
	return rec, err
}
