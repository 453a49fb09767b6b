package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gatepass/vehicle-access/internal/model"
)

const personCols = `id, name, phone_number, organization, department, position, org_dept_pos,
	photo_path, vip_level, is_worker, activity_start_date, activity_end_date,
	contact_person_name, contact_person_phone, status, created_at, updated_at`

// PersonFilter is the sparse filter for the people admin screen.
type PersonFilter struct {
	Name          string
	Organization  string
	OrgDeptPos    string
	Phone         string
	VIPLevel      string
	Status        string
	IsWorker      *bool
	ActivityStart *time.Time
	ActivityEnd   *time.Time
}

type PersonRepo struct {
	db  *sql.DB
	loc *time.Location
}

func NewPersonRepo(db *sql.DB, loc *time.Location) *PersonRepo {
	return &PersonRepo{db: db, loc: loc}
}

func scanPerson(sc interface{ Scan(...any) error }) (model.Person, error) {
	var p model.Person
	err := sc.Scan(
		&p.ID, &p.Name, &p.PhoneNumber, &p.Organization, &p.Department, &p.Position,
		&p.OrgDeptPos, &p.PhotoPath, &p.VIPLevel, &p.IsWorker, &p.ActivityStartDate,
		&p.ActivityEndDate, &p.ContactPersonName, &p.ContactPersonPhone, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListByVehicle resolves the drivers associated with a vehicle through the
// vehicle_people link table. This replaces the stored procedure the
// original deployment called for the kiosk info screen.
func (r *PersonRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]model.Person, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixed(personCols, "p.")+`
		FROM people p
		JOIN vehicle_people vp ON vp.person_id = p.id
		WHERE vp.vehicle_id = ? AND p.status = ?
		ORDER BY p.name ASC`,
		vehicleID, model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches one person; ErrNotFound when the id is unknown.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (model.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx,
		"SELECT "+personCols+" FROM people WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Person{}, ErrNotFound
	}
	return p, err
}

// List returns one page of people matching the filter plus the exact
// total count, newest first.
func (r *PersonRepo) List(ctx context.Context, f PersonFilter, p Page) ([]model.Person, int64, error) {
	var b Builder
	b.Text("name", f.Name)
	b.Text("organization", f.Organization)
	b.Text("org_dept_pos", f.OrgDeptPos)
	b.Phone("phone_number", f.Phone)
	b.Choice("vip_level", f.VIPLevel)
	b.Choice("status", f.Status)
	b.Flag("is_worker", f.IsWorker)
	b.DayRange("activity_start_date", f.ActivityStart, nil, r.loc)
	b.DayRange("activity_end_date", nil, f.ActivityEnd, r.loc)
	cond, args := b.Clause()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM people WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := p.LimitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+personCols+" FROM people WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Person, 0, limit)
	for rows.Next() {
		pr, err := scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, pr)
	}
	return out, total, rows.Err()
}

// Create inserts a person, assigning a UUID when the caller did not.
func (r *PersonRepo) Create(ctx context.Context, p *model.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	if p.VIPLevel == "" {
		p.VIPLevel = model.VIPNone
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO people (id, name, phone_number, organization, department, position,
			org_dept_pos, photo_path, vip_level, is_worker, activity_start_date,
			activity_end_date, contact_person_name, contact_person_phone, status,
			created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.PhoneNumber, p.Organization, p.Department, p.Position,
		p.OrgDeptPos, p.PhotoPath, p.VIPLevel, p.IsWorker, p.ActivityStartDate,
		p.ActivityEndDate, p.ContactPersonName, p.ContactPersonPhone, p.Status,
		p.CreatedAt, p.UpdatedAt)
	return err
}

// UpdateStatus moves a person between lifecycle states.
func (r *PersonRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE people SET status=?, updated_at=? WHERE id=?",
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Link associates a person with a vehicle; duplicate links are ignored.
func (r *PersonRepo) Link(ctx context.Context, vehicleID, personID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO vehicle_people (vehicle_id, person_id) VALUES (?,?)",
		vehicleID, personID)
	return err
}

// prefixed qualifies every column in a comma-separated list with a table
// alias, for joins.
func prefixed(cols, alias string) string {
	parts := strings.Split(cols, ",")
	for i, c := range parts {
		parts[i] = alias + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
