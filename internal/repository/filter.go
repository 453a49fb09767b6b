package repository

import (
	"strings"
	"time"

	"github.com/gatepass/vehicle-access/internal/utils"
)

// FilterAll is the select-widget sentinel meaning "no constraint".
const FilterAll = "전체"

// Builder assembles conjunctive WHERE clauses from sparse filter values.
// Every method is a no-op for absent values, so an empty filter produces
// the neutral clause "1=1" and the query behaves as unfiltered.
type Builder struct {
	where []string
	args  []any
}

// Text adds a case-insensitive substring predicate. Empty input adds
// nothing.
func (b *Builder) Text(col, v string) {
	if v == "" {
		return
	}
	b.where = append(b.where, "LOWER("+col+") LIKE ?")
	b.args = append(b.args, "%"+strings.ToLower(v)+"%")
}

// Choice adds an exact-equality predicate for select fields. Empty input
// and the "전체" sentinel add nothing.
func (b *Builder) Choice(col, v string) {
	if v == "" || v == FilterAll {
		return
	}
	b.where = append(b.where, col+" = ?")
	b.args = append(b.args, v)
}

// Flag adds an exact boolean predicate; nil means no constraint.
func (b *Builder) Flag(col string, v *bool) {
	if v == nil {
		return
	}
	b.where = append(b.where, col+" = ?")
	b.args = append(b.args, *v)
}

// Phone matches both the input as typed and its hyphen-stripped digit
// form, since stored numbers may be formatted either way.
func (b *Builder) Phone(col, v string) {
	if v == "" {
		return
	}
	digits := utils.DigitsOnly(v)
	if digits == v || digits == "" {
		b.Text(col, v)
		return
	}
	b.where = append(b.where, "(LOWER("+col+") LIKE ? OR LOWER("+col+") LIKE ?)")
	b.args = append(b.args, "%"+strings.ToLower(v)+"%", "%"+digits+"%")
}

// DayRange adds an inclusive range predicate covering whole civil days in
// loc: start is widened to 00:00:00 and end to 23:59:59.999999999 of their
// respective days before comparison. Either bound may be nil.
func (b *Builder) DayRange(col string, start, end *time.Time, loc *time.Location) {
	if start != nil {
		b.where = append(b.where, col+" >= ?")
		b.args = append(b.args, utils.DayStart(*start, loc))
	}
	if end != nil {
		b.where = append(b.where, col+" <= ?")
		b.args = append(b.args, utils.DayEnd(*end, loc))
	}
}

// Clause joins the accumulated predicates with AND. With no predicates it
// returns "1=1" so callers can always interpolate it after WHERE.
func (b *Builder) Clause() (string, []any) {
	if len(b.where) == 0 {
		return "1=1", nil
	}
	return strings.Join(b.where, " AND "), b.args
}

// Empty reports whether any predicate has been added.
func (b *Builder) Empty() bool { return len(b.where) == 0 }
