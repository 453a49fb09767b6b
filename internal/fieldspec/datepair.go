package fieldspec

import "time"

// DateRange is a linked start/end pair. The operations preserve the
// invariant start <= end whenever both bounds are set:
//   - setting one bound while the other is unset copies it across,
//   - setting a bound that would violate the invariant clamps the other
//     bound to the new value,
//   - clearing either bound clears both.
// The clear-both rule is the canonical one; earlier the add form only
// propagated on set, which let a half-cleared pair linger.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// WithStart returns the range with the start bound set to t.
func (r DateRange) WithStart(t time.Time) DateRange {
	r.Start = &t
	if r.End == nil || t.After(*r.End) {
		end := t
		r.End = &end
	}
	return r
}

// WithEnd returns the range with the end bound set to t.
func (r DateRange) WithEnd(t time.Time) DateRange {
	r.End = &t
	if r.Start == nil || t.Before(*r.Start) {
		start := t
		r.Start = &start
	}
	return r
}

// Cleared returns the empty range.
func (r DateRange) Cleared() DateRange {
	return DateRange{}
}

// Valid reports whether the invariant holds (vacuously true when either
// bound is unset).
func (r DateRange) Valid() bool {
	if r.Start == nil || r.End == nil {
		return true
	}
	return !r.Start.After(*r.End)
}
