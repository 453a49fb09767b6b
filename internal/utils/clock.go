package utils

import "time"

// Civil-day helpers for date-range filters. Filter dates arrive as bare
// days; the storage clock is UTC but the gate operates on the wall
// calendar of a configured zone (APP_TIMEZONE, normally Asia/Seoul), so
// day boundaries must be computed in that zone and converted, not shifted
// by a fixed offset.

// DayStart returns 00:00:00.000 of t's calendar day in loc, as UTC.
func DayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).UTC()
}

// DayEnd returns 23:59:59.999999999 of t's calendar day in loc, as UTC.
func DayEnd(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), loc).UTC()
}

// CivilNow returns the current time carried in loc. The database driver
// stores the instant in UTC regardless; keeping the zone here means
// in-process formatting (events, the gate log) reads gate-local.
func CivilNow(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
