package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	return loc
}

func TestDayStart_UsesCivilDayOfZone(t *testing.T) {
	loc := seoul(t)

	// 15:00 UTC is 00:00 the next day in Seoul.
	ts := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	got := DayStart(ts, loc)
	require.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), got)
	require.Equal(t, time.UTC, got.Location())

	// 14:00 UTC is still 23:00 the same Seoul day.
	ts = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC), DayStart(ts, loc))
}

func TestDayEnd_IsInclusiveUpperBound(t *testing.T) {
	loc := seoul(t)

	ts := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC) // 10:00 KST on 03-10
	got := DayEnd(ts, loc)
	require.Equal(t, time.Date(2026, 3, 10, 14, 59, 59, int(time.Second-time.Nanosecond), time.UTC), got)
	require.True(t, DayStart(ts, loc).Before(got))
}

func TestCivilNow_ReturnsZoneLocalTime(t *testing.T) {
	loc := seoul(t)
	now := CivilNow(loc)
	require.Equal(t, loc, now.Location())
	require.WithinDuration(t, time.Now(), now, 5*time.Second)
}
