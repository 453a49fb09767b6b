package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuilder_EmptyProducesNeutralClause(t *testing.T) {
	var b Builder
	cond, args := b.Clause()

	require.Equal(t, "1=1", cond)
	require.Nil(t, args)
	require.True(t, b.Empty())
}

func TestBuilder_TextIsCaseInsensitiveSubstring(t *testing.T) {
	var b Builder
	b.Text("plate_number", "12Ga")
	cond, args := b.Clause()

	require.Equal(t, "LOWER(plate_number) LIKE ?", cond)
	require.Equal(t, []any{"%12ga%"}, args)
}

func TestBuilder_TextSkipsEmpty(t *testing.T) {
	var b Builder
	b.Text("plate_number", "")
	require.True(t, b.Empty())
}

func TestBuilder_ChoiceSkipsSentinel(t *testing.T) {
	var b Builder
	b.Choice("status", "")
	b.Choice("status", FilterAll)
	require.True(t, b.Empty())

	b.Choice("status", "active")
	cond, args := b.Clause()
	require.Equal(t, "status = ?", cond)
	require.Equal(t, []any{"active"}, args)
}

func TestBuilder_FlagNilMeansNoConstraint(t *testing.T) {
	var b Builder
	b.Flag("is_worker", nil)
	require.True(t, b.Empty())

	yes := true
	b.Flag("is_worker", &yes)
	cond, args := b.Clause()
	require.Equal(t, "is_worker = ?", cond)
	require.Equal(t, []any{true}, args)
}

func TestBuilder_PhoneMatchesRawAndDigitForm(t *testing.T) {
	var b Builder
	b.Phone("phone_number", "010-1234")
	cond, args := b.Clause()

	require.Equal(t, "(LOWER(phone_number) LIKE ? OR LOWER(phone_number) LIKE ?)", cond)
	require.Equal(t, []any{"%010-1234%", "%0101234%"}, args)
}

func TestBuilder_PhoneDigitsOnlyFallsBackToText(t *testing.T) {
	var b Builder
	b.Phone("phone_number", "0101234")
	cond, args := b.Clause()

	require.Equal(t, "LOWER(phone_number) LIKE ?", cond)
	require.Equal(t, []any{"%0101234%"}, args)
}

func TestBuilder_DayRangeCoversWholeCivilDays(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	day := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	var b Builder
	b.DayRange("entered_at", &day, &day, seoul)
	cond, args := b.Clause()

	require.Equal(t, "entered_at >= ? AND entered_at <= ?", cond)
	require.Len(t, args, 2)

	start := args[0].(time.Time)
	end := args[1].(time.Time)
	// 2026-03-10 15:00 UTC is already 03-11 in Seoul (KST = UTC+9).
	require.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 3, 11, 14, 59, 59, int(time.Second-time.Nanosecond), time.UTC), end)
	require.True(t, start.Before(end))
}

func TestBuilder_ConjunctionOrder(t *testing.T) {
	var b Builder
	b.Text("name", "kim")
	b.Choice("status", "active")
	yes := true
	b.Flag("is_worker", &yes)
	cond, args := b.Clause()

	require.Equal(t, "LOWER(name) LIKE ? AND status = ? AND is_worker = ?", cond)
	require.Len(t, args, 3)
}
