package fieldspec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDateRange_SetStartCopiesToUnsetEnd(t *testing.T) {
	r := DateRange{}.WithStart(day("2026-03-10"))
	require.NotNil(t, r.End)
	require.Equal(t, day("2026-03-10"), *r.End)
	require.True(t, r.Valid())
}

func TestDateRange_SetEndCopiesToUnsetStart(t *testing.T) {
	r := DateRange{}.WithEnd(day("2026-03-10"))
	require.NotNil(t, r.Start)
	require.Equal(t, day("2026-03-10"), *r.Start)
	require.True(t, r.Valid())
}

func TestDateRange_StartAfterEndClampsEnd(t *testing.T) {
	r := DateRange{}.WithStart(day("2026-03-01")).WithEnd(day("2026-03-15"))
	r = r.WithStart(day("2026-03-20"))

	require.Equal(t, day("2026-03-20"), *r.Start)
	require.Equal(t, day("2026-03-20"), *r.End)
	require.True(t, r.Valid())
}

func TestDateRange_EndBeforeStartClampsStart(t *testing.T) {
	r := DateRange{}.WithStart(day("2026-03-10")).WithEnd(day("2026-03-15"))
	r = r.WithEnd(day("2026-03-05"))

	require.Equal(t, day("2026-03-05"), *r.Start)
	require.Equal(t, day("2026-03-05"), *r.End)
	require.True(t, r.Valid())
}

func TestDateRange_ClearedDropsBothBounds(t *testing.T) {
	r := DateRange{}.WithStart(day("2026-03-10")).WithEnd(day("2026-03-15"))
	r = r.Cleared()

	require.Nil(t, r.Start)
	require.Nil(t, r.End)
	require.True(t, r.Valid())
}

func TestDateRange_InvariantHoldsUnderAnySequence(t *testing.T) {
	days := []time.Time{day("2026-01-01"), day("2026-06-15"), day("2026-12-31")}

	r := DateRange{}
	for _, a := range days {
		for _, b := range days {
			r = r.WithStart(a)
			require.True(t, r.Valid())
			r = r.WithEnd(b)
			require.True(t, r.Valid())
		}
	}
}
