package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitsOnly(t *testing.T) {
	require.Equal(t, "01012345678", DigitsOnly("010-1234-5678"))
	require.Equal(t, "01012345678", DigitsOnly("01012345678"))
	require.Equal(t, "", DigitsOnly("abc-def"))
	require.Equal(t, "", DigitsOnly(""))
}

func TestFormatPhone(t *testing.T) {
	require.Equal(t, "010-1234-5678", FormatPhone("01012345678"))
	require.Equal(t, "010-1234-5678", FormatPhone("010-1234-5678"))
	require.Equal(t, "021-234-5678", FormatPhone("0212345678"))
	// Lengths outside 10-11 digits pass through as digits.
	require.Equal(t, "123", FormatPhone("1-2-3"))
	require.Equal(t, "", FormatPhone(""))
}
