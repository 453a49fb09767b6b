package utils

import "strings"

// DigitsOnly strips everything but digits from a phone number. Stored
// numbers are sometimes hyphenated and sometimes not, so comparisons and
// formatting always start from the digit form.
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a Korean phone number with hyphens:
// 01012345678 -> 010-1234-5678, 0212345678 -> 021-234-5678.
// Inputs that are not 10 or 11 digits long are returned as their digit
// form unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	d := DigitsOnly(phone)
	switch len(d) {
	case 11:
		return d[:3] + "-" + d[3:7] + "-" + d[7:]
	case 10:
		return d[:3] + "-" + d[3:6] + "-" + d[6:]
	default:
		return d
	}
}
