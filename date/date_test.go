package date

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Valid(t *testing.T) {
	testCases := []struct {
		name string
		date Date
		want bool
	}{
		{"first of january", New(1, 1, 2024), true},
		{"day zero", New(0, 1, 2024), false},
		{"day 32", New(32, 1, 2024), false},
		{"month zero", New(1, 0, 2024), false},
		{"month 13", New(1, 13, 2024), false},
		{"negative year", New(1, 1, -1), false},
		{"year zero", New(1, 1, 0), true},
		{"31 april", New(31, 4, 2024), false},
		{"30 april", New(30, 4, 2024), true},
		{"31 june", New(31, 6, 2023), false},
		{"31 september", New(31, 9, 2023), false},
		{"31 november", New(31, 11, 2023), false},
		{"31 december", New(31, 12, 2023), true},
		{"29 february leap", New(29, 2, 2024), true},
		{"30 february leap", New(30, 2, 2024), false},
		{"29 february common", New(29, 2, 2023), false},
		{"28 february common", New(28, 2, 2023), true},
		// no century correction: 1900 counts as a leap year.
		{"29 february 1900", New(29, 2, 1900), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.date.Valid(), "Valid(%v)", tc.date)
		})
	}
}

func TestDate_InRange(t *testing.T) {
	lo, hi := New(1, 1, 2024), New(31, 1, 2024)
	assert.True(t, New(15, 1, 2024).InRange(lo, hi))
	assert.True(t, New(1, 1, 2024).InRange(lo, hi))
	assert.True(t, New(31, 1, 2024).InRange(lo, hi))
	assert.False(t, New(1, 2, 2024).InRange(lo, hi))
	assert.False(t, New(15, 1, 2023).InRange(lo, hi))

	// Fields are compared one by one, not chronologically.
	lo, hi = New(10, 1, 2024), New(20, 6, 2024)
	assert.False(t, New(5, 3, 2024).InRange(lo, hi), "day 5 is below the lower day bound")
	assert.True(t, New(15, 3, 2024).InRange(lo, hi))
}

func TestParse(t *testing.T) {
	d, err := Parse("15/01/2024")
	require.NoError(t, err)
	assert.Equal(t, New(15, 1, 2024), d)
	assert.Equal(t, "15/1/2024", d.String())

	for _, in := range []string{"", "2024-01-15", "15/1", "a/1/2024", "31/4/2024", "1/2/3/4"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalid, "Parse(%q)", in)
	}
}

func TestParseLoose(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"15/1/2024", New(15, 1, 2024)},
		{"", Date{}},
		{"garbage", Date{}},
		{"15/x/2024", New(15, 0, 0)},
		{"15-1-2024", New(15, 0, 0)},
		{"15/1", New(15, 1, 0)},
		{"40/13/2024", New(40, 13, 2024)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLoose(tc.in))
		})
	}
}
