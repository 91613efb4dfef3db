// Package date provides the calendar date used to stamp ledger entries.
package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned by Parse when the text does not denote a valid date.
var ErrInvalid = errors.New("invalid date")

// Date represents a day with no lower than day granularity.
//
// A Date is not validated at construction, use Valid to check it.
type Date struct {
	Day   int
	Month int
	Year  int
}

// New returns the date for the given day, month and year, as is.
func New(day, month, year int) Date { return Date{Day: day, Month: month, Year: year} }

// Today returns the current date.
func Today() Date {
	y, m, d := time.Now().Date()
	return New(d, int(m), y)
}

// Valid reports whether d is a valid calendar day.
//
// The leap year rule is "divisible by 4", without the century correction.
func (d Date) Valid() bool {
	if d.Day < 1 || d.Day > 31 || d.Month < 1 || d.Month > 12 || d.Year < 0 {
		return false
	}
	switch d.Month {
	case 4, 6, 9, 11:
		return d.Day <= 30
	case 2:
		if d.Year%4 == 0 {
			return d.Day <= 29
		}
		return d.Day <= 28
	}
	return true
}

// InRange reports whether each field of d lies between the same field of lo and hi.
//
// Fields are compared independently: 5/3/2024 is not in [10/1/2024, 20/6/2024]
// because 5 < 10. This is not a chronological comparison.
func (d Date) InRange(lo, hi Date) bool {
	return d.Year >= lo.Year && d.Year <= hi.Year &&
		d.Month >= lo.Month && d.Month <= hi.Month &&
		d.Day >= lo.Day && d.Day <= hi.Day
}

// String formats the date as day/month/year, without padding.
func (d Date) String() string { return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year) }

// Parse parses a date in the day/month/year format. Leading zeros are accepted.
func Parse(str string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(str), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w %q want format dd/mm/yyyy", ErrInvalid, str)
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w %q want format dd/mm/yyyy: %w", ErrInvalid, str, err)
		}
		fields[i] = v
	}
	d := New(fields[0], fields[1], fields[2])
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w %q: no such day", ErrInvalid, str)
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ParseLoose reads a day/month/year date and never fails.
//
// Reading stops at the first field that is not an integer or is not followed
// by a slash, the fields not read are left to zero. The result is not validated.
func ParseLoose(str string) Date {
	var fields [3]int
	rest := str
	for i := range fields {
		v, n, ok := leadingInt(rest)
		if !ok {
			break
		}
		fields[i] = v
		rest = rest[n:]
		if i < len(fields)-1 {
			if !strings.HasPrefix(rest, "/") {
				break
			}
			rest = rest[1:]
		}
	}
	return New(fields[0], fields[1], fields[2])
}

// leadingInt parses the optionally signed integer at the start of s, after
// blanks, and returns the number of bytes consumed.
func leadingInt(s string) (v, n int, ok bool) {
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	start := n
	if n < len(s) && (s[n] == '-' || s[n] == '+') {
		n++
	}
	digits := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == digits {
		return 0, 0, false
	}
	v, err := strconv.Atoi(s[start:n])
	if err != nil {
		return 0, 0, false
	}
	return v, n, true
}
