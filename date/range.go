package date

import "fmt"

// Range represents a reporting range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the standard period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: StartOf(d, period), To: EndOf(d, period)}
}

// Contains reports whether d is in the range, see Date.InRange.
func (r Range) Contains(d Date) bool { return d.InRange(r.From, r.To) }

// Valid reports whether both boundaries are valid dates.
func (r Range) Valid() bool { return r.From.Valid() && r.To.Valid() }

// String formats the range as "from to to".
func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }

// Identifier returns a file name friendly identifier: d_m_y_d_m_y.
func (r Range) Identifier() string {
	return fmt.Sprintf("%d_%d_%d_%d_%d_%d", r.From.Day, r.From.Month, r.From.Year, r.To.Day, r.To.Month, r.To.Year)
}
