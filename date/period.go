package date

import (
	"fmt"
	"strings"
)

// Period is a standard reporting period.
//
// Only periods whose boundaries never cross a month boundary inside a single
// field are offered, so that Range.Contains agrees with the calendar.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a period name, "month" and "monthly" are both accepted.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q", p)
	}
}

// StartOf returns the first day of the period containing d.
func StartOf(d Date, p Period) Date {
	switch p {
	case Monthly:
		return New(1, d.Month, d.Year)
	case Quarterly:
		return New(1, (d.Month-1)/3*3+1, d.Year)
	case Yearly:
		return New(1, 1, d.Year)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// EndOf returns the last day of the period containing d.
func EndOf(d Date, p Period) Date {
	switch p {
	case Monthly:
		return New(DaysIn(d.Month, d.Year), d.Month, d.Year)
	case Quarterly:
		m := (d.Month-1)/3*3 + 3
		return New(31, m, d.Year) // 31 is the largest day, any month of the quarter fits under it.
	case Yearly:
		return New(31, 12, d.Year)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// DaysIn returns the number of days in month for year, with the same leap
// year rule as Date.Valid.
func DaysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 {
			return 29
		}
		return 28
	default:
		return 31
	}
}
