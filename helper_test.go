package finance

import (
	"fmt"
	"testing"

	"github.com/etnz/finance/date"
)

// BDT is a helper for test to create money from a const.
func BDT(v float64) Money { return M(v) }

// day is a helper for test to parse a d/m/y date.
func day(s string) date.Date { return date.MustParse(s) }

// describe renders entries in a comparable form.
func describe(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%s|%s|%s|%s|%s", e.Kind(), e.Amount().Text(), e.Description(), e.Date(), e.Category())
	}
	return out
}

// checkBalance asserts the ledger balance invariant.
func checkBalance(t *testing.T, l *Ledger) {
	t.Helper()
	var want Money
	for _, e := range l.Entries() {
		switch e.Kind() {
		case Income:
			want = want.Add(e.Amount())
		case Expense:
			want = want.Sub(e.Amount())
		}
	}
	if !l.Balance().Equal(want) {
		t.Errorf("Balance() = %s, want %s", l.Balance().Text(), want.Text())
	}
}
