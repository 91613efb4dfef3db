package finance

import "github.com/etnz/finance/date"

// SummaryReport holds the period totals of a ledger.
type SummaryReport struct {
	Username   string
	Period     date.Range
	Income     Money
	Expenses   Money
	NetSavings Money
}

// CategoryReport holds the expense total of one category.
type CategoryReport struct {
	Username string
	Category string
	Total    Money
}

// SummaryReport computes the totals of entries dated in [lo, hi], see date.Date.InRange.
func (l *Ledger) SummaryReport(lo, hi date.Date) SummaryReport {
	income, expenses := l.IncomeForPeriod(lo, hi), l.ExpensesForPeriod(lo, hi)
	return SummaryReport{
		Username:   l.username,
		Period:     date.Range{From: lo, To: hi},
		Income:     income,
		Expenses:   expenses,
		NetSavings: income.Sub(expenses),
	}
}

// CategoryReport computes the expense total of category name.
func (l *Ledger) CategoryReport(name string) CategoryReport {
	return CategoryReport{
		Username: l.username,
		Category: name,
		Total:    l.ExpensesByCategory(name),
	}
}
