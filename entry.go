package finance

import (
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
)

// Kind discriminates ledger entries.
type Kind string

// Kinds of entries, their value is the type tag written in records.
const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// ParseKind parses a record type tag.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Income:
		return Income, true
	case Expense:
		return Expense, true
	default:
		return "", false
	}
}

// Entry is one income or expense. It is a value: copying an Entry copies it entirely.
type Entry struct {
	kind        Kind
	amount      Money
	description string
	date        date.Date
	category    string // only for Expense
}

// NewIncome returns an income entry.
func NewIncome(amount Money, description string, on date.Date) Entry {
	return Entry{kind: Income, amount: amount, description: description, date: on}
}

// NewExpense returns an expense entry filed under category.
func NewExpense(amount Money, description string, on date.Date, category string) Entry {
	return Entry{kind: Expense, amount: amount, description: description, date: on, category: category}
}

func (e Entry) Kind() Kind          { return e.kind }
func (e Entry) Amount() Money       { return e.amount }
func (e Entry) Description() string { return e.description }
func (e Entry) Date() date.Date     { return e.date }

// Category returns the expense category, "" for an income.
func (e Entry) Category() string { return e.category }

// Signed returns the effect of the entry on the balance.
func (e Entry) Signed() Money {
	switch e.kind {
	case Income:
		return e.amount
	case Expense:
		return e.amount.Neg()
	default:
		return Money{}
	}
}

// Validate checks the entry can be recorded: a known kind, a non-negative
// amount, a valid date and single line texts.
func (e Entry) Validate() error {
	if _, ok := ParseKind(string(e.kind)); !ok {
		return fmt.Errorf("%w: unknown entry kind %q", ErrValidation, e.kind)
	}
	if e.amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrValidation, e.amount.Text())
	}
	if !e.date.Valid() {
		return fmt.Errorf("%w: invalid date %s", ErrValidation, e.date)
	}
	if err := singleLine("description", e.description); err != nil {
		return err
	}
	if e.kind == Expense {
		if err := singleLine("category", e.category); err != nil {
			return err
		}
	}
	return nil
}

// String returns a one line human description.
func (e Entry) String() string {
	switch e.kind {
	case Income:
		return fmt.Sprintf("Income: +%s - %s", e.amount, e.description)
	case Expense:
		return fmt.Sprintf("Expense: -%s - %s [%s]", e.amount, e.description, e.category)
	default:
		return string(e.kind)
	}
}

// singleLine rejects texts that would break the line oriented record.
func singleLine(field, s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%w: %s must fit on a single line", ErrValidation, field)
	}
	return nil
}
