package finance

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/finance/date"
)

// recorder persists ledgers, *Store implements it.
type recorder interface {
	Save(l *Ledger) error
	Remove(username string) error
}

// Ledger is the in-memory state of one account: its identity, its entries in
// insertion order and the running balance.
//
// The balance is always the sum of income amounts minus the sum of expense
// amounts. Every mutation is persisted through the store the ledger was
// opened with. A ledger without store is never persisted.
type Ledger struct {
	username string
	password string
	key      string // obfuscation key, stored in the record
	balance  Money
	entries  []Entry
	store    recorder
}

// NewLedger creates an empty ledger with a fresh obfuscation key.
// It is not persisted until the first save.
func NewLedger(username, password string) *Ledger {
	return &Ledger{
		username: username,
		password: password,
		key:      NewKey(len(username)),
		entries:  make([]Entry, 0),
	}
}

// Username returns the account name.
func (l *Ledger) Username() string { return l.username }

// CheckPassword reports whether password is the account password.
func (l *Ledger) CheckPassword(password string) bool { return l.password == password }

// Balance returns the running balance.
func (l *Ledger) Balance() Money { return l.balance }

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entry returns the entry at index i.
func (l *Ledger) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, &IndexError{Index: i, Len: len(l.entries)}
	}
	return l.entries[i], nil
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry { return slices.Clone(l.entries) }

// All returns an iterator over the entries accepted by all the filters, with
// their index. Without filters every entry is accepted.
func (l *Ledger) All(filters ...func(Entry) bool) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !all(e, filters) {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// Incomes accepts income entries.
func Incomes(e Entry) bool { return e.Kind() == Income }

// Expenses accepts expense entries.
func Expenses(e Entry) bool { return e.Kind() == Expense }

// During returns a filter accepting entries whose date is in [lo, hi], see date.Date.InRange.
func During(lo, hi date.Date) func(Entry) bool {
	return func(e Entry) bool { return e.Date().InRange(lo, hi) }
}

// InCategory returns a filter accepting expenses filed exactly under name.
func InCategory(name string) func(Entry) bool {
	return func(e Entry) bool { return e.Kind() == Expense && e.Category() == name }
}

// apply appends e and updates the balance. Live entries and entries replayed
// from a record both go through it.
func (l *Ledger) apply(e Entry) {
	l.entries = append(l.entries, e)
	l.balance = l.balance.Add(e.Signed())
}

// AddEntry validates e, appends it, updates the balance and saves the ledger.
//
// An invalid entry is rejected and the ledger is unchanged. Once accepted, the
// entry is kept in memory even when the record could not be written.
func (l *Ledger) AddEntry(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	l.apply(e)
	return l.save()
}

// RemoveEntry removes the entry at index i, reverses its effect on the balance
// and saves the ledger. An out of range index changes nothing.
func (l *Ledger) RemoveEntry(i int) error {
	if i < 0 || i >= len(l.entries) {
		return &IndexError{Index: i, Len: len(l.entries)}
	}
	l.balance = l.balance.Sub(l.entries[i].Signed())
	l.entries = slices.Delete(l.entries, i, i+1)
	return l.save()
}

// ChangePassword replaces the password, then deletes and rewrites the record.
func (l *Ledger) ChangePassword(password string) error {
	l.password = password
	if l.store == nil {
		return nil
	}
	if err := l.store.Remove(l.username); err != nil {
		return fmt.Errorf("could not change password of %q: %w", l.username, err)
	}
	return l.save()
}

func (l *Ledger) save() error {
	if l.store == nil {
		return nil
	}
	return l.store.Save(l)
}

// sum adds the amounts of the entries accepted by all filters.
func (l *Ledger) sum(filters ...func(Entry) bool) Money {
	var total Money
	for _, e := range l.All(filters...) {
		total = total.Add(e.Amount())
	}
	return total
}

func all(e Entry, filters []func(Entry) bool) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// IncomeForPeriod returns the total of incomes dated in [lo, hi].
func (l *Ledger) IncomeForPeriod(lo, hi date.Date) Money {
	return l.sum(Incomes, During(lo, hi))
}

// ExpensesForPeriod returns the total of expenses dated in [lo, hi].
func (l *Ledger) ExpensesForPeriod(lo, hi date.Date) Money {
	return l.sum(Expenses, During(lo, hi))
}

// NetSavingsForPeriod returns incomes minus expenses dated in [lo, hi].
func (l *Ledger) NetSavingsForPeriod(lo, hi date.Date) Money {
	return l.IncomeForPeriod(lo, hi).Sub(l.ExpensesForPeriod(lo, hi))
}

// ExpensesByCategory returns the total of expenses filed exactly under name.
// The match is case-sensitive.
func (l *Ledger) ExpensesByCategory(name string) Money {
	return l.sum(InCategory(name))
}

// Categories returns the distinct expense categories in first use order.
func (l *Ledger) Categories() []string {
	var cats []string
	for _, e := range l.All(Expenses) {
		if !slices.Contains(cats, e.Category()) {
			cats = append(cats, e.Category())
		}
	}
	return cats
}
