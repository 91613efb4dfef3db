package finance

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the unit of every amount recorded in a ledger.
const Currency = "BDT"

// Money represents an amount of Currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns the amount value in Currency.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case float64:
		return Money{value: decimal.NewFromFloat(v)}
	case int:
		return Money{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Money{value: decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Money{value: v}
	}
	panic("unreachable")
}

// ParseMoney parses a decimal amount such as "1000" or "12.50".
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: v}, nil
}

// currency returns the go-money currency, never nil.
func currency(code string) money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the amount formatted in Currency, e.g. "৳1,000.00".
func (m Money) String() string { return m.Format(Currency) }

// Format returns the amount formatted with the conventions of the currency code.
func (m Money) Format(code string) string {
	cur := currency(code)
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// Text returns the plain decimal representation used in records, e.g. "1000" or "12.5".
func (m Money) Text() string { return m.value.String() }

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }

// SignedString returns the formatted amount with an explicit sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
