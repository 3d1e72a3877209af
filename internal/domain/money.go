package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Mul multiplies the amount by an item quantity.
func (m Money) Mul(qty int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(qty))),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) Money {
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Display renders the amount with exactly two fractional digits,
// rounding half away from zero.
func (m Money) Display() string {
	return m.Amount.StringFixed(2)
}
