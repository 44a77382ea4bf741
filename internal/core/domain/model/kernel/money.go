package kernel

import (
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of decimal places of the settlement
// currency; card gateways charge in minor units (cents).
const minorUnitExponent = 2

var hundred = decimal.NewFromInt(100)

// Money is a non-negative monetary amount with cent precision.
// Arithmetic is exact; amounts are rounded half-up to cents on construction.
type Money struct {
	amount decimal.Decimal
}

// NewMoney returns an error for negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(minorUnitExponent)}, nil
}

// MustMoney parses a decimal literal such as "20.00". It panics on bad input.
func MustMoney(s string) Money {
	m, err := NewMoney(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// MoneyFromMinorUnits converts cents into Money.
func MoneyFromMinorUnits(cents int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(cents).Div(hundred))
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// MinorUnits returns the amount in cents.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(hundred).Round(0).IntPart()
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.amount.StringFixed(minorUnitExponent)
}
