package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "USD"
	moneyPrecision  = 2
)

// Money is an immutable non-negative amount in one currency. Amounts are
// rounded half-to-even to two decimal places.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errors.Wrapf(ErrInvalidAmount, "amount %s", amount)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount.RoundBank(moneyPrecision), currency: currency}, nil
}

func USD(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount, DefaultCurrency)
}

func Zero() Money {
	return Money{amount: decimal.Zero, currency: DefaultCurrency}
}

func ZeroOf(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other, "add"); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract fails with ErrInvalidAmount when the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other, "subtract"); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errors.Wrapf(ErrInvalidMultiplier, "quantity %d", quantity)
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))), m.currency)
}

func (m Money) MultiplyDecimal(multiplier decimal.Decimal) (Money, error) {
	if multiplier.IsNegative() {
		return Money{}, errors.Wrapf(ErrInvalidMultiplier, "multiplier %s", multiplier)
	}
	return NewMoney(m.amount.Mul(multiplier), m.currency)
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.compare(other)
	return c > 0, err
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.compare(other)
	return c < 0, err
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	c, err := m.compare(other)
	return c >= 0, err
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.compare(other)
	return c <= 0, err
}

// Equal compares amount and currency. It never fails.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyPrecision) + " " + m.currency
}

func (m Money) compare(other Money) (int, error) {
	if err := m.sameCurrency(other, "compare"); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) sameCurrency(other Money, op string) error {
	if m.currency != other.currency {
		return errors.Wrapf(ErrCurrencyMismatch, "cannot %s %s and %s", op, m.currency, other.currency)
	}
	return nil
}
