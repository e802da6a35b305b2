package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderservice/pkg/order/domain/model"
)

func money(t *testing.T, amount, currency string) model.Money {
	t.Helper()
	m, err := model.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	m := money(t, "100.50", "USD")

	assert.Equal(t, "100.5", m.Amount().String())
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, "100.50 USD", m.String())
}

func TestNewMoney_Rounding(t *testing.T) {
	cases := map[string]string{
		"100.999": "101.00",
		"10.005":  "10.00",
		"10.015":  "10.02",
		"0.125":   "0.12",
		"0.135":   "0.14",
		"7":       "7.00",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			m := money(t, in, "USD")
			assert.Equal(t, want, m.Amount().StringFixed(2))
		})
	}
}

func TestNewMoney_NormalizesCurrency(t *testing.T) {
	assert.Equal(t, "EUR", money(t, "1", " eur ").Currency())
}

func TestNewMoney_Fails(t *testing.T) {
	t.Run("Negative amount", func(t *testing.T) {
		_, err := model.NewMoney(decimal.NewFromInt(-1), "USD")
		assert.ErrorIs(t, err, model.ErrInvalidAmount)

		_, err = model.NewMoney(decimal.RequireFromString("-100.50"), "USD")
		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	})

	t.Run("Blank currency", func(t *testing.T) {
		for _, currency := range []string{"", "   "} {
			_, err := model.NewMoney(decimal.NewFromInt(100), currency)
			assert.ErrorIs(t, err, model.ErrInvalidCurrency)
		}
	})
}

func TestUSD(t *testing.T) {
	m, err := model.USD(decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "50.00 USD", m.String())
}

func TestZero(t *testing.T) {
	zero := model.Zero()
	assert.True(t, zero.IsZero())
	assert.Equal(t, "USD", zero.Currency())

	eur, err := model.ZeroOf("eur")
	require.NoError(t, err)
	assert.True(t, eur.IsZero())
	assert.Equal(t, "EUR", eur.Currency())

	_, err = model.ZeroOf("")
	assert.ErrorIs(t, err, model.ErrInvalidCurrency)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := money(t, "100", "USD")
	b := money(t, "30", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(money(t, "130", "USD")))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(money(t, "70", "USD")))

	t.Run("Negative difference", func(t *testing.T) {
		_, err := b.Subtract(a)
		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	})

	t.Run("Different currencies", func(t *testing.T) {
		eur := money(t, "0", "EUR")
		_, err := a.Add(eur)
		assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
		_, err = a.Subtract(eur)
		assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
	})
}

func TestMoney_Multiply(t *testing.T) {
	price := money(t, "25.50", "USD")

	tripled, err := price.Multiply(3)
	require.NoError(t, err)
	assert.Equal(t, "76.50 USD", tripled.String())

	zero, err := price.Multiply(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "USD", zero.Currency())

	scaled, err := money(t, "100", "USD").MultiplyDecimal(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "150.00 USD", scaled.String())

	rounded, err := money(t, "10", "USD").MultiplyDecimal(decimal.RequireFromString("0.3333"))
	require.NoError(t, err)
	assert.Equal(t, "3.33 USD", rounded.String())

	_, err = price.Multiply(-1)
	assert.ErrorIs(t, err, model.ErrInvalidMultiplier)
	_, err = price.MultiplyDecimal(decimal.RequireFromString("-0.1"))
	assert.ErrorIs(t, err, model.ErrInvalidMultiplier)
}

func TestMoney_Compare(t *testing.T) {
	small := money(t, "10", "USD")
	large := money(t, "20", "USD")

	gt, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := large.LessThan(small)
	require.NoError(t, err)
	assert.False(t, lt)

	gte, err := small.GreaterThanOrEqual(money(t, "10.00", "USD"))
	require.NoError(t, err)
	assert.True(t, gte)

	lte, err := small.LessThanOrEqual(large)
	require.NoError(t, err)
	assert.True(t, lte)

	t.Run("Different currencies", func(t *testing.T) {
		eur := money(t, "10", "EUR")
		compares := []func(model.Money) (bool, error){
			small.GreaterThan, small.LessThan, small.GreaterThanOrEqual, small.LessThanOrEqual,
		}
		for _, compare := range compares {
			_, err := compare(eur)
			assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
		}
	})
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, money(t, "10", "USD").Equal(money(t, "10.00", "usd")))
	assert.False(t, money(t, "10", "USD").Equal(money(t, "10", "EUR")))
	assert.False(t, money(t, "10", "USD").Equal(money(t, "10.01", "USD")))
}
