package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	t.Run("accepts ISO codes", func(t *testing.T) {
		for _, code := range []string{"GBP", "EUR", "USD", "HKD", "PLN"} {
			c, err := NewCurrency(code)
			require.NoError(t, err)
			assert.Equal(t, code, c.Code())
			assert.Equal(t, code, c.String())
		}
	})

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"lowercase", "gbp"},
		{"too short", "GB"},
		{"too long", "GBPP"},
		{"digits", "GB1"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewCurrency(tt.code)
			assert.Error(t, err)
		})
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("bad") })
}

func TestCurrency_MinorUnits(t *testing.T) {
	assert.Equal(t, int32(2), GBP.MinorUnits())
	assert.Equal(t, int32(0), MustCurrency("JPY").MinorUnits())
	assert.Equal(t, int32(3), MustCurrency("KWD").MinorUnits())
}

func TestCurrency_IsZero(t *testing.T) {
	var c Currency
	assert.True(t, c.IsZero())
	assert.False(t, GBP.IsZero())
}

func TestNewFromString(t *testing.T) {
	t.Run("parses amount", func(t *testing.T) {
		m, err := NewFromString("1000.5", "GBP")
		require.NoError(t, err)
		assert.Equal(t, "1000.50", m.Decimal())
		assert.Equal(t, "1000.50 GBP", m.String())
		assert.True(t, m.IsPositive())
	})

	t.Run("rejects bad amount", func(t *testing.T) {
		_, err := NewFromString("ten", "GBP")
		assert.ErrorContains(t, err, "invalid amount")
	})

	t.Run("rejects bad currency", func(t *testing.T) {
		_, err := NewFromString("10", "pounds")
		assert.ErrorContains(t, err, "invalid currency")
	})
}

func TestMoney_FitsMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     bool
	}{
		{"10.50", "GBP", true},
		{"10.500", "GBP", true},
		{"10", "GBP", true},
		{"10.005", "GBP", false},
		{"0.001", "GBP", false},
		{"100", "JPY", true},
		{"100.5", "JPY", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			m, err := NewFromString(tt.amount, tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.FitsMinorUnits())
		})
	}
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		sum, err := New(decimal.NewFromInt(10), GBP).Add(New(decimal.RequireFromString("2.25"), GBP))
		require.NoError(t, err)
		assert.True(t, sum.Equal(New(decimal.RequireFromString("12.25"), GBP)))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := Zero(GBP).Add(Zero(EUR))
		assert.ErrorContains(t, err, "currency mismatch")
	})
}
