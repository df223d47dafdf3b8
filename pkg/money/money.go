package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// minorUnits lists the ISO 4217 exponent for currencies that do not use two decimals.
var minorUnits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
}

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero reports whether the currency was never set.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// MinorUnits returns the number of decimal places used when rendering amounts.
func (c Currency) MinorUnits() int32 {
	if units, ok := minorUnits[c.code]; ok {
		return units
	}
	return 2
}

// Currencies of the countries accounts can be opened in.
var (
	AUD = MustCurrency("AUD")
	CAD = MustCurrency("CAD")
	CHF = MustCurrency("CHF")
	EUR = MustCurrency("EUR")
	GBP = MustCurrency("GBP")
	HKD = MustCurrency("HKD")
	PLN = MustCurrency("PLN")
	USD = MustCurrency("USD")
)

// Money is an immutable monetary amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromString parses an amount string and currency code into a Money value.
func NewFromString(amount string, currency string) (Money, error) {
	cur, err := NewCurrency(currency)
	if err != nil {
		return Money{}, fmt.Errorf("invalid currency: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	return Money{amount: d, currency: cur}, nil
}

// Zero returns a Money value of zero in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// IsPositive returns true if the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of m and other. Returns an error if the currencies do not match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// FitsMinorUnits reports whether the amount needs no more decimal places than the
// currency has, so Decimal renders it without rounding.
func (m Money) FitsMinorUnits() bool {
	return m.amount.Equal(m.amount.Truncate(m.currency.MinorUnits()))
}

// Decimal renders the amount with the currency's minor units, e.g. "1000.50" for GBP.
func (m Money) Decimal() string {
	return m.amount.StringFixed(m.currency.MinorUnits())
}

// String formats the Money value as "<amount> <currency>", for example "100.00 GBP".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal(), m.currency.Code())
}
