// Package rule holds the compiled-in per-country account restrictions.
package rule

import (
	"sort"

	"github.com/bibbank/accountmodel/internal/domain/valueobject"
	"github.com/bibbank/accountmodel/pkg/money"
)

// Rule describes what a valid account looks like in one country.
type Rule struct {
	Country             valueobject.Country
	Currency            money.Currency
	AccountNumberLength int
	BankIDLength        int
	BankIDCode          valueobject.KnownBankIDCode
	RequiresBIC         bool
}

// table is keyed by alpha-3 country code. A country missing here is unsupported.
var table = map[string]Rule{
	valueobject.CountryGBR.Alpha3(): {
		Country:             valueobject.CountryGBR,
		Currency:            money.GBP,
		AccountNumberLength: 8,
		BankIDLength:        6,
		BankIDCode:          valueobject.BankIDCodeGBDSC,
		RequiresBIC:         true,
	},
}

// For returns the rule for a country.
func For(country valueobject.Country) (Rule, bool) {
	r, ok := table[country.Alpha3()]
	return r, ok
}

// Supported lists the countries that have a rule, ordered by alpha-3 code.
func Supported() []valueobject.Country {
	countries := make([]valueobject.Country, 0, len(table))
	for _, r := range table {
		countries = append(countries, r.Country)
	}
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Alpha3() < countries[j].Alpha3()
	})
	return countries
}

// CanonicalBankIDCode returns the country's bank id code and whether the supplied value
// had to be replaced to reach it. A nil supplied value always counts as corrected.
func (r Rule) CanonicalBankIDCode(supplied *string) (string, bool) {
	expected := r.BankIDCode.String()
	if supplied == nil || *supplied != expected {
		return expected, true
	}
	return expected, false
}
