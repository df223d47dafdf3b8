package valueobject

import (
	"fmt"
	"strings"
)

// Country is an immutable value object for an ISO 3166 country accounts may be held in.
type Country struct {
	alpha3 string
	alpha2 string
}

// Known countries.
var (
	CountryAUS = Country{"AUS", "AU"}
	CountryBEL = Country{"BEL", "BE"}
	CountryCAN = Country{"CAN", "CA"}
	CountryCHE = Country{"CHE", "CH"}
	CountryDEU = Country{"DEU", "DE"}
	CountryESP = Country{"ESP", "ES"}
	CountryFRA = Country{"FRA", "FR"}
	CountryGBR = Country{"GBR", "GB"}
	CountryGRC = Country{"GRC", "GR"}
	CountryHKG = Country{"HKG", "HK"}
	CountryITA = Country{"ITA", "IT"}
	CountryLUX = Country{"LUX", "LU"}
	CountryNLD = Country{"NLD", "NL"}
	CountryPOL = Country{"POL", "PL"}
	CountryPRT = Country{"PRT", "PT"}
	CountryUSA = Country{"USA", "US"}
)

var knownCountries = func() map[string]Country {
	all := []Country{
		CountryAUS, CountryBEL, CountryCAN, CountryCHE, CountryDEU, CountryESP, CountryFRA, CountryGBR,
		CountryGRC, CountryHKG, CountryITA, CountryLUX, CountryNLD, CountryPOL, CountryPRT, CountryUSA,
	}
	m := make(map[string]Country, 2*len(all))
	for _, c := range all {
		m[c.alpha3] = c
		m[c.alpha2] = c
	}
	return m
}()

// ParseCountry resolves an alpha-3 or alpha-2 code to a Country.
func ParseCountry(s string) (Country, error) {
	c, ok := knownCountries[strings.TrimSpace(s)]
	if !ok {
		return Country{}, fmt.Errorf("%s is not a known country", s)
	}
	return c, nil
}

// Alpha3 returns the ISO 3166-1 alpha-3 code, e.g. "GBR".
func (c Country) Alpha3() string { return c.alpha3 }

// Alpha2 returns the ISO 3166-1 alpha-2 code, e.g. "GB".
func (c Country) Alpha2() string { return c.alpha2 }

// String returns the alpha-3 code.
func (c Country) String() string { return c.alpha3 }

// IsZero returns true if the country is empty.
func (c Country) IsZero() bool { return c.alpha3 == "" }

// Equal returns true if two countries are equal.
func (c Country) Equal(other Country) bool { return c.alpha3 == other.alpha3 }
