package model

import (
	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/domain/valueobject"
	"github.com/bibbank/accountmodel/pkg/money"
)

// Account is a bank account record that passed its country's restrictions.
// It is immutable and can only be obtained from AccountBuilder.Build.
type Account struct {
	id             uuid.UUID
	organisationID uuid.UUID
	country        valueobject.Country
	currency       money.Currency
	bankID         string
	bankIDCode     string
	bic            string
	number         *string
	iban           *string
	title          *string
	classification valueobject.Classification
}

// ID returns the account's unique identifier.
func (a Account) ID() uuid.UUID { return a.id }

// OrganisationID returns the owning organisation's identifier.
func (a Account) OrganisationID() uuid.UUID { return a.organisationID }

// Country returns the country the account is held in.
func (a Account) Country() valueobject.Country { return a.country }

// Currency returns the currency derived from the country.
func (a Account) Currency() money.Currency { return a.currency }

// BankID returns the national bank identifier, e.g. a UK sort code.
func (a Account) BankID() string { return a.bankID }

// BankIDCode returns the scheme the bank id follows.
func (a Account) BankIDCode() string { return a.bankIDCode }

// BIC returns the business identifier code.
func (a Account) BIC() string { return a.bic }

// Number returns the account number, if one was supplied.
func (a Account) Number() (string, bool) { return deref(a.number) }

// IBAN returns the IBAN, if one was supplied.
func (a Account) IBAN() (string, bool) { return deref(a.iban) }

// Title returns the free-text account title, if one was supplied.
func (a Account) Title() (string, bool) { return deref(a.title) }

// Classification returns whether the account is Personal or Business.
func (a Account) Classification() valueobject.Classification { return a.classification }

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
