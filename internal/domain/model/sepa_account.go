package model

import (
	"errors"

	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

// PrivateIdentification identifies the natural person holding a SEPA account.
type PrivateIdentification struct {
	Name           string
	Surname        string
	BirthDate      string
	BirthCountry   valueobject.Country
	DocumentNumber string
	AddressLine    string
	City           string
	Country        valueobject.Country
}

// SepaAccount is an Account addressed by IBAN together with its holder's identity.
type SepaAccount struct {
	account        Account
	identification PrivateIdentification
}

// NewSepaAccount pairs an account with its holder. SEPA routes on IBAN, so the account
// must carry one.
func NewSepaAccount(account Account, identification PrivateIdentification) (SepaAccount, error) {
	if _, ok := account.IBAN(); !ok {
		return SepaAccount{}, errors.New("SEPA account requires Iban")
	}
	if identification.Name == "" || identification.Surname == "" {
		return SepaAccount{}, errors.New("SEPA account requires holder name and surname")
	}
	return SepaAccount{account: account, identification: identification}, nil
}

// Account returns the underlying validated account.
func (s SepaAccount) Account() Account { return s.account }

// Identification returns the holder's identity.
func (s SepaAccount) Identification() PrivateIdentification { return s.identification }
