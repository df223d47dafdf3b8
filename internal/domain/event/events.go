// Package event defines the domain events emitted by the account service.
package event

import (
	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/pkg/events"
)

// DomainEvent is the envelope published for every account event.
type DomainEvent = events.DomainEvent

const (
	aggregateAccount = "Account"

	TypeAccountRegistered = "account.registered"
)

// AccountRegistered is emitted after an account has been accepted by the accounts API.
type AccountRegistered struct {
	events.BaseEvent
}

// AccountRegisteredPayload is the JSON body of AccountRegistered.
type AccountRegisteredPayload struct {
	AccountID      uuid.UUID `json:"account_id"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	Country        string    `json:"country"`
	Currency       string    `json:"currency"`
	BankID         string    `json:"bank_id"`
	BankIDCode     string    `json:"bank_id_code"`
	BIC            string    `json:"bic"`
	AccountNumber  string    `json:"account_number,omitempty"`
	IBAN           string    `json:"iban,omitempty"`
	Classification string    `json:"account_classification"`
	Cop            bool      `json:"confirmation_of_payee"`
	Version        int       `json:"version"`
}

// NewAccountRegistered builds the event for account at the given API version.
func NewAccountRegistered(account model.Account, cop bool, version int) (AccountRegistered, error) {
	number, _ := account.Number()
	iban, _ := account.IBAN()

	base, err := events.NewBaseEvent(TypeAccountRegistered, account.ID(), aggregateAccount, AccountRegisteredPayload{
		AccountID:      account.ID(),
		OrganisationID: account.OrganisationID(),
		Country:        account.Country().Alpha3(),
		Currency:       account.Currency().Code(),
		BankID:         account.BankID(),
		BankIDCode:     account.BankIDCode(),
		BIC:            account.BIC(),
		AccountNumber:  number,
		IBAN:           iban,
		Classification: account.Classification().String(),
		Cop:            cop,
		Version:        version,
	})
	if err != nil {
		return AccountRegistered{}, err
	}
	return AccountRegistered{BaseEvent: base}, nil
}
