package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRequest carries loosely typed account attributes. Nil pointers mean "not supplied",
// which is distinct from an empty string.
type AccountRequest struct {
	AccountID      string  `json:"account_id,omitempty"`
	OrganisationID string  `json:"organisation_id,omitempty"`
	Country        string  `json:"country"`
	BankID         *string `json:"bank_id,omitempty"`
	BankIDCode     *string `json:"bank_id_code,omitempty"`
	Number         *string `json:"account_number,omitempty"`
	IBAN           *string `json:"iban,omitempty"`
	BIC            *string `json:"bic,omitempty"`
	Title          *string `json:"title,omitempty"`
	Classification string  `json:"account_classification,omitempty"`
}

// AccountResponse is a validated, normalized account.
type AccountResponse struct {
	AccountID           uuid.UUID `json:"account_id"`
	OrganisationID      uuid.UUID `json:"organisation_id"`
	Country             string    `json:"country"`
	Currency            string    `json:"currency"`
	BankID              string    `json:"bank_id"`
	BankIDCode          string    `json:"bank_id_code"`
	BIC                 string    `json:"bic"`
	Number              *string   `json:"account_number,omitempty"`
	IBAN                *string   `json:"iban,omitempty"`
	Title               *string   `json:"title,omitempty"`
	Classification      string    `json:"account_classification"`
	BankIDCodeCorrected bool      `json:"bank_id_code_corrected"`
}

// CopRequest attaches Confirmation of Payee details to a registration.
type CopRequest struct {
	FirstName                 string   `json:"first_name,omitempty"`
	BankAccountNames          []string `json:"name"`
	BankAccountClassification string   `json:"account_classification,omitempty"`
	JointAccount              bool     `json:"joint_account"`
	MatchingOptOut            bool     `json:"account_matching_opt_out"`
	SecondaryIdentification   string   `json:"secondary_identification,omitempty"`
}

// RegisterAccountRequest is the DTO for submitting an account to the accounts API.
type RegisterAccountRequest struct {
	Account AccountRequest `json:"account"`
	Cop     *CopRequest    `json:"cop,omitempty"`
}

// RegisterAccountResponse is returned once the accounts API accepted the account.
type RegisterAccountResponse struct {
	Account   AccountResponse `json:"account"`
	Version   int             `json:"version"`
	CreatedOn time.Time       `json:"created_on"`
	EventID   uuid.UUID       `json:"event_id"`
}

// CountryResponse describes the account rules of one supported country.
type CountryResponse struct {
	Alpha2              string `json:"alpha2"`
	Alpha3              string `json:"alpha3"`
	Currency            string `json:"currency"`
	BankIDCode          string `json:"bank_id_code"`
	BankIDLength        int    `json:"bank_id_length"`
	AccountNumberLength int    `json:"account_number_length"`
	RequiresBIC         bool   `json:"requires_bic"`
}
