package accountapi

import (
	"fmt"
	"time"

	"github.com/bibbank/accountmodel/internal/domain/model"
)

const resourceType = "accounts"

// envelope is the JSON:API style wrapper used by every accounts endpoint.
type envelope struct {
	Data *AccountData `json:"data"`
}

// AccountData is an organisation account resource.
type AccountData struct {
	ID             string             `json:"id"`
	OrganisationID string             `json:"organisation_id"`
	Type           string             `json:"type"`
	Version        *int64             `json:"version,omitempty"`
	CreatedOn      *time.Time         `json:"created_on,omitempty"`
	ModifiedOn     *time.Time         `json:"modified_on,omitempty"`
	Attributes     *AccountAttributes `json:"attributes"`
}

// AccountAttributes are the resource attributes. Country is ISO 3166-1 alpha-2.
type AccountAttributes struct {
	Country                 string   `json:"country"`
	BaseCurrency            string   `json:"base_currency,omitempty"`
	BankID                  string   `json:"bank_id,omitempty"`
	BankIDCode              string   `json:"bank_id_code,omitempty"`
	BIC                     string   `json:"bic,omitempty"`
	AccountNumber           string   `json:"account_number,omitempty"`
	IBAN                    string   `json:"iban,omitempty"`
	AccountClassification   string   `json:"account_classification,omitempty"`
	Name                    []string `json:"name,omitempty"`
	AlternativeNames        []string `json:"alternative_names,omitempty"`
	FirstName               string   `json:"first_name,omitempty"`
	JointAccount            *bool    `json:"joint_account,omitempty"`
	AccountMatchingOptOut   *bool    `json:"account_matching_opt_out,omitempty"`
	SecondaryIdentification string   `json:"secondary_identification,omitempty"`
}

// errorBody is returned by the API for non-2xx responses.
type errorBody struct {
	ErrorMessage string `json:"error_message"`
	ErrorCode    string `json:"error_code,omitempty"`
}

// APIError is a non-2xx response from the accounts API.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("account api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("account api: status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the same request may succeed later.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

func toAccountData(account model.Account, cop *model.CopAccount) *AccountData {
	number, _ := account.Number()
	iban, _ := account.IBAN()
	attrs := &AccountAttributes{
		Country:               account.Country().Alpha2(),
		BaseCurrency:          account.Currency().Code(),
		BankID:                account.BankID(),
		BankIDCode:            account.BankIDCode(),
		BIC:                   account.BIC(),
		AccountNumber:         number,
		IBAN:                  iban,
		AccountClassification: account.Classification().String(),
	}
	if title, ok := account.Title(); ok && title != "" {
		attrs.Name = []string{title}
	}

	if cop != nil {
		names := cop.BankAccountNames()
		attrs.Name = names[:1]
		attrs.AlternativeNames = names[1:]
		attrs.FirstName = cop.FirstName()
		attrs.AccountClassification = cop.BankAccountClassification().String()
		joint, optOut := cop.JointAccount(), cop.MatchingOptOut()
		attrs.JointAccount = &joint
		attrs.AccountMatchingOptOut = &optOut
		attrs.SecondaryIdentification = cop.SecondaryIdentification()
	}

	version := int64(0)
	return &AccountData{
		ID:             account.ID().String(),
		OrganisationID: account.OrganisationID().String(),
		Type:           resourceType,
		Version:        &version,
		Attributes:     attrs,
	}
}
