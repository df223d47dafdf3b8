package dto

import "time"

// PartyRequest names an account holder and the account to debit or credit. Holder is
// set for SEPA parties, whose account must carry an IBAN.
type PartyRequest struct {
	Name    string         `json:"name"`
	Account AccountRequest `json:"account"`
	Holder  *HolderRequest `json:"holder,omitempty"`
}

// HolderRequest identifies the natural person holding a SEPA account.
type HolderRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	BirthDate      string `json:"birth_date,omitempty"`
	BirthCountry   string `json:"birth_country,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	AddressLine    string `json:"address_line,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
}

// TransferLine is one credit transfer inside an initiation.
type TransferLine struct {
	EndToEndID string       `json:"end_to_end_id"`
	Amount     string       `json:"amount"`
	Currency   string       `json:"currency,omitempty"` // defaults to the debtor account currency
	Creditor   PartyRequest `json:"creditor"`
	Remittance string       `json:"remittance_information,omitempty"`
}

// InitiateTransferRequest asks for a pain.001 document debiting one account.
type InitiateTransferRequest struct {
	MessageID       string         `json:"message_id,omitempty"`
	InitiatingParty string         `json:"initiating_party"`
	ExecutionDate   time.Time      `json:"execution_date"`
	Debtor          PartyRequest   `json:"debtor"`
	Transfers       []TransferLine `json:"transfers"`
}

// InitiateTransferResponse carries the rendered document.
type InitiateTransferResponse struct {
	MessageID            string `json:"message_id"`
	NumberOfTransactions int    `json:"number_of_transactions"`
	ControlSum           string `json:"control_sum"`
	Document             []byte `json:"document"`
}
