// Package iso20022 renders ISO 20022 payment initiation messages.
package iso20022

import "time"

// MessageType represents ISO 20022 message types.
type MessageType string

const (
	Pain001 MessageType = "pain.001.001.12" // CustomerCreditTransferInitiation
)

// Message is the base interface for all ISO 20022 messages.
type Message interface {
	Type() MessageType
	ToXML() ([]byte, error)
}

// MessageHeader contains the group header fields shared by a message.
type MessageHeader struct {
	MessageID       string
	CreationDate    time.Time
	InitiatingParty string
}

// AccountIdentification identifies a cash account either by IBAN or by a scheme-specific
// "other" identifier such as a UK sort code followed by the account number.
type AccountIdentification struct {
	IBAN     string
	Other    string
	Scheme   string // proprietary scheme name of Other, e.g. "GBDSC"
	Currency string
}

// Party is a debtor or creditor together with its account and servicing agent.
// Address and PrivateID are optional details of a natural person.
type Party struct {
	Name      string
	Account   AccountIdentification
	AgentBIC  string
	Address   *PostalAddress
	PrivateID string // identity document number
}

// PostalAddress is the unstructured postal address of a party.
type PostalAddress struct {
	AddressLine string
	City        string
	Country     string // ISO 3166 alpha-2
}
