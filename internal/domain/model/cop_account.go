package model

import (
	"errors"
	"strings"

	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

// CopDetails are the Confirmation of Payee attributes supplied alongside an account.
type CopDetails struct {
	FirstName                 string
	BankAccountNames          []string
	BankAccountClassification valueobject.Classification
	JointAccount              bool
	MatchingOptOut            bool
	SecondaryIdentification   string
}

// CopAccount is an Account enriched with the data a payer's bank needs to confirm
// the payee's name before a transfer.
type CopAccount struct {
	account Account
	details CopDetails
}

// NewCopAccount attaches CoP details to a validated account.
// At least one non-blank bank account name is required; names are trimmed.
func NewCopAccount(account Account, details CopDetails) (CopAccount, error) {
	names := make([]string, 0, len(details.BankAccountNames))
	for _, n := range details.BankAccountNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return CopAccount{}, errors.New("CoP account requires at least one bank account name")
	}

	details.FirstName = strings.TrimSpace(details.FirstName)
	details.SecondaryIdentification = strings.TrimSpace(details.SecondaryIdentification)
	details.BankAccountNames = names
	return CopAccount{account: account, details: details}, nil
}

// Account returns the underlying validated account.
func (c CopAccount) Account() Account { return c.account }

// FirstName returns the account holder's first name.
func (c CopAccount) FirstName() string { return c.details.FirstName }

// BankAccountNames returns a copy of the names the account is held under.
func (c CopAccount) BankAccountNames() []string {
	names := make([]string, len(c.details.BankAccountNames))
	copy(names, c.details.BankAccountNames)
	return names
}

// BankAccountClassification returns the classification the bank holds for the account.
func (c CopAccount) BankAccountClassification() valueobject.Classification {
	return c.details.BankAccountClassification
}

// JointAccount reports whether the account has more than one holder.
func (c CopAccount) JointAccount() bool { return c.details.JointAccount }

// MatchingOptOut reports whether the holder opted out of name matching.
func (c CopAccount) MatchingOptOut() bool { return c.details.MatchingOptOut }

// SecondaryIdentification returns the roll number or other secondary reference.
func (c CopAccount) SecondaryIdentification() string { return c.details.SecondaryIdentification }
