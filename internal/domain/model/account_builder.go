package model

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/domain/rule"
	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

// AccountBuilder accumulates loosely supplied account fields and validates them all at once
// in Build. Setters store values verbatim and return the builder for chaining.
//
// A builder is owned by a single caller; it is not safe for concurrent use.
type AccountBuilder struct {
	id             *uuid.UUID
	organisationID *uuid.UUID
	country        *valueobject.Country
	bankID         *string
	bankIDCode     *string
	bic            *string
	number         *string
	iban           *string
	title          *string
	classification valueobject.Classification

	newID  func() uuid.UUID
	logger *slog.Logger
}

// BuilderOption customises an AccountBuilder.
type BuilderOption func(*AccountBuilder)

// WithIDGenerator replaces uuid.New as the source of missing account and organisation ids.
func WithIDGenerator(gen func() uuid.UUID) BuilderOption {
	return func(b *AccountBuilder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithLogger sets the logger that receives bank id code corrections.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *AccountBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewAccountBuilder returns an empty builder classified as Personal.
func NewAccountBuilder(opts ...BuilderOption) *AccountBuilder {
	b := &AccountBuilder{
		classification: valueobject.ClassificationPersonal,
		newID:          uuid.New,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *AccountBuilder) WithAccountID(id uuid.UUID) *AccountBuilder {
	b.id = &id
	return b
}

func (b *AccountBuilder) WithOrganisationID(id uuid.UUID) *AccountBuilder {
	b.organisationID = &id
	return b
}

func (b *AccountBuilder) WithCountry(country valueobject.Country) *AccountBuilder {
	b.country = &country
	return b
}

func (b *AccountBuilder) WithBankID(id string) *AccountBuilder {
	b.bankID = &id
	return b
}

func (b *AccountBuilder) WithBankIDCode(code string) *AccountBuilder {
	b.bankIDCode = &code
	return b
}

func (b *AccountBuilder) WithNumber(number string) *AccountBuilder {
	b.number = &number
	return b
}

func (b *AccountBuilder) WithIBAN(iban string) *AccountBuilder {
	b.iban = &iban
	return b
}

func (b *AccountBuilder) WithBIC(bic string) *AccountBuilder {
	b.bic = &bic
	return b
}

func (b *AccountBuilder) WithTitle(title string) *AccountBuilder {
	b.title = &title
	return b
}

// MarkPersonal classifies the account as Personal. The last Mark call wins.
func (b *AccountBuilder) MarkPersonal() *AccountBuilder {
	b.classification = valueobject.ClassificationPersonal
	return b
}

// MarkBusiness classifies the account as Business. The last Mark call wins.
func (b *AccountBuilder) MarkBusiness() *AccountBuilder {
	b.classification = valueobject.ClassificationBusiness
	return b
}

// Build validates the accumulated fields against the country's rule and returns the
// resulting Account, or the first violated restriction as a *ValidationError.
//
// Checks run in a fixed order: country presence, country support, country-required
// fields, account number length, bank id presence and length. A wrong or missing bank id
// code is not an error; Build replaces it with the country's code, on the builder too.
func (b *AccountBuilder) Build() (Account, error) {
	if b.country == nil {
		return Account{}, errCountryRequired()
	}

	r, ok := rule.For(*b.country)
	if !ok {
		return Account{}, errUnsupportedCountry(b.country.Alpha3())
	}

	return b.buildWithRestrictions(r)
}

func (b *AccountBuilder) buildWithRestrictions(r rule.Rule) (Account, error) {
	country := r.Country.Alpha3()
	if r.RequiresBIC && b.bic == nil {
		return Account{}, errBICRequired(country)
	}

	if err := b.validateRestrictions(r); err != nil {
		return Account{}, err
	}

	var bic string
	if b.bic != nil {
		bic = *b.bic
	}

	return Account{
		id:             b.idOrNew(b.id),
		organisationID: b.idOrNew(b.organisationID),
		country:        r.Country,
		currency:       r.Currency,
		bankID:         *b.bankID,
		bankIDCode:     *b.bankIDCode,
		bic:            bic,
		number:         copyString(b.number),
		iban:           copyString(b.iban),
		title:          copyString(b.title),
		classification: b.classification,
	}, nil
}

// validateRestrictions checks the length rules shared by every country and normalizes
// the bank id code in place.
func (b *AccountBuilder) validateRestrictions(r rule.Rule) error {
	country := r.Country.Alpha3()

	if b.number != nil && len(*b.number) != r.AccountNumberLength {
		return errAccountNumberLength(country, r.AccountNumberLength, b.number)
	}

	if b.bankID == nil || len(*b.bankID) != r.BankIDLength {
		return errBankID(country, r.BankIDLength, b.bankID)
	}

	if code, corrected := r.CanonicalBankIDCode(b.bankIDCode); corrected {
		b.logger.Debug("bank id code corrected",
			"country", country,
			"expected", code,
			"got", describe(b.bankIDCode),
			"reason", correctionReason(b.bankIDCode),
		)
		b.bankIDCode = &code
	}

	return nil
}

// correctionReason tells a missing code from another scheme's code and from one that
// names no scheme at all.
func correctionReason(supplied *string) string {
	if supplied == nil {
		return "absent"
	}
	if _, err := valueobject.ParseKnownBankIDCode(*supplied); err != nil {
		return "unknown"
	}
	return "foreign"
}

func (b *AccountBuilder) idOrNew(given *uuid.UUID) uuid.UUID {
	if given != nil {
		return *given
	}
	return b.newID()
}
