package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/rule"
	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

const (
	outcomeValid     = "valid"
	outcomeRejected  = "rejected"
	outcomeCorrected = "corrected"
)

// ValidateAccountUseCase turns a loosely typed request into a validated account.
type ValidateAccountUseCase struct {
	logger      *slog.Logger
	validations metric.Int64Counter
}

// NewValidateAccountUseCase creates a new ValidateAccountUseCase.
func NewValidateAccountUseCase(logger *slog.Logger, meter metric.Meter) (*ValidateAccountUseCase, error) {
	counter, err := meter.Int64Counter("account_validations_total",
		metric.WithDescription("Account validations by country and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create validations counter: %w", err)
	}
	return &ValidateAccountUseCase{logger: logger, validations: counter}, nil
}

// Execute validates req and returns the normalized account.
func (uc *ValidateAccountUseCase) Execute(ctx context.Context, req dto.AccountRequest) (dto.AccountResponse, error) {
	account, corrected, err := uc.validate(ctx, req)
	if err != nil {
		return dto.AccountResponse{}, err
	}
	return toAccountResponse(account, corrected), nil
}

// Countries lists the countries accounts can be validated for.
func (uc *ValidateAccountUseCase) Countries() []dto.CountryResponse {
	supported := rule.Supported()
	out := make([]dto.CountryResponse, 0, len(supported))
	for _, c := range supported {
		r, _ := rule.For(c)
		out = append(out, dto.CountryResponse{
			Alpha2:              c.Alpha2(),
			Alpha3:              c.Alpha3(),
			Currency:            r.Currency.Code(),
			BankIDCode:          r.BankIDCode.String(),
			BankIDLength:        r.BankIDLength,
			AccountNumberLength: r.AccountNumberLength,
			RequiresBIC:         r.RequiresBIC,
		})
	}
	return out
}

// validate is shared by every use case that accepts account details.
func (uc *ValidateAccountUseCase) validate(ctx context.Context, req dto.AccountRequest) (model.Account, bool, error) {
	country := "unknown"

	account, err := uc.build(req, &country)
	if err != nil {
		uc.record(ctx, country, outcomeRejected)

		var verr *model.ValidationError
		if errors.As(err, &verr) {
			uc.logger.InfoContext(ctx, "account rejected",
				"country", country,
				"field", verr.Field,
				"error", err,
			)
		}
		return model.Account{}, false, err
	}

	corrected := req.BankIDCode == nil || *req.BankIDCode != account.BankIDCode()
	outcome := outcomeValid
	if corrected {
		outcome = outcomeCorrected
	}
	uc.record(ctx, country, outcome)

	uc.logger.DebugContext(ctx, "account validated",
		"account_id", account.ID(),
		"country", country,
		"outcome", outcome,
	)
	return account, corrected, nil
}

func (uc *ValidateAccountUseCase) build(req dto.AccountRequest, country *string) (model.Account, error) {
	b := model.NewAccountBuilder(model.WithLogger(uc.logger))

	if req.Country != "" {
		c, err := valueobject.ParseCountry(req.Country)
		if err != nil {
			return model.Account{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		*country = c.Alpha3()
		b.WithCountry(c)
	}

	if req.AccountID != "" {
		id, err := uuid.Parse(req.AccountID)
		if err != nil {
			return model.Account{}, fmt.Errorf("%w: account_id: %w", ErrInvalidInput, err)
		}
		b.WithAccountID(id)
	}
	if req.OrganisationID != "" {
		id, err := uuid.Parse(req.OrganisationID)
		if err != nil {
			return model.Account{}, fmt.Errorf("%w: organisation_id: %w", ErrInvalidInput, err)
		}
		b.WithOrganisationID(id)
	}

	// Build replaces a wrong or unknown code with the country's own.
	if req.BankIDCode != nil {
		b.WithBankIDCode(*req.BankIDCode)
	}

	if req.Classification != "" {
		class, err := valueobject.ParseClassification(req.Classification)
		if err != nil {
			return model.Account{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if class == valueobject.ClassificationBusiness {
			b.MarkBusiness()
		} else {
			b.MarkPersonal()
		}
	}

	if req.BankID != nil {
		b.WithBankID(*req.BankID)
	}
	if req.Number != nil {
		b.WithNumber(*req.Number)
	}
	if req.IBAN != nil {
		b.WithIBAN(*req.IBAN)
	}
	if req.BIC != nil {
		b.WithBIC(*req.BIC)
	}
	if req.Title != nil {
		b.WithTitle(*req.Title)
	}

	return b.Build()
}

func (uc *ValidateAccountUseCase) record(ctx context.Context, country, outcome string) {
	uc.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("country", country),
		attribute.String("outcome", outcome),
	))
}

func toAccountResponse(account model.Account, corrected bool) dto.AccountResponse {
	return dto.AccountResponse{
		AccountID:           account.ID(),
		OrganisationID:      account.OrganisationID(),
		Country:             account.Country().Alpha3(),
		Currency:            account.Currency().Code(),
		BankID:              account.BankID(),
		BankIDCode:          account.BankIDCode(),
		BIC:                 account.BIC(),
		Number:              optional(account.Number()),
		IBAN:                optional(account.IBAN()),
		Title:               optional(account.Title()),
		Classification:      account.Classification().String(),
		BankIDCodeCorrected: corrected,
	}
}

func optional(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}
