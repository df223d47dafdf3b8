package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/domain/event"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/port"
	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

// RegisterAccountUseCase validates an account and submits it to the accounts API.
type RegisterAccountUseCase struct {
	validator *ValidateAccountUseCase
	submitter port.AccountSubmitter
	publisher port.EventPublisher
	topic     string
	logger    *slog.Logger
}

// NewRegisterAccountUseCase creates a new RegisterAccountUseCase publishing to topic.
func NewRegisterAccountUseCase(
	validator *ValidateAccountUseCase,
	submitter port.AccountSubmitter,
	publisher port.EventPublisher,
	topic string,
	logger *slog.Logger,
) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		validator: validator,
		submitter: submitter,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// Execute validates the account, attaches optional CoP details, submits it and
// publishes an account.registered event.
func (uc *RegisterAccountUseCase) Execute(ctx context.Context, req dto.RegisterAccountRequest) (dto.RegisterAccountResponse, error) {
	account, corrected, err := uc.validator.validate(ctx, req.Account)
	if err != nil {
		return dto.RegisterAccountResponse{}, err
	}

	var cop *model.CopAccount
	if req.Cop != nil {
		c, err := newCopAccount(account, *req.Cop)
		if err != nil {
			return dto.RegisterAccountResponse{}, err
		}
		cop = &c
	}

	receipt, err := uc.submitter.Submit(ctx, account, cop)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to submit account",
			"error", err,
			"account_id", account.ID(),
		)
		return dto.RegisterAccountResponse{}, submissionError(err)
	}

	var eventID uuid.UUID
	evt, err := event.NewAccountRegistered(account, cop != nil, receipt.Version)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to build account event", "error", err, "account_id", account.ID())
	} else {
		eventID = evt.EventID()
		// A failed publish does not undo a stored account.
		if err := uc.publisher.Publish(ctx, uc.topic, evt); err != nil {
			uc.logger.ErrorContext(ctx, "failed to publish domain events",
				"error", err,
				"account_id", account.ID(),
				"event_type", evt.EventType(),
			)
		}
	}

	uc.logger.InfoContext(ctx, "account registered",
		"account_id", account.ID(),
		"organisation_id", account.OrganisationID(),
		"country", account.Country().Alpha3(),
		"version", receipt.Version,
	)

	return dto.RegisterAccountResponse{
		Account:   toAccountResponse(account, corrected),
		Version:   receipt.Version,
		CreatedOn: receipt.CreatedOn,
		EventID:   eventID,
	}, nil
}

// submissionError classifies a Submit failure. Errors that report Retryable() false are
// rejections; everything else, transport errors included, may succeed later.
func submissionError(err error) error {
	var retryable interface{ Retryable() bool }
	if errors.As(err, &retryable) && !retryable.Retryable() {
		return fmt.Errorf("%w: %w", ErrSubmissionRejected, err)
	}
	return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
}

func newCopAccount(account model.Account, req dto.CopRequest) (model.CopAccount, error) {
	var class valueobject.Classification
	if req.BankAccountClassification != "" {
		c, err := valueobject.ParseClassification(req.BankAccountClassification)
		if err != nil {
			return model.CopAccount{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		class = c
	}

	cop, err := model.NewCopAccount(account, model.CopDetails{
		FirstName:                 req.FirstName,
		BankAccountNames:          req.BankAccountNames,
		BankAccountClassification: class,
		JointAccount:              req.JointAccount,
		MatchingOptOut:            req.MatchingOptOut,
		SecondaryIdentification:   req.SecondaryIdentification,
	})
	if err != nil {
		return model.CopAccount{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return cop, nil
}
