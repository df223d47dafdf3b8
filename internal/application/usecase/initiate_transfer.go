package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/valueobject"
	"github.com/bibbank/accountmodel/pkg/iso20022"
	"github.com/bibbank/accountmodel/pkg/money"
)

// InitiateTransferUseCase renders a pain.001 credit transfer initiation between validated accounts.
type InitiateTransferUseCase struct {
	validator *ValidateAccountUseCase
	logger    *slog.Logger
	now       func() time.Time
}

// NewInitiateTransferUseCase creates a new InitiateTransferUseCase.
func NewInitiateTransferUseCase(validator *ValidateAccountUseCase, logger *slog.Logger) *InitiateTransferUseCase {
	return &InitiateTransferUseCase{validator: validator, logger: logger, now: time.Now}
}

// Execute validates the debtor and every creditor account before rendering the document.
func (uc *InitiateTransferUseCase) Execute(ctx context.Context, req dto.InitiateTransferRequest) (dto.InitiateTransferResponse, error) {
	if len(req.Transfers) == 0 {
		return dto.InitiateTransferResponse{}, fmt.Errorf("%w: at least one transfer is required", ErrInvalidInput)
	}

	debtor, debtorParty, err := uc.party(ctx, req.Debtor)
	if err != nil {
		return dto.InitiateTransferResponse{}, fmt.Errorf("debtor: %w", err)
	}

	msgID := req.MessageID
	if msgID == "" {
		msgID = uuid.NewString()
	}
	execDate := req.ExecutionDate
	if execDate.IsZero() {
		execDate = uc.now()
	}

	total := decimal.Zero
	txs := make([]iso20022.CreditTransfer, 0, len(req.Transfers))
	for i, line := range req.Transfers {
		_, creditorParty, err := uc.party(ctx, line.Creditor)
		if err != nil {
			return dto.InitiateTransferResponse{}, fmt.Errorf("transfer %d creditor: %w", i, err)
		}

		currency := line.Currency
		if currency == "" {
			currency = debtor.Currency().Code()
		}
		amount, err := money.NewFromString(line.Amount, currency)
		if err != nil {
			return dto.InitiateTransferResponse{}, fmt.Errorf("%w: transfer %d: %w", ErrInvalidInput, i, err)
		}
		if !amount.IsPositive() {
			return dto.InitiateTransferResponse{}, fmt.Errorf("%w: transfer %d: amount must be positive", ErrInvalidInput, i)
		}
		if !amount.FitsMinorUnits() {
			return dto.InitiateTransferResponse{}, fmt.Errorf("%w: transfer %d: amount %s has more than %d decimal places",
				ErrInvalidInput, i, line.Amount, amount.Currency().MinorUnits())
		}
		total = total.Add(amount.Amount())

		endToEnd := line.EndToEndID
		if endToEnd == "" {
			endToEnd = fmt.Sprintf("%s-%d", msgID, i+1)
		}
		txs = append(txs, iso20022.CreditTransfer{
			EndToEndID:     endToEnd,
			Amount:         amount,
			Creditor:       creditorParty,
			RemittanceInfo: line.Remittance,
		})
	}

	msg := iso20022.CreditTransferInitiation{
		Header: iso20022.MessageHeader{
			MessageID:       msgID,
			CreationDate:    uc.now(),
			InitiatingParty: req.InitiatingParty,
		},
		Instructions: []iso20022.PaymentInstruction{{
			ID:            msgID,
			ExecutionDate: execDate,
			Debtor:        debtorParty,
			Transactions:  txs,
		}},
	}

	doc, err := msg.ToXML()
	if err != nil {
		return dto.InitiateTransferResponse{}, fmt.Errorf("render %s: %w", msg.Type(), err)
	}

	uc.logger.InfoContext(ctx, "credit transfer initiated",
		"message_id", msgID,
		"debtor_account_id", debtor.ID(),
		"transactions", len(txs),
	)

	return dto.InitiateTransferResponse{
		MessageID:            msgID,
		NumberOfTransactions: len(txs),
		ControlSum:           total.StringFixed(2),
		Document:             doc,
	}, nil
}

// party validates the account of p. A party with holder details is a SEPA account
// holder: its account must carry an IBAN and the holder is rendered with address and
// identity document.
func (uc *InitiateTransferUseCase) party(ctx context.Context, p dto.PartyRequest) (model.Account, iso20022.Party, error) {
	account, _, err := uc.validator.validate(ctx, p.Account)
	if err != nil {
		return model.Account{}, iso20022.Party{}, err
	}
	party := paymentParty(p.Name, account)
	if p.Holder == nil {
		return account, party, nil
	}

	holder, err := privateIdentification(*p.Holder)
	if err != nil {
		return model.Account{}, iso20022.Party{}, err
	}
	sepa, err := model.NewSepaAccount(account, holder)
	if err != nil {
		return model.Account{}, iso20022.Party{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id := sepa.Identification()
	if party.Name == "" {
		party.Name = id.Name + " " + id.Surname
	}
	party.Address = &iso20022.PostalAddress{
		AddressLine: id.AddressLine,
		City:        id.City,
		Country:     id.Country.Alpha2(),
	}
	party.PrivateID = id.DocumentNumber
	return account, party, nil
}

func privateIdentification(h dto.HolderRequest) (model.PrivateIdentification, error) {
	id := model.PrivateIdentification{
		Name:           h.Name,
		Surname:        h.Surname,
		BirthDate:      h.BirthDate,
		DocumentNumber: h.DocumentNumber,
		AddressLine:    h.AddressLine,
		City:           h.City,
	}
	if h.BirthCountry != "" {
		c, err := valueobject.ParseCountry(h.BirthCountry)
		if err != nil {
			return model.PrivateIdentification{}, fmt.Errorf("%w: holder birth_country: %w", ErrInvalidInput, err)
		}
		id.BirthCountry = c
	}
	if h.Country != "" {
		c, err := valueobject.ParseCountry(h.Country)
		if err != nil {
			return model.PrivateIdentification{}, fmt.Errorf("%w: holder country: %w", ErrInvalidInput, err)
		}
		id.Country = c
	}
	return id, nil
}

// paymentParty identifies account by IBAN when it has one, otherwise by bank id and
// number under the bank id code scheme.
func paymentParty(name string, account model.Account) iso20022.Party {
	id := iso20022.AccountIdentification{Currency: account.Currency().Code()}
	if iban, ok := account.IBAN(); ok && iban != "" {
		id.IBAN = iban
	} else {
		number, _ := account.Number()
		id.Other = account.BankID() + number
		id.Scheme = account.BankIDCode()
	}
	return iso20022.Party{
		Name:     name,
		Account:  id,
		AgentBIC: account.BIC(),
	}
}
