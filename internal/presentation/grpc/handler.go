package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/application/usecase"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/pkg/auth"
)

// AccountHandler implements the gRPC account service handler.
type AccountHandler struct {
	UnimplementedAccountServiceServer

	validateAccount  *usecase.ValidateAccountUseCase
	registerAccount  *usecase.RegisterAccountUseCase
	initiateTransfer *usecase.InitiateTransferUseCase
}

// NewAccountHandler creates a new gRPC account handler.
func NewAccountHandler(
	validateAccount *usecase.ValidateAccountUseCase,
	registerAccount *usecase.RegisterAccountUseCase,
	initiateTransfer *usecase.InitiateTransferUseCase,
) *AccountHandler {
	return &AccountHandler{
		validateAccount:  validateAccount,
		registerAccount:  registerAccount,
		initiateTransfer: initiateTransfer,
	}
}

// AccountMessage carries account attributes. Nil pointer fields were not supplied.
type AccountMessage struct {
	AccountID      string  `json:"account_id,omitempty"`
	OrganisationID string  `json:"organisation_id,omitempty"`
	Country        string  `json:"country"`
	BankID         *string `json:"bank_id,omitempty"`
	BankIDCode     *string `json:"bank_id_code,omitempty"`
	AccountNumber  *string `json:"account_number,omitempty"`
	IBAN           *string `json:"iban,omitempty"`
	BIC            *string `json:"bic,omitempty"`
	Title          *string `json:"title,omitempty"`
	Classification string  `json:"account_classification,omitempty"`
}

// AccountResult is a validated account; absent optional fields are empty.
type AccountResult struct {
	AccountID      string `json:"account_id"`
	OrganisationID string `json:"organisation_id"`
	Country        string `json:"country"`
	Currency       string `json:"currency"`
	BankID         string `json:"bank_id"`
	BankIDCode     string `json:"bank_id_code"`
	BIC            string `json:"bic"`
	AccountNumber  string `json:"account_number,omitempty"`
	IBAN           string `json:"iban,omitempty"`
	Title          string `json:"title,omitempty"`
	Classification string `json:"account_classification"`
}

// ValidateAccountRequest represents the gRPC request for validating an account.
type ValidateAccountRequest struct {
	Account *AccountMessage `json:"account"`
}

// ValidateAccountResponse represents the gRPC response for validating an account.
type ValidateAccountResponse struct {
	Account             *AccountResult `json:"account"`
	BankIDCodeCorrected bool           `json:"bank_id_code_corrected"`
}

// CopMessage carries Confirmation of Payee details.
type CopMessage struct {
	FirstName                 string   `json:"first_name,omitempty"`
	Names                     []string `json:"names"`
	BankAccountClassification string   `json:"account_classification,omitempty"`
	JointAccount              bool     `json:"joint_account"`
	MatchingOptOut            bool     `json:"account_matching_opt_out"`
	SecondaryIdentification   string   `json:"secondary_identification,omitempty"`
}

// RegisterAccountRequest represents the gRPC request for registering an account.
type RegisterAccountRequest struct {
	Account *AccountMessage `json:"account"`
	Cop     *CopMessage     `json:"cop,omitempty"`
}

// RegisterAccountResponse represents the gRPC response for registering an account.
type RegisterAccountResponse struct {
	Account             *AccountResult `json:"account"`
	BankIDCodeCorrected bool           `json:"bank_id_code_corrected"`
	Version             int32          `json:"version"`
	CreatedOn           string         `json:"created_on,omitempty"`
	EventID             string         `json:"event_id,omitempty"`
}

// PartyMessage names an account holder.
type PartyMessage struct {
	Name    string          `json:"name"`
	Account *AccountMessage `json:"account"`
	Holder  *HolderMessage  `json:"holder,omitempty"`
}

// HolderMessage identifies the person holding a SEPA account.
type HolderMessage struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	BirthDate      string `json:"birth_date,omitempty"`
	BirthCountry   string `json:"birth_country,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	AddressLine    string `json:"address_line,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
}

// TransferMessage is one credit transfer.
type TransferMessage struct {
	EndToEndID string        `json:"end_to_end_id,omitempty"`
	Amount     string        `json:"amount"`
	Currency   string        `json:"currency,omitempty"`
	Creditor   *PartyMessage `json:"creditor"`
	Remittance string        `json:"remittance_information,omitempty"`
}

// InitiateTransferRequest represents the gRPC request for a pain.001 initiation.
type InitiateTransferRequest struct {
	MessageID       string             `json:"message_id,omitempty"`
	InitiatingParty string             `json:"initiating_party"`
	ExecutionDate   string             `json:"execution_date,omitempty"` // YYYY-MM-DD
	Debtor          *PartyMessage      `json:"debtor"`
	Transfers       []*TransferMessage `json:"transfers"`
}

// InitiateTransferResponse carries the rendered pain.001 document.
type InitiateTransferResponse struct {
	MessageID            string `json:"message_id"`
	NumberOfTransactions int32  `json:"number_of_transactions"`
	ControlSum           string `json:"control_sum"`
	Document             string `json:"document"`
}

// ValidateAccount handles the gRPC ValidateAccount request.
func (h *AccountHandler) ValidateAccount(ctx context.Context, req *ValidateAccountRequest) (*ValidateAccountResponse, error) {
	if req == nil || req.Account == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}

	resp, err := h.validateAccount.Execute(ctx, toAccountRequest(req.Account))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ValidateAccountResponse{
		Account:             toAccountResult(resp),
		BankIDCodeCorrected: resp.BankIDCodeCorrected,
	}, nil
}

// RegisterAccount handles the gRPC RegisterAccount request. A missing organisation id
// defaults to the caller's organisation; callers other than admins may not register
// accounts for another organisation.
func (h *AccountHandler) RegisterAccount(ctx context.Context, req *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	if req == nil || req.Account == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}

	account := toAccountRequest(req.Account)
	org, err := auth.ResolveOrganisation(ctx, account.OrganisationID)
	if err != nil {
		return nil, status.Error(codes.PermissionDenied, err.Error())
	}
	account.OrganisationID = org

	in := dto.RegisterAccountRequest{Account: account}
	if req.Cop != nil {
		in.Cop = &dto.CopRequest{
			FirstName:                 req.Cop.FirstName,
			BankAccountNames:          req.Cop.Names,
			BankAccountClassification: req.Cop.BankAccountClassification,
			JointAccount:              req.Cop.JointAccount,
			MatchingOptOut:            req.Cop.MatchingOptOut,
			SecondaryIdentification:   req.Cop.SecondaryIdentification,
		}
	}

	resp, err := h.registerAccount.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}

	out := &RegisterAccountResponse{
		Account:             toAccountResult(resp.Account),
		BankIDCodeCorrected: resp.Account.BankIDCodeCorrected,
		Version:             int32(resp.Version), //nolint:gosec // API versions are small
	}
	if !resp.CreatedOn.IsZero() {
		out.CreatedOn = resp.CreatedOn.UTC().Format(time.RFC3339)
	}
	if resp.EventID != uuid.Nil {
		out.EventID = resp.EventID.String()
	}
	return out, nil
}

// InitiateTransfer handles the gRPC InitiateTransfer request.
func (h *AccountHandler) InitiateTransfer(ctx context.Context, req *InitiateTransferRequest) (*InitiateTransferResponse, error) {
	if req == nil || req.Debtor == nil || req.Debtor.Account == nil {
		return nil, status.Error(codes.InvalidArgument, "debtor account is required")
	}

	in := dto.InitiateTransferRequest{
		MessageID:       req.MessageID,
		InitiatingParty: req.InitiatingParty,
		Debtor:          toPartyRequest(req.Debtor),
	}
	if req.ExecutionDate != "" {
		d, err := time.Parse(time.DateOnly, req.ExecutionDate)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid execution_date: %v", err))
		}
		in.ExecutionDate = d
	}
	for i, t := range req.Transfers {
		if t == nil || t.Creditor == nil || t.Creditor.Account == nil {
			return nil, status.Errorf(codes.InvalidArgument, "transfer %d: creditor account is required", i)
		}
		in.Transfers = append(in.Transfers, dto.TransferLine{
			EndToEndID: t.EndToEndID,
			Amount:     t.Amount,
			Currency:   t.Currency,
			Creditor:   toPartyRequest(t.Creditor),
			Remittance: t.Remittance,
		})
	}

	resp, err := h.initiateTransfer.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &InitiateTransferResponse{
		MessageID:            resp.MessageID,
		NumberOfTransactions: int32(resp.NumberOfTransactions), //nolint:gosec // bounded by request size
		ControlSum:           resp.ControlSum,
		Document:             string(resp.Document),
	}, nil
}

// toStatus maps application errors to gRPC status codes.
func toStatus(err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrSubmissionRejected):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, usecase.ErrSubmissionFailed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toAccountRequest(m *AccountMessage) dto.AccountRequest {
	return dto.AccountRequest{
		AccountID:      m.AccountID,
		OrganisationID: m.OrganisationID,
		Country:        m.Country,
		BankID:         m.BankID,
		BankIDCode:     m.BankIDCode,
		Number:         m.AccountNumber,
		IBAN:           m.IBAN,
		BIC:            m.BIC,
		Title:          m.Title,
		Classification: m.Classification,
	}
}

func toPartyRequest(m *PartyMessage) dto.PartyRequest {
	p := dto.PartyRequest{Name: m.Name, Account: toAccountRequest(m.Account)}
	if h := m.Holder; h != nil {
		p.Holder = &dto.HolderRequest{
			Name:           h.Name,
			Surname:        h.Surname,
			BirthDate:      h.BirthDate,
			BirthCountry:   h.BirthCountry,
			DocumentNumber: h.DocumentNumber,
			AddressLine:    h.AddressLine,
			City:           h.City,
			Country:        h.Country,
		}
	}
	return p
}

func toAccountResult(a dto.AccountResponse) *AccountResult {
	return &AccountResult{
		AccountID:      a.AccountID.String(),
		OrganisationID: a.OrganisationID.String(),
		Country:        a.Country,
		Currency:       a.Currency,
		BankID:         a.BankID,
		BankIDCode:     a.BankIDCode,
		BIC:            a.BIC,
		AccountNumber:  deref(a.Number),
		IBAN:           deref(a.IBAN),
		Title:          deref(a.Title),
		Classification: a.Classification,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
