package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/application/usecase"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/pkg/auth"
)

const maxBodyBytes = 1 << 20

// AccountHandler exposes the account use cases over JSON.
type AccountHandler struct {
	validateAccount  *usecase.ValidateAccountUseCase
	registerAccount  *usecase.RegisterAccountUseCase
	initiateTransfer *usecase.InitiateTransferUseCase
	logger           *slog.Logger
}

// NewAccountHandler creates a new REST account handler.
func NewAccountHandler(
	validateAccount *usecase.ValidateAccountUseCase,
	registerAccount *usecase.RegisterAccountUseCase,
	initiateTransfer *usecase.InitiateTransferUseCase,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		validateAccount:  validateAccount,
		registerAccount:  registerAccount,
		initiateTransfer: initiateTransfer,
		logger:           logger,
	}
}

// Register mounts the account routes. Callers are expected to have authenticated the
// request already.
func (h *AccountHandler) Register(r chi.Router) {
	r.Get("/countries", h.handleCountries)
	r.Post("/accounts/validate", h.handleValidate)
	r.With(auth.RequireRole(auth.RoleAccountWriter, auth.RoleAdmin)).Post("/accounts", h.handleRegister)
	r.Post("/transfers", h.handleInitiateTransfer)
}

func (h *AccountHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.validateAccount.Execute(r.Context(), req)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) handleCountries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"countries": h.validateAccount.Countries()})
}

func (h *AccountHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAccountRequest
	if !h.decode(w, r, &req) {
		return
	}

	org, err := auth.ResolveOrganisation(r.Context(), req.Account.OrganisationID)
	if err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Message: err.Error()})
		return
	}
	req.Account.OrganisationID = org

	resp, err := h.registerAccount.Execute(r.Context(), req)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// transferRequest mirrors dto.InitiateTransferRequest with a calendar execution date.
type transferRequest struct {
	MessageID       string             `json:"message_id,omitempty"`
	InitiatingParty string             `json:"initiating_party"`
	ExecutionDate   string             `json:"execution_date,omitempty"` // YYYY-MM-DD
	Debtor          dto.PartyRequest   `json:"debtor"`
	Transfers       []dto.TransferLine `json:"transfers"`
}

// handleInitiateTransfer answers with the pain.001 document itself; the group header
// totals travel in response headers.
func (h *AccountHandler) handleInitiateTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := dto.InitiateTransferRequest{
		MessageID:       req.MessageID,
		InitiatingParty: req.InitiatingParty,
		Debtor:          req.Debtor,
		Transfers:       req.Transfers,
	}
	if req.ExecutionDate != "" {
		d, err := time.Parse(time.DateOnly, req.ExecutionDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("invalid execution_date: %v", err)})
			return
		}
		in.ExecutionDate = d
	}

	resp, err := h.initiateTransfer.Execute(r.Context(), in)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("X-Message-Id", resp.MessageID)
	w.Header().Set("X-Number-Of-Transactions", strconv.Itoa(resp.NumberOfTransactions))
	w.Header().Set("X-Control-Sum", resp.ControlSum)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Document)
}

func (h *AccountHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}

type errorResponse struct {
	Message string `json:"error_message"`
}

// writeError maps application errors onto HTTP status codes.
func (h *AccountHandler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, usecase.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: err.Error()})
	case errors.Is(err, usecase.ErrSubmissionRejected):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, usecase.ErrSubmissionFailed):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Message: err.Error()})
	default:
		h.logger.ErrorContext(ctx, "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
