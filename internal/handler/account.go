package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/logging"
)

type accountService interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, code, name string, accType domain.AccountType) (*domain.Account, error)
	UpdateAccount(ctx context.Context, userID, id uuid.UUID, code, name string, accType domain.AccountType) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
	ListAccounts(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r accountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Code == "" {
		errs = append(errs, FieldError{Field: "code", Message: "required"})
	}
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if r.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "required"})
	}
	return errs
}

type accountDTO struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	NormalSide string    `json:"normal_side"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:         a.ID,
		Code:       a.Code,
		Name:       a.Name,
		Type:       string(a.Type),
		NormalSide: string(a.Type.NormalSide()),
		CreatedAt:  a.CreatedAt,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), userID, req.Code, req.Name, domain.AccountType(req.Type))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), userID, id, req.Code, req.Name, domain.AccountType(req.Type))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update account", "error", err, "account_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), userID, id); err != nil {
		logging.FromContext(r.Context()).Error("failed to delete account", "error", err, "account_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var typeFilter *domain.AccountType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.AccountType(raw)
		typeFilter = &t
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), userID, typeFilter)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i := range accounts {
		dtos[i] = toAccountDTO(&accounts[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
