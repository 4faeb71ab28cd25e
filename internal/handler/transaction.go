package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/logging"
	"github.com/bukubesar/backend/internal/service"
)

const dateLayout = "2006-01-02"

type entryService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, in service.EntryInput) (*domain.EntrySummary, error)
	UpdateEntry(ctx context.Context, userID, id uuid.UUID, in service.EntryInput) (*domain.EntrySummary, error)
	DeleteEntry(ctx context.Context, userID, id uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID) ([]domain.EntrySummary, error)
}

type TransactionHandler struct {
	entries entryService
}

func NewTransactionHandler(entries entryService) *TransactionHandler {
	return &TransactionHandler{entries: entries}
}

type entryRequest struct {
	Date          string `json:"date"`
	Description   string `json:"description"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Amount        string `json:"amount"`
}

func (r entryRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	} else if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	if r.DebitAccount == "" {
		errs = append(errs, FieldError{Field: "debit_account", Message: "required"})
	}
	if r.CreditAccount == "" {
		errs = append(errs, FieldError{Field: "credit_account", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if _, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a decimal number"})
	}
	return errs
}

func (r entryRequest) toInput() service.EntryInput {
	date, _ := time.Parse(dateLayout, r.Date)
	amount, _ := decimal.NewFromString(r.Amount)
	return service.EntryInput{
		Date:          date,
		Description:   r.Description,
		DebitAccount:  r.DebitAccount,
		CreditAccount: r.CreditAccount,
		Amount:        amount,
	}
}

type entryAccountDTO struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type entryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Date          string           `json:"date"`
	Description   string           `json:"description"`
	DebitAccount  *entryAccountDTO `json:"debit_account"`
	CreditAccount *entryAccountDTO `json:"credit_account"`
	Amount        decimal.Decimal  `json:"amount"`
}

func toEntryDTO(e *domain.EntrySummary) entryDTO {
	dto := entryDTO{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Description: e.Description,
		Amount:      e.Amount,
	}
	if e.DebitAccount != nil {
		dto.DebitAccount = &entryAccountDTO{ID: e.DebitAccount.ID, Code: e.DebitAccount.Code, Name: e.DebitAccount.Name}
	}
	if e.CreditAccount != nil {
		dto.CreditAccount = &entryAccountDTO{ID: e.CreditAccount.ID, Code: e.CreditAccount.Code, Name: e.CreditAccount.Name}
	}
	return dto
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), userID, req.toInput())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create journal entry", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toEntryDTO(entry))
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	entry, err := h.entries.UpdateEntry(r.Context(), userID, id, req.toInput())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update journal entry", "error", err, "transaction_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toEntryDTO(entry))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.entries.DeleteEntry(r.Context(), userID, id); err != nil {
		logging.FromContext(r.Context()).Error("failed to delete journal entry", "error", err, "transaction_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	entries, err := h.entries.ListEntries(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list journal entries", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]entryDTO, len(entries))
	for i := range entries {
		dtos[i] = toEntryDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
