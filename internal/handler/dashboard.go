package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/logging"
	"github.com/bukubesar/backend/internal/service"
)

type overviewService interface {
	GetOverview(ctx context.Context, userID uuid.UUID) (*service.Overview, error)
}

type DashboardHandler struct {
	overview overviewService
}

func NewDashboardHandler(overview overviewService) *DashboardHandler {
	return &DashboardHandler{overview: overview}
}

type overviewDTO struct {
	AccountCount      int             `json:"account_count"`
	TransactionCount  int             `json:"transaction_count"`
	TransactionsToday int             `json:"transactions_today"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	Difference        decimal.Decimal `json:"difference"`
	IsBalanced        bool            `json:"is_balanced"`
	Recent            []entryDTO      `json:"recent"`
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	ov, err := h.overview.GetOverview(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build dashboard overview", "error", err)
		RespondDomainError(w, err)
		return
	}

	recent := make([]entryDTO, len(ov.Recent))
	for i := range ov.Recent {
		recent[i] = toEntryDTO(&ov.Recent[i])
	}

	RespondSuccess(w, http.StatusOK, overviewDTO{
		AccountCount:      ov.AccountCount,
		TransactionCount:  ov.TransactionCount,
		TransactionsToday: ov.TransactionsToday,
		TotalDebit:        ov.TotalDebit,
		TotalCredit:       ov.TotalCredit,
		Difference:        ov.Difference,
		IsBalanced:        ov.IsBalanced,
		Recent:            recent,
	})
}
