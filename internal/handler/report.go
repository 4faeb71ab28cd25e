package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/ledger"
	"github.com/bukubesar/backend/internal/logging"
)

type totalsEngine interface {
	ComputeTotals(ctx context.Context, userID uuid.UUID, f ledger.Filter) (*domain.TotalsSummary, error)
}

type journalLister interface {
	ListJournal(ctx context.Context, userID uuid.UUID) ([]domain.JournalLine, error)
	ListLedger(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID, from, to *time.Time) ([]domain.JournalLine, error)
}

type ReportHandler struct {
	engine   totalsEngine
	postings journalLister
}

func NewReportHandler(engine totalsEngine, postings journalLister) *ReportHandler {
	return &ReportHandler{engine: engine, postings: postings}
}

// reportFilter parses the shared from/to/type query parameters. Dates are
// inclusive on both ends.
func reportFilter(r *http.Request) (ledger.Filter, []FieldError) {
	var (
		f    ledger.Filter
		errs []FieldError
	)

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "from", Message: "must be YYYY-MM-DD"})
		} else {
			f.DateFrom = &t
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "to", Message: "must be YYYY-MM-DD"})
		} else {
			f.DateTo = &t
		}
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.AccountType(raw)
		f.Type = &t
	}

	return f, errs
}

type journalLineDTO struct {
	PostingID   uuid.UUID       `json:"posting_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

func toJournalLineDTOs(lines []domain.JournalLine) []journalLineDTO {
	dtos := make([]journalLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = journalLineDTO{
			PostingID:   l.PostingID,
			Date:        l.Date.Format(dateLayout),
			Description: l.Description,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return dtos
}

func (h *ReportHandler) Journal(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	lines, err := h.postings.ListJournal(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build journal report", "error", err)
		RespondDomainError(w, err)
		return
	}

	var totalDebit, totalCredit decimal.Decimal
	seen := make(map[uuid.UUID]struct{})
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
		seen[l.TransactionID] = struct{}{}
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"lines":             toJournalLineDTOs(lines),
		"total_debit":       totalDebit,
		"total_credit":      totalCredit,
		"transaction_count": len(seen),
	})
}

func (h *ReportHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	f, fields := reportFilter(r)
	var accountID *uuid.UUID
	if raw := r.URL.Query().Get("account"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "account", Message: "must be an account id"})
		} else {
			accountID = &id
		}
	}
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	lines, err := h.postings.ListLedger(r.Context(), userID, accountID, f.DateFrom, f.DateTo)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build ledger report", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, groupLedgerLines(lines))
}

type ledgerAccountDTO struct {
	AccountCode string           `json:"account_code"`
	AccountName string           `json:"account_name"`
	Lines       []journalLineDTO `json:"lines"`
	TotalDebit  decimal.Decimal  `json:"total_debit"`
	TotalCredit decimal.Decimal  `json:"total_credit"`
}

// groupLedgerLines folds the code-ordered lines into per-account sections
// with running totals plus grand totals across the ledger.
func groupLedgerLines(lines []domain.JournalLine) map[string]any {
	accounts := make([]*ledgerAccountDTO, 0)
	var current *ledgerAccountDTO
	var grandDebit, grandCredit decimal.Decimal

	for _, l := range lines {
		if current == nil || current.AccountCode != l.AccountCode {
			current = &ledgerAccountDTO{
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				Lines:       make([]journalLineDTO, 0, 4),
			}
			accounts = append(accounts, current)
		}

		current.Lines = append(current.Lines, journalLineDTO{
			PostingID:   l.PostingID,
			Date:        l.Date.Format(dateLayout),
			Description: l.Description,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
		current.TotalDebit = current.TotalDebit.Add(l.Debit)
		current.TotalCredit = current.TotalCredit.Add(l.Credit)
		grandDebit = grandDebit.Add(l.Debit)
		grandCredit = grandCredit.Add(l.Credit)
	}

	return map[string]any{
		"accounts":     accounts,
		"total_debit":  grandDebit,
		"total_credit": grandCredit,
	}
}

func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	f, fields := reportFilter(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	summary, err := h.engine.ComputeTotals(r.Context(), userID, f)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build trial balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	tb := ledger.BuildTrialBalance(summary)

	rows := make([]map[string]any, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = map[string]any{
			"account_code": row.AccountCode,
			"account_name": row.AccountName,
			"debit":        row.Debit,
			"credit":       row.Credit,
		}
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"rows":         rows,
		"total_debit":  tb.TotalDebit,
		"total_credit": tb.TotalCredit,
		"is_balanced":  tb.IsBalanced,
	})
}

type statementSectionDTO struct {
	Lines []map[string]any `json:"lines"`
	Total decimal.Decimal  `json:"total"`
}

func toSectionDTO(lines []ledger.StatementLine, total decimal.Decimal) statementSectionDTO {
	dto := statementSectionDTO{Lines: make([]map[string]any, len(lines)), Total: total}
	for i, l := range lines {
		dto.Lines[i] = map[string]any{
			"account_code": l.AccountCode,
			"account_name": l.AccountName,
			"amount":       l.Amount,
		}
	}
	return dto
}

func (h *ReportHandler) FinancialStatements(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	f, fields := reportFilter(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	summary, err := h.engine.ComputeTotals(r.Context(), userID, f)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build financial statements", "error", err)
		RespondDomainError(w, err)
		return
	}

	st := ledger.BuildFinancialStatements(summary)

	payload := map[string]any{
		"income_statement": map[string]any{
			"revenue":    toSectionDTO(st.Revenue, st.TotalRevenue),
			"expense":    toSectionDTO(st.Expense, st.TotalExpense),
			"net_income": st.NetIncome,
		},
		"balance_sheet": map[string]any{
			"assets":         toSectionDTO(st.Assets, st.TotalAssets),
			"liabilities":    toSectionDTO(st.Liabilities, st.TotalLiabilities),
			"equity":         toSectionDTO(st.Equity, st.EquityDisplay),
			"equation_right": st.EquationRight,
			"is_balanced":    st.IsBalanced,
		},
		"ratios": map[string]any{
			"profit_margin": st.ProfitMargin,
			"current_ratio": st.CurrentRatio,
		},
	}

	RespondSuccess(w, http.StatusOK, payload)
}

func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	userID, appErr := currentUser(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	f, fields := reportFilter(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	summary, err := h.engine.ComputeTotals(r.Context(), userID, f)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build cash flow report", "error", err)
		RespondDomainError(w, err)
		return
	}

	cf := ledger.BuildCashFlow(summary)

	RespondSuccess(w, http.StatusOK, map[string]any{
		"operating": map[string]any{"in": cf.OperatingIn, "out": cf.OperatingOut, "net": cf.OperatingNet},
		"investing": map[string]any{"in": cf.InvestingIn, "out": cf.InvestingOut, "net": cf.InvestingNet},
		"financing": map[string]any{"in": cf.FinancingIn, "out": cf.FinancingOut, "net": cf.FinancingNet},
		"net_change": cf.NetChange,
		"cash_start": cf.CashStart,
		"cash_end":   cf.CashEnd,
	})
}
