package domain

import "github.com/shopspring/decimal"

// AccountBalance is the derived balance of one account over a period.
// It is recomputed on every query; nothing caches it.
type AccountBalance struct {
	Account Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	// Balance is Debit minus Credit. Positive means the balance sits on
	// the debit side.
	Balance decimal.Decimal
}

// TotalsSummary is the per-user aggregate every report view is composed
// from. Balances preserves the account order the repository returned
// (code ascending); the totals are routed by normal-balance side.
type TotalsSummary struct {
	Balances []AccountBalance

	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal

	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	TotalRevenue     decimal.Decimal
	TotalExpense     decimal.Decimal
}

// NetIncome is revenue minus expense for the summarized period.
func (s *TotalsSummary) NetIncome() decimal.Decimal {
	return s.TotalRevenue.Sub(s.TotalExpense)
}

// IsBalanced reports whether total debits equal total credits. An
// unbalanced ledger is a data-quality signal for the caller, never an
// error raised here; entry creation upstream owns that invariant.
func (s *TotalsSummary) IsBalanced() bool {
	return s.TotalDebit.Equal(s.TotalCredit)
}
