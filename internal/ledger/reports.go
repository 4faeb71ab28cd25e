package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
)

// EarningsLineName labels the current-period earnings pseudo-row folded
// into the equity section of the balance sheet.
const EarningsLineName = "Laba Tahun Berjalan"

type TrialBalanceRow struct {
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

type TrialBalance struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	// IsBalanced is informational; the composer displays whatever the
	// totals are and never rejects an unbalanced ledger.
	IsBalanced bool
}

// BuildTrialBalance splits each account balance into non-negative display
// columns: the net goes to the debit column when debits are at least
// credits, otherwise to the credit column. Grand totals are column sums.
func BuildTrialBalance(s *domain.TotalsSummary) *TrialBalance {
	tb := &TrialBalance{Rows: make([]TrialBalanceRow, 0, len(s.Balances))}

	for _, b := range s.Balances {
		row := TrialBalanceRow{
			AccountCode: b.Account.Code,
			AccountName: b.Account.Name,
		}
		if b.Debit.GreaterThanOrEqual(b.Credit) {
			row.Debit = b.Debit.Sub(b.Credit)
			row.Credit = decimal.Zero
		} else {
			row.Debit = decimal.Zero
			row.Credit = b.Credit.Sub(b.Debit)
		}

		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}

	tb.IsBalanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb
}

type StatementLine struct {
	AccountCode string // empty for the earnings pseudo-row
	AccountName string
	Amount      decimal.Decimal
}

type Statements struct {
	Assets      []StatementLine
	Liabilities []StatementLine
	Equity      []StatementLine
	Revenue     []StatementLine
	Expense     []StatementLine

	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	TotalRevenue     decimal.Decimal
	TotalExpense     decimal.Decimal

	NetIncome     decimal.Decimal
	EquityDisplay decimal.Decimal // opening equity plus net income
	EquationRight decimal.Decimal // liabilities plus displayed equity
	IsBalanced    bool            // EquationRight equals TotalAssets

	ProfitMargin decimal.Decimal  // zero when revenue is zero
	CurrentRatio *decimal.Decimal // nil when liabilities are zero
}

// BuildFinancialStatements groups the account balances into statement
// sections and folds the period's net income into displayed equity so the
// balance sheet can close. Section line amounts show the balance on the
// account's currently active side and zero otherwise, matching the
// engine's routing convention.
func BuildFinancialStatements(s *domain.TotalsSummary) *Statements {
	st := &Statements{
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		TotalEquity:      s.TotalEquity,
		TotalRevenue:     s.TotalRevenue,
		TotalExpense:     s.TotalExpense,
	}

	for _, b := range s.Balances {
		line := StatementLine{
			AccountCode: b.Account.Code,
			AccountName: b.Account.Name,
		}

		switch b.Account.Type.Bucket() {
		case domain.BucketAsset:
			line.Amount = debitSideAmount(b.Balance)
			st.Assets = append(st.Assets, line)
		case domain.BucketLiability:
			line.Amount = creditSideAmount(b.Balance)
			st.Liabilities = append(st.Liabilities, line)
		case domain.BucketEquity:
			line.Amount = creditSideAmount(b.Balance)
			st.Equity = append(st.Equity, line)
		case domain.BucketRevenue:
			line.Amount = creditSideAmount(b.Balance)
			st.Revenue = append(st.Revenue, line)
		case domain.BucketExpense:
			line.Amount = debitSideAmount(b.Balance)
			st.Expense = append(st.Expense, line)
		}
	}

	st.NetIncome = s.NetIncome()
	if !st.NetIncome.IsZero() {
		st.Equity = append(st.Equity, StatementLine{
			AccountName: EarningsLineName,
			Amount:      st.NetIncome.Abs(),
		})
	}

	st.EquityDisplay = st.TotalEquity.Add(st.NetIncome)
	st.EquationRight = st.TotalLiabilities.Add(st.EquityDisplay)
	st.IsBalanced = st.EquationRight.Equal(st.TotalAssets)

	if s.TotalRevenue.IsZero() {
		st.ProfitMargin = decimal.Zero
	} else {
		st.ProfitMargin = st.NetIncome.Div(s.TotalRevenue).Mul(decimal.NewFromInt(100))
	}

	if !s.TotalLiabilities.IsZero() {
		ratio := s.TotalAssets.Div(s.TotalLiabilities)
		st.CurrentRatio = &ratio
	}

	return st
}

func debitSideAmount(balance decimal.Decimal) decimal.Decimal {
	if balance.IsPositive() {
		return balance
	}
	return decimal.Zero
}

func creditSideAmount(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return balance.Abs()
	}
	return decimal.Zero
}

type CashFlow struct {
	OperatingIn  decimal.Decimal
	OperatingOut decimal.Decimal
	OperatingNet decimal.Decimal
	InvestingIn  decimal.Decimal
	InvestingOut decimal.Decimal
	InvestingNet decimal.Decimal
	FinancingIn  decimal.Decimal
	FinancingOut decimal.Decimal
	FinancingNet decimal.Decimal
	NetChange    decimal.Decimal
	CashStart    decimal.Decimal
	CashEnd      decimal.Decimal
}

// BuildCashFlow reconstructs a simplified cash flow: operating activity
// is accrual revenue minus expense, investing is not modeled, financing
// treats equity as an inflow, and ending cash is total assets. It is an
// approximation, not a cash-basis statement; the data model carries no
// cash/non-cash classification to do better.
func BuildCashFlow(s *domain.TotalsSummary) *CashFlow {
	cf := &CashFlow{
		OperatingIn:  s.TotalRevenue,
		OperatingOut: s.TotalExpense,
		FinancingIn:  s.TotalEquity,
		CashEnd:      s.TotalAssets,
	}
	cf.OperatingNet = cf.OperatingIn.Sub(cf.OperatingOut)
	cf.InvestingNet = cf.InvestingIn.Sub(cf.InvestingOut)
	cf.FinancingNet = cf.FinancingIn.Sub(cf.FinancingOut)
	cf.NetChange = cf.OperatingNet.Add(cf.InvestingNet).Add(cf.FinancingNet)
	return cf
}
