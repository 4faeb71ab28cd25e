// Package ledger derives report-ready aggregates from a user's journal.
// All report views are composed from one TotalsSummary so the sign and
// routing conventions cannot drift between them.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
)

type accountLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error)
}

type balanceAggregator interface {
	SumByAccount(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (debit, credit decimal.Decimal, err error)
}

// Filter narrows a totals computation. Nil fields mean unbounded dates
// and all account types.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Type     *domain.AccountType
}

// Engine computes TotalsSummaries. It is stateless and read-only over
// storage; concurrent computations need no coordination.
type Engine struct {
	accounts accountLister
	postings balanceAggregator
}

func NewEngine(accounts accountLister, postings balanceAggregator) *Engine {
	return &Engine{accounts: accounts, postings: postings}
}

// ComputeTotals aggregates every account the user owns, one sum query per
// account in code order, and routes each balance into the bucket totals
// by normal-balance side. Storage faults abort the whole computation;
// there is no partial result.
func (e *Engine) ComputeTotals(ctx context.Context, userID uuid.UUID, f Filter) (*domain.TotalsSummary, error) {
	accounts, err := e.accounts.ListByUser(ctx, userID, f.Type)
	if err != nil {
		return nil, fmt.Errorf("ComputeTotals: %w", err)
	}

	s := &domain.TotalsSummary{}
	for _, acct := range accounts {
		debit, credit, err := e.postings.SumByAccount(ctx, acct.ID, f.DateFrom, f.DateTo)
		if err != nil {
			return nil, fmt.Errorf("ComputeTotals: account %s: %w", acct.Code, err)
		}
		balance := debit.Sub(credit)

		s.Balances = append(s.Balances, domain.AccountBalance{
			Account: acct,
			Debit:   debit,
			Credit:  credit,
			Balance: balance,
		})
		s.TotalDebit = s.TotalDebit.Add(debit)
		s.TotalCredit = s.TotalCredit.Add(credit)

		route(s, acct.Type, balance)
	}
	return s, nil
}

// route applies the normal-balance routing rules. Balances sitting on
// their normal side go to the matching bucket total; balances that
// flipped to the opposite side are counted on the other side of the
// ledger (asset->liabilities, expense->revenue, credit-normal->assets).
// The flipped routing is not a standard accounting treatment but the
// reports rely on it, so it stays.
func route(s *domain.TotalsSummary, accType domain.AccountType, balance decimal.Decimal) {
	bucket := accType.Bucket()

	if accType.NormalSide() == domain.NormalDebit {
		if balance.Sign() >= 0 {
			switch bucket {
			case domain.BucketExpense:
				s.TotalExpense = s.TotalExpense.Add(balance)
			default:
				s.TotalAssets = s.TotalAssets.Add(balance)
			}
			return
		}

		flipped := balance.Abs()
		switch bucket {
		case domain.BucketExpense:
			s.TotalRevenue = s.TotalRevenue.Add(flipped)
		default:
			s.TotalLiabilities = s.TotalLiabilities.Add(flipped)
		}
		return
	}

	if balance.Sign() <= 0 {
		val := balance.Abs()
		switch bucket {
		case domain.BucketEquity:
			s.TotalEquity = s.TotalEquity.Add(val)
		case domain.BucketRevenue:
			s.TotalRevenue = s.TotalRevenue.Add(val)
		default:
			s.TotalLiabilities = s.TotalLiabilities.Add(val)
		}
		return
	}

	// Unexpected debit balance on a credit-normal account.
	s.TotalAssets = s.TotalAssets.Add(balance)
}
