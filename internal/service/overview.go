package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
)

const recentEntryLimit = 5

type overviewAccounts interface {
	ListByUser(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error)
}

type overviewTransactions interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	CountByUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.EntrySummary, error)
}

type overviewPostings interface {
	Totals(ctx context.Context, userID uuid.UUID) (debit, credit decimal.Decimal, err error)
}

// Overview is the dashboard snapshot of a user's books.
type Overview struct {
	AccountCount      int
	TransactionCount  int
	TransactionsToday int
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
	Difference        decimal.Decimal
	IsBalanced        bool
	Recent            []domain.EntrySummary
}

type OverviewService struct {
	accounts     overviewAccounts
	transactions overviewTransactions
	postings     overviewPostings
	now          func() time.Time
}

func NewOverviewService(accounts overviewAccounts, transactions overviewTransactions, postings overviewPostings) *OverviewService {
	return &OverviewService{
		accounts:     accounts,
		transactions: transactions,
		postings:     postings,
		now:          time.Now,
	}
}

func (s *OverviewService) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("GetOverview: %w", err)
	}

	txCount, err := s.transactions.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetOverview: %w", err)
	}

	todayCount, err := s.transactions.CountByUserOnDate(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("GetOverview: %w", err)
	}

	totalDebit, totalCredit, err := s.postings.Totals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetOverview: %w", err)
	}

	recent, err := s.transactions.ListEntries(ctx, userID, recentEntryLimit)
	if err != nil {
		return nil, fmt.Errorf("GetOverview: %w", err)
	}

	diff := totalDebit.Sub(totalCredit)
	return &Overview{
		AccountCount:      len(accounts),
		TransactionCount:  txCount,
		TransactionsToday: todayCount,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		Difference:        diff,
		IsBalanced:        diff.IsZero(),
		Recent:            recent,
	}, nil
}
