package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/logging"
)

type transactionRepo interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	Update(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.EntrySummary, error)
}

type postingWriter interface {
	Insert(ctx context.Context, tx *sql.Tx, p *domain.Posting) error
	DeleteByTransaction(ctx context.Context, tx *sql.Tx, transactionID uuid.UUID) error
}

type accountResolver interface {
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
	GetByCode(ctx context.Context, userID uuid.UUID, code string) (*domain.Account, error)
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// EntryService creates and maintains journal entries. Every entry is one
// transaction header plus exactly two postings, written as a unit; a
// reader never sees a header with a partial posting set.
type EntryService struct {
	db           txBeginner
	transactions transactionRepo
	postings     postingWriter
	accounts     accountResolver
}

func NewEntryService(db txBeginner, transactions transactionRepo, postings postingWriter, accounts accountResolver) *EntryService {
	return &EntryService{
		db:           db,
		transactions: transactions,
		postings:     postings,
		accounts:     accounts,
	}
}

// EntryInput names the two legs by account id or account code.
type EntryInput struct {
	Date          time.Time
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
}

func (s *EntryService) CreateEntry(ctx context.Context, userID uuid.UUID, in EntryInput) (*domain.EntrySummary, error) {
	debitAcct, creditAcct, err := s.resolveLegAccounts(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("CreateEntry: %w", err)
	}

	t := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        in.Date,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateEntry: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.transactions.Create(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("CreateEntry: %w", err)
	}
	if err := s.writeLegs(ctx, tx, t.ID, debitAcct.ID, creditAcct.ID, in.Amount); err != nil {
		return nil, fmt.Errorf("CreateEntry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateEntry: commit: %w", err)
	}

	logging.FromContext(ctx).Info("journal entry created",
		"transaction_id", t.ID,
		"debit_account", debitAcct.Code,
		"credit_account", creditAcct.Code,
		"amount", in.Amount,
	)

	return &domain.EntrySummary{
		ID:            t.ID,
		Date:          t.Date,
		Description:   t.Description,
		DebitAccount:  debitAcct,
		CreditAccount: creditAcct,
		Amount:        in.Amount,
	}, nil
}

// UpdateEntry replaces the full posting pair along with the header;
// partial updates are never visible.
func (s *EntryService) UpdateEntry(ctx context.Context, userID, id uuid.UUID, in EntryInput) (*domain.EntrySummary, error) {
	t, err := s.transactions.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}

	debitAcct, creditAcct, err := s.resolveLegAccounts(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}

	t.Date = in.Date
	t.Description = in.Description

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("UpdateEntry: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.transactions.Update(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}
	if err := s.postings.DeleteByTransaction(ctx, tx, t.ID); err != nil {
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}
	if err := s.writeLegs(ctx, tx, t.ID, debitAcct.ID, creditAcct.ID, in.Amount); err != nil {
		return nil, fmt.Errorf("UpdateEntry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("UpdateEntry: commit: %w", err)
	}

	logging.FromContext(ctx).Info("journal entry updated", "transaction_id", t.ID)

	return &domain.EntrySummary{
		ID:            t.ID,
		Date:          t.Date,
		Description:   t.Description,
		DebitAccount:  debitAcct,
		CreditAccount: creditAcct,
		Amount:        in.Amount,
	}, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.transactions.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("DeleteEntry: %w", err)
	}
	logging.FromContext(ctx).Info("journal entry deleted", "transaction_id", id)
	return nil
}

func (s *EntryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]domain.EntrySummary, error) {
	entries, err := s.transactions.ListEntries(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("ListEntries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) resolveLegAccounts(ctx context.Context, userID uuid.UUID, in EntryInput) (*domain.Account, *domain.Account, error) {
	if !in.Amount.IsPositive() {
		return nil, nil, domain.ErrInvalidAmount
	}

	debitAcct, err := s.resolveAccount(ctx, userID, in.DebitAccount)
	if err != nil {
		return nil, nil, fmt.Errorf("debit leg: %w", err)
	}
	creditAcct, err := s.resolveAccount(ctx, userID, in.CreditAccount)
	if err != nil {
		return nil, nil, fmt.Errorf("credit leg: %w", err)
	}

	if debitAcct.ID == creditAcct.ID {
		return nil, nil, domain.ErrSameAccount
	}
	return debitAcct, creditAcct, nil
}

// resolveAccount accepts an account id or, failing that, an account code.
func (s *EntryService) resolveAccount(ctx context.Context, userID uuid.UUID, ref string) (*domain.Account, error) {
	if id, err := uuid.Parse(ref); err == nil {
		account, err := s.accounts.GetByID(ctx, id, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrAccountNotFound
			}
			return nil, err
		}
		return account, nil
	}

	account, err := s.accounts.GetByCode(ctx, userID, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *EntryService) writeLegs(ctx context.Context, tx *sql.Tx, transactionID, debitAccountID, creditAccountID uuid.UUID, amount decimal.Decimal) error {
	debit := &domain.Posting{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     debitAccountID,
		Debit:         amount,
		Credit:        decimal.Zero,
	}
	if err := s.postings.Insert(ctx, tx, debit); err != nil {
		return err
	}

	credit := &domain.Posting{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     creditAccountID,
		Debit:         decimal.Zero,
		Credit:        amount,
	}
	return s.postings.Insert(ctx, tx, credit)
}
