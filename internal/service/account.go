package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/logging"
)

type accountRepo interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CountPostings(ctx context.Context, accountID uuid.UUID) (int, error)
}

type AccountService struct {
	accounts accountRepo
}

func NewAccountService(accounts accountRepo) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, code, name string, accType domain.AccountType) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		Name:      name,
		Type:      accType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	logging.FromContext(ctx).Info("account created",
		"account_id", account.ID,
		"code", account.Code,
		"type", account.Type,
	)
	return account, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, userID, id uuid.UUID, code, name string, accType domain.AccountType) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}

	account.Code = code
	account.Name = name
	account.Type = accType

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}
	return account, nil
}

// DeleteAccount refuses to remove an account that any posting still
// references; the journal history stays intact.
func (s *AccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	account, err := s.accounts.GetByID(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}

	count, err := s.accounts.CountPostings(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("DeleteAccount: %d postings: %w", count, domain.ErrAccountInUse)
	}

	if err := s.accounts.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}

	logging.FromContext(ctx).Info("account deleted", "account_id", id, "code", account.Code)
	return nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return accounts, nil
}
