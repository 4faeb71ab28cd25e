package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bukubesar/backend/internal/domain"
)

const accountColumns = `id, user_id, code, name, type, created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, code, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.UserID, account.Code, account.Name, account.Type, account.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("Create: %w", domain.ErrCodeTaken)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// GetByID is scoped to the owning user; another user's account id reads as
// not found.
func (r *AccountRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND user_id = $2`, id, userID,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByCode(ctx context.Context, userID uuid.UUID, code string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND code = $2`, userID, code,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByCode: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByCode: %w", err)
	}
	return a, nil
}

// ListByUser returns the user's chart of accounts ordered by code
// ascending, the display order every report preserves. A non-nil
// typeFilter restricts to exact type-label matches.
func (r *AccountRepository) ListByUser(ctx context.Context, userID uuid.UUID, typeFilter *domain.AccountType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	args := []any{userID}
	if typeFilter != nil {
		query += ` AND type = $2`
		args = append(args, *typeFilter)
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: scan: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET code = $1, name = $2, type = $3 WHERE id = $4 AND user_id = $5`,
		account.Code, account.Name, account.Type, account.ID, account.UserID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("Update: %w", domain.ErrCodeTaken)
		}
		return fmt.Errorf("Update: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// CountPostings backs the delete guard: an account referenced by any
// posting cannot be removed.
func (r *AccountRepository) CountPostings(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM postings WHERE account_id = $1`, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountPostings: %w", err)
	}
	return count, nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	err := s.Scan(&a.ID, &a.UserID, &a.Code, &a.Name, &a.Type, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
