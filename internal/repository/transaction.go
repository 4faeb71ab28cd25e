package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
)

const transactionColumns = `id, user_id, entry_date, description, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, entry_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Date, t.Description, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET entry_date = $1, description = $2 WHERE id = $3 AND user_id = $4`,
		t.Date, t.Description, t.ID, t.UserID,
	)
	if err != nil {
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

// Delete removes the transaction; its postings go with it via the cascade.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID,
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

func (r *TransactionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID,
	)

	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByUser: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) CountByUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND entry_date = $2`, userID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByUserOnDate: %w", err)
	}
	return count, nil
}

// ListEntries returns the user's transactions newest first, each with its
// debit and credit legs resolved. limit <= 0 means no limit.
func (r *TransactionRepository) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.EntrySummary, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1 ORDER BY entry_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListEntries: %w", err)
	}
	defer rows.Close()

	var headers []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListEntries: scan: %w", err)
		}
		headers = append(headers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEntries: rows: %w", err)
	}

	entries := make([]domain.EntrySummary, 0, len(headers))
	for _, t := range headers {
		entry, err := r.resolveLegs(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("ListEntries: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// resolveLegs picks the first debit-bearing and first credit-bearing
// posting of the transaction. Entries are created with exactly one of
// each; malformed data degrades to nil legs rather than an error.
func (r *TransactionRepository) resolveLegs(ctx context.Context, t domain.Transaction) (*domain.EntrySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.debit, p.credit, a.id, a.user_id, a.code, a.name, a.type, a.created_at
		FROM postings p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.transaction_id = $1
		ORDER BY p.debit DESC`,
		t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("resolveLegs: %w", err)
	}
	defer rows.Close()

	entry := &domain.EntrySummary{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
	}

	for rows.Next() {
		var debit, credit decimal.Decimal
		var a domain.Account
		err := rows.Scan(&debit, &credit, &a.ID, &a.UserID, &a.Code, &a.Name, &a.Type, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("resolveLegs: scan: %w", err)
		}

		if debit.IsPositive() && entry.DebitAccount == nil {
			acct := a
			entry.DebitAccount = &acct
			entry.Amount = debit
		}
		if credit.IsPositive() && entry.CreditAccount == nil {
			acct := a
			entry.CreditAccount = &acct
			if entry.DebitAccount == nil {
				entry.Amount = credit
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolveLegs: rows: %w", err)
	}
	return entry, nil
}
