package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bukubesar/backend/internal/domain"
)

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

func (r *PostingRepository) Insert(ctx context.Context, tx *sql.Tx, p *domain.Posting) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO postings (id, transaction_id, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.TransactionID, p.AccountID, p.Debit, p.Credit,
	)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (r *PostingRepository) DeleteByTransaction(ctx context.Context, tx *sql.Tx, transactionID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM postings WHERE transaction_id = $1`, transactionID,
	)
	if err != nil {
		return fmt.Errorf("DeleteByTransaction: %w", err)
	}
	return nil
}

// SumByAccount totals the account's posted debits and credits over the
// transaction-date window, inclusive on both ends and open-ended where nil.
// NULL sums read as zero.
func (r *PostingRepository) SumByAccount(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (debit, credit decimal.Decimal, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM postings p
		JOIN transactions t ON t.id = p.transaction_id
		WHERE p.account_id = $1
		  AND ($2::date IS NULL OR t.entry_date >= $2)
		  AND ($3::date IS NULL OR t.entry_date <= $3)`,
		accountID, nullDate(from), nullDate(to),
	).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("SumByAccount: %w", err)
	}
	return debit, credit, nil
}

// Totals sums every posting the user owns, independent of account routing.
func (r *PostingRepository) Totals(ctx context.Context, userID uuid.UUID) (debit, credit decimal.Decimal, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM postings p
		JOIN accounts a ON a.id = p.account_id
		WHERE a.user_id = $1`,
		userID,
	).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("Totals: %w", err)
	}
	return debit, credit, nil
}

const journalLineColumns = `p.id, t.id, t.entry_date, t.description, a.id, a.code, a.name, p.debit, p.credit`

// ListJournal returns every posting of the user as general-journal lines,
// newest transaction first.
func (r *PostingRepository) ListJournal(ctx context.Context, userID uuid.UUID) ([]domain.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+journalLineColumns+`
		FROM postings p
		JOIN transactions t ON t.id = p.transaction_id
		JOIN accounts a ON a.id = p.account_id
		WHERE a.user_id = $1
		ORDER BY t.entry_date DESC, t.created_at DESC, p.debit DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListJournal: %w", err)
	}
	defer rows.Close()

	lines, err := collectJournalLines(rows)
	if err != nil {
		return nil, fmt.Errorf("ListJournal: %w", err)
	}
	return lines, nil
}

// ListLedger returns general-ledger lines ordered by account code then
// transaction date. A non-nil accountID restricts to one account; the
// date window behaves as in SumByAccount.
func (r *PostingRepository) ListLedger(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID, from, to *time.Time) ([]domain.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+journalLineColumns+`
		FROM postings p
		JOIN transactions t ON t.id = p.transaction_id
		JOIN accounts a ON a.id = p.account_id
		WHERE a.user_id = $1
		  AND ($2::uuid IS NULL OR a.id = $2)
		  AND ($3::date IS NULL OR t.entry_date >= $3)
		  AND ($4::date IS NULL OR t.entry_date <= $4)
		ORDER BY a.code, t.entry_date, t.created_at`,
		userID, nullUUID(accountID), nullDate(from), nullDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("ListLedger: %w", err)
	}
	defer rows.Close()

	lines, err := collectJournalLines(rows)
	if err != nil {
		return nil, fmt.Errorf("ListLedger: %w", err)
	}
	return lines, nil
}

func collectJournalLines(rows *sql.Rows) ([]domain.JournalLine, error) {
	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.PostingID, &l.TransactionID, &l.Date, &l.Description,
			&l.AccountID, &l.AccountCode, &l.AccountName,
			&l.Debit, &l.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return lines, nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
