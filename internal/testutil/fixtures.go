package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/bukubesar/backend/internal/domain"
)

func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedTestAccount(t *testing.T, db *sql.DB, userID uuid.UUID, code, name string, accType domain.AccountType) *domain.Account {
	t.Helper()

	a := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		Name:      name,
		Type:      accType,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO accounts (id, user_id, code, name, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.Code, a.Name, a.Type, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test account %s: %v", code, err)
	}
	return a
}

// SeedTestEntry writes a transaction header with its balanced posting pair.
func SeedTestEntry(t *testing.T, db *sql.DB, userID uuid.UUID, date time.Time, description string, debitAccountID, creditAccountID uuid.UUID, amount decimal.Decimal) uuid.UUID {
	t.Helper()

	txID := uuid.New()
	_, err := db.Exec(
		`INSERT INTO transactions (id, user_id, entry_date, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		txID, userID, date, description, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed transaction %s: %v", description, err)
	}

	legs := []struct {
		accountID uuid.UUID
		debit     decimal.Decimal
		credit    decimal.Decimal
	}{
		{debitAccountID, amount, decimal.Zero},
		{creditAccountID, decimal.Zero, amount},
	}
	for _, leg := range legs {
		_, err := db.Exec(
			`INSERT INTO postings (id, transaction_id, account_id, debit, credit)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), txID, leg.accountID, leg.debit, leg.credit,
		)
		if err != nil {
			t.Fatalf("seed posting for %s: %v", description, err)
		}
	}

	return txID
}

func CountPostings(t *testing.T, db *sql.DB, transactionID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM postings WHERE transaction_id = $1`, transactionID).Scan(&count)
	if err != nil {
		t.Fatalf("count postings for transaction %s: %v", transactionID, err)
	}
	return count
}
