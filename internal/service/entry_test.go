package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/repository"
	"github.com/bukubesar/backend/internal/service"
)

func newEntryService(t *testing.T) (*service.EntryService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewEntryService(
		db,
		repository.NewTransactionRepository(db),
		repository.NewPostingRepository(db),
		repository.NewAccountRepository(db),
	)
	return svc, mock
}

func accountRows(id, userID uuid.UUID, code, name string, accType domain.AccountType) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "code", "name", "type", "created_at"}).
		AddRow(id, userID, code, name, string(accType), time.Now().UTC())
}

func TestCreateEntry_WritesHeaderAndBothLegs(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	kasID := uuid.New()
	modalID := uuid.New()
	amount := decimal.RequireFromString("50000000")

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "101").
		WillReturnRows(accountRows(kasID, userID, "101", "Kas", domain.TypeAset))
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "301").
		WillReturnRows(accountRows(modalID, userID, "301", "Modal Awal", domain.TypeModal))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), userID, sqlmock.AnyArg(), "Setoran modal awal", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO postings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), kasID, amount, decimal.Zero).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO postings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), modalID, decimal.Zero, amount).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry, err := svc.CreateEntry(ctx, userID, service.EntryInput{
		Date:          time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description:   "Setoran modal awal",
		DebitAccount:  "101",
		CreditAccount: "301",
		Amount:        amount,
	})

	require.NoError(t, err)
	require.NotNil(t, entry.DebitAccount)
	require.NotNil(t, entry.CreditAccount)
	assert.Equal(t, "101", entry.DebitAccount.Code)
	assert.Equal(t, "301", entry.CreditAccount.Code)
	assert.True(t, entry.Amount.Equal(amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_RollsBackWhenLegInsertFails(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	kasID := uuid.New()
	modalID := uuid.New()
	amount := decimal.RequireFromString("1000000")

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "101").
		WillReturnRows(accountRows(kasID, userID, "101", "Kas", domain.TypeAset))
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "301").
		WillReturnRows(accountRows(modalID, userID, "301", "Modal", domain.TypeModal))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO postings").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.CreateEntry(ctx, userID, service.EntryInput{
		Date:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Description:   "Pembelian peralatan",
		DebitAccount:  "101",
		CreditAccount: "301",
		Amount:        amount,
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_RejectsNonPositiveAmount(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	for _, raw := range []string{"0", "-500"} {
		_, err := svc.CreateEntry(ctx, uuid.New(), service.EntryInput{
			Date:          time.Now(),
			Description:   "x",
			DebitAccount:  "101",
			CreditAccount: "301",
			Amount:        decimal.RequireFromString(raw),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", raw)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_RejectsSameAccountBothLegs(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	kasID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "101").
		WillReturnRows(accountRows(kasID, userID, "101", "Kas", domain.TypeAset))
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "101").
		WillReturnRows(accountRows(kasID, userID, "101", "Kas", domain.TypeAset))

	_, err := svc.CreateEntry(ctx, userID, service.EntryInput{
		Date:          time.Now(),
		Description:   "self transfer",
		DebitAccount:  "101",
		CreditAccount: "101",
		Amount:        decimal.RequireFromString("100"),
	})

	assert.ErrorIs(t, err, domain.ErrSameAccount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_UnknownAccountCode(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "999").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "code", "name", "type", "created_at"}))

	_, err := svc.CreateEntry(ctx, userID, service.EntryInput{
		Date:          time.Now(),
		Description:   "x",
		DebitAccount:  "999",
		CreditAccount: "301",
		Amount:        decimal.RequireFromString("100"),
	})

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntry_ReplacesPostingPairAtomically(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	txID := uuid.New()
	kasID := uuid.New()
	pendapatanID := uuid.New()
	amount := decimal.RequireFromString("2500000")

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(txID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "entry_date", "description", "created_at"}).
			AddRow(txID, userID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "old", time.Now().UTC()))

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "101").
		WillReturnRows(accountRows(kasID, userID, "101", "Kas", domain.TypeAset))
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE user_id = \\$1 AND code = \\$2").
		WithArgs(userID, "401").
		WillReturnRows(accountRows(pendapatanID, userID, "401", "Pendapatan Jasa", domain.TypePendapatan))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions SET entry_date").
		WithArgs(sqlmock.AnyArg(), "Pendapatan servis", txID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM postings WHERE transaction_id").
		WithArgs(txID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO postings").
		WithArgs(sqlmock.AnyArg(), txID, kasID, amount, decimal.Zero).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO postings").
		WithArgs(sqlmock.AnyArg(), txID, pendapatanID, decimal.Zero, amount).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry, err := svc.UpdateEntry(ctx, userID, txID, service.EntryInput{
		Date:          time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Description:   "Pendapatan servis",
		DebitAccount:  "101",
		CreditAccount: "401",
		Amount:        amount,
	})

	require.NoError(t, err)
	assert.Equal(t, txID, entry.ID)
	assert.Equal(t, "Pendapatan servis", entry.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntry_NotFound(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	txID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(txID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "entry_date", "description", "created_at"}))

	_, err := svc.UpdateEntry(ctx, userID, txID, service.EntryInput{
		Date:          time.Now(),
		Description:   "x",
		DebitAccount:  "101",
		CreditAccount: "301",
		Amount:        decimal.RequireFromString("100"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEntry_NotFound(t *testing.T) {
	svc, mock := newEntryService(t)
	ctx := context.Background()

	userID := uuid.New()
	txID := uuid.New()

	mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(txID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteEntry(ctx, userID, txID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
