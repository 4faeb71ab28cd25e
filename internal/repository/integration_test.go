package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukubesar/backend/internal/domain"
	"github.com/bukubesar/backend/internal/repository"
	"github.com/bukubesar/backend/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAccountRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "crud@test.com", "CRUD")

	kas := &domain.Account{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "101",
		Name:      "Kas",
		Type:      domain.TypeAset,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, kas))

	dup := &domain.Account{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "101",
		Name:      "Kas Kedua",
		Type:      domain.TypeAset,
		CreatedAt: time.Now().UTC(),
	}
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrCodeTaken)

	// The same code under another user is allowed.
	other := testutil.SeedTestUser(t, db, "other@test.com", "Other")
	otherKas := &domain.Account{
		ID:        uuid.New(),
		UserID:    other.ID,
		Code:      "101",
		Name:      "Kas",
		Type:      domain.TypeAset,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, otherKas))

	got, err := repo.GetByCode(ctx, user.ID, "101")
	require.NoError(t, err)
	assert.Equal(t, kas.ID, got.ID)

	_, err = repo.GetByID(ctx, kas.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	kas.Name = "Kas Besar"
	require.NoError(t, repo.Update(ctx, kas))
	got, err = repo.GetByID(ctx, kas.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kas Besar", got.Name)

	require.NoError(t, repo.Delete(ctx, kas.ID, user.ID))
	_, err = repo.GetByID(ctx, kas.ID, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_ListByUserOrdersByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAccountRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "list@test.com", "List")
	testutil.SeedTestAccount(t, db, user.ID, "301", "Modal", domain.TypeModal)
	testutil.SeedTestAccount(t, db, user.ID, "101", "Kas", domain.TypeAset)
	testutil.SeedTestAccount(t, db, user.ID, "201", "Utang Usaha", domain.TypeKewajiban)

	accounts, err := repo.ListByUser(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "101", accounts[0].Code)
	assert.Equal(t, "201", accounts[1].Code)
	assert.Equal(t, "301", accounts[2].Code)

	modal := domain.TypeModal
	filtered, err := repo.ListByUser(ctx, user.ID, &modal)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "301", filtered[0].Code)
}

func TestPostingRepository_SumByAccountDateWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPostingRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "sums@test.com", "Sums")
	kas := testutil.SeedTestAccount(t, db, user.ID, "101", "Kas", domain.TypeAset)
	modal := testutil.SeedTestAccount(t, db, user.ID, "301", "Modal", domain.TypeModal)

	testutil.SeedTestEntry(t, db, user.ID, date(2024, 1, 10), "setoran januari",
		kas.ID, modal.ID, decimal.RequireFromString("1000.00"))
	testutil.SeedTestEntry(t, db, user.ID, date(2024, 2, 10), "setoran februari",
		kas.ID, modal.ID, decimal.RequireFromString("500.00"))

	debit, credit, err := repo.SumByAccount(ctx, kas.ID, nil, nil)
	require.NoError(t, err)
	assert.True(t, debit.Equal(decimal.RequireFromString("1500.00")), "debit %s", debit)
	assert.True(t, credit.IsZero())

	// Window bounds are inclusive on both ends.
	from, to := date(2024, 1, 10), date(2024, 1, 10)
	debit, _, err = repo.SumByAccount(ctx, kas.ID, &from, &to)
	require.NoError(t, err)
	assert.True(t, debit.Equal(decimal.RequireFromString("1000.00")), "debit %s", debit)

	from = date(2024, 2, 1)
	debit, _, err = repo.SumByAccount(ctx, kas.ID, &from, nil)
	require.NoError(t, err)
	assert.True(t, debit.Equal(decimal.RequireFromString("500.00")), "debit %s", debit)

	_, credit, err = repo.SumByAccount(ctx, modal.ID, nil, nil)
	require.NoError(t, err)
	assert.True(t, credit.Equal(decimal.RequireFromString("1500.00")), "credit %s", credit)
}

func TestTransactionRepository_DeleteCascadesPostings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "cascade@test.com", "Cascade")
	kas := testutil.SeedTestAccount(t, db, user.ID, "101", "Kas", domain.TypeAset)
	modal := testutil.SeedTestAccount(t, db, user.ID, "301", "Modal", domain.TypeModal)

	txID := testutil.SeedTestEntry(t, db, user.ID, date(2024, 3, 1), "setoran",
		kas.ID, modal.ID, decimal.RequireFromString("750.00"))
	require.Equal(t, 2, testutil.CountPostings(t, db, txID))

	require.NoError(t, repo.Delete(ctx, txID, user.ID))
	assert.Equal(t, 0, testutil.CountPostings(t, db, txID))

	require.ErrorIs(t, repo.Delete(ctx, txID, user.ID), domain.ErrNotFound)
}

func TestTransactionRepository_ListEntriesResolvesLegs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "entries@test.com", "Entries")
	kas := testutil.SeedTestAccount(t, db, user.ID, "101", "Kas", domain.TypeAset)
	modal := testutil.SeedTestAccount(t, db, user.ID, "301", "Modal", domain.TypeModal)
	pendapatan := testutil.SeedTestAccount(t, db, user.ID, "401", "Pendapatan Jasa", domain.TypePendapatan)

	testutil.SeedTestEntry(t, db, user.ID, date(2024, 1, 5), "setoran modal",
		kas.ID, modal.ID, decimal.RequireFromString("5000.00"))
	testutil.SeedTestEntry(t, db, user.ID, date(2024, 1, 20), "pendapatan servis",
		kas.ID, pendapatan.ID, decimal.RequireFromString("1200.00"))

	entries, err := repo.ListEntries(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "pendapatan servis", entries[0].Description)
	require.NotNil(t, entries[0].DebitAccount)
	require.NotNil(t, entries[0].CreditAccount)
	assert.Equal(t, "101", entries[0].DebitAccount.Code)
	assert.Equal(t, "401", entries[0].CreditAccount.Code)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("1200.00")))

	limited, err := repo.ListEntries(ctx, user.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "pendapatan servis", limited[0].Description)
}

func TestPostingRepository_JournalAndLedgerListing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPostingRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "lines@test.com", "Lines")
	kas := testutil.SeedTestAccount(t, db, user.ID, "101", "Kas", domain.TypeAset)
	modal := testutil.SeedTestAccount(t, db, user.ID, "301", "Modal", domain.TypeModal)

	testutil.SeedTestEntry(t, db, user.ID, date(2024, 1, 5), "setoran",
		kas.ID, modal.ID, decimal.RequireFromString("900.00"))
	testutil.SeedTestEntry(t, db, user.ID, date(2024, 4, 5), "setoran tambahan",
		kas.ID, modal.ID, decimal.RequireFromString("100.00"))

	journal, err := repo.ListJournal(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, journal, 4)
	// Newest transaction first, debit leg before credit leg.
	assert.Equal(t, "setoran tambahan", journal[0].Description)
	assert.True(t, journal[0].Debit.IsPositive())
	assert.True(t, journal[1].Credit.IsPositive())
	assert.Equal(t, journal[0].TransactionID, journal[1].TransactionID)

	ledger, err := repo.ListLedger(ctx, user.ID, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, ledger, 4)
	// Account code order: both Kas lines precede the Modal lines.
	assert.Equal(t, "101", ledger[0].AccountCode)
	assert.Equal(t, "101", ledger[1].AccountCode)
	assert.Equal(t, "301", ledger[2].AccountCode)

	onlyModal, err := repo.ListLedger(ctx, user.ID, &modal.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, onlyModal, 2)

	from := date(2024, 3, 1)
	windowed, err := repo.ListLedger(ctx, user.ID, &kas.ID, &from, nil)
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.True(t, windowed[0].Debit.Equal(decimal.RequireFromString("100.00")))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{
		ID:           uuid.New(),
		Email:        "dupe@test.com",
		Name:         "First",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.User{
		ID:           uuid.New(),
		Email:        "dupe@test.com",
		Name:         "Second",
		PasswordHash: "y",
		CreatedAt:    time.Now().UTC(),
	}
	assert.ErrorIs(t, repo.Create(ctx, second), domain.ErrEmailTaken)
}
