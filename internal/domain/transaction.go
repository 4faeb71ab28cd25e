package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one dated journal entry header. Its postings are created
// and replaced with it as a unit; deleting a transaction cascades to them.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// Posting is one leg of a journal entry. At most one of Debit/Credit is
// non-zero in a well-formed posting; aggregation sums whatever is stored
// and treats missing amounts as zero.
type Posting struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// JournalLine is a posting joined with its transaction header and account,
// as displayed in the general journal and general ledger.
type JournalLine struct {
	PostingID     uuid.UUID
	TransactionID uuid.UUID
	Date          time.Time
	Description   string
	AccountID     uuid.UUID
	AccountCode   string
	AccountName   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// EntrySummary is a transaction with its two legs resolved, the shape the
// entry list and dashboard present.
type EntrySummary struct {
	ID            uuid.UUID
	Date          time.Time
	Description   string
	DebitAccount  *Account
	CreditAccount *Account
	Amount        decimal.Decimal
}
