package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountType is the bookkeeping type label attached to an account. The
// label set is open: anything outside the recognized constants still
// classifies, falling back to a debit-normal asset.
type AccountType string

const (
	TypeAset                   AccountType = "Aset"
	TypeAktiva                 AccountType = "Aktiva"
	TypeAktivaLancar           AccountType = "Aktiva Lancar"
	TypeAktivaTetap            AccountType = "Aktiva Tetap"
	TypeAktivaLainnya          AccountType = "Aktiva Lainnya"
	TypeKewajiban              AccountType = "Kewajiban"
	TypeKewajibanLancar        AccountType = "Kewajiban Lancar"
	TypeKewajibanJangkaPanjang AccountType = "Kewajiban Jangka Panjang"
	TypeModal                  AccountType = "Modal"
	TypePendapatan             AccountType = "Pendapatan"
	TypeBeban                  AccountType = "Beban"
)

// NormalSide is the side on which an account naturally increases.
type NormalSide string

const (
	NormalDebit  NormalSide = "debit"
	NormalCredit NormalSide = "credit"
)

// Bucket is the top-level statement classification an account rolls into.
type Bucket string

const (
	BucketAsset     Bucket = "asset"
	BucketLiability Bucket = "liability"
	BucketEquity    Bucket = "equity"
	BucketRevenue   Bucket = "revenue"
	BucketExpense   Bucket = "expense"
)

func (t AccountType) isAssetFamily() bool {
	switch t {
	case TypeAset, TypeAktiva, TypeAktivaLancar, TypeAktivaTetap, TypeAktivaLainnya:
		return true
	}
	return false
}

func (t AccountType) isLiabilityFamily() bool {
	switch t {
	case TypeKewajiban, TypeKewajibanLancar, TypeKewajibanJangkaPanjang:
		return true
	}
	return false
}

// NormalSide maps the type label to its normal balance side. Asset-family
// labels and Beban are debit-normal; Kewajiban-family labels, Modal and
// Pendapatan are credit-normal. Unrecognized labels are debit-normal.
func (t AccountType) NormalSide() NormalSide {
	if t.isLiabilityFamily() || t == TypeModal || t == TypePendapatan {
		return NormalCredit
	}
	return NormalDebit
}

// Bucket maps the type label to its statement bucket. Unrecognized labels
// land in the asset bucket; that is the documented permissive default,
// not an error.
func (t AccountType) Bucket() Bucket {
	switch {
	case t.isAssetFamily():
		return BucketAsset
	case t.isLiabilityFamily():
		return BucketLiability
	case t == TypeModal:
		return BucketEquity
	case t == TypePendapatan:
		return BucketRevenue
	case t == TypeBeban:
		return BucketExpense
	default:
		return BucketAsset
	}
}

// Account is one ledger account in a user's chart of accounts.
// (UserID, Code) is unique.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	Name      string
	Type      AccountType
	CreatedAt time.Time
}
