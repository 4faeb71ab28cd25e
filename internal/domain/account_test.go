package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountTypeClassification(t *testing.T) {
	tests := []struct {
		name       string
		accType    AccountType
		wantSide   NormalSide
		wantBucket Bucket
	}{
		{"Aset", TypeAset, NormalDebit, BucketAsset},
		{"Aktiva", TypeAktiva, NormalDebit, BucketAsset},
		{"Aktiva Lancar", TypeAktivaLancar, NormalDebit, BucketAsset},
		{"Aktiva Tetap", TypeAktivaTetap, NormalDebit, BucketAsset},
		{"Aktiva Lainnya", TypeAktivaLainnya, NormalDebit, BucketAsset},
		{"Kewajiban", TypeKewajiban, NormalCredit, BucketLiability},
		{"Kewajiban Lancar", TypeKewajibanLancar, NormalCredit, BucketLiability},
		{"Kewajiban Jangka Panjang", TypeKewajibanJangkaPanjang, NormalCredit, BucketLiability},
		{"Modal", TypeModal, NormalCredit, BucketEquity},
		{"Pendapatan", TypePendapatan, NormalCredit, BucketRevenue},
		{"Beban", TypeBeban, NormalDebit, BucketExpense},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantSide, tc.accType.NormalSide())
			assert.Equal(t, tc.wantBucket, tc.accType.Bucket())
		})
	}
}

func TestAccountTypeUnrecognizedFallback(t *testing.T) {
	// Unknown labels must classify, never fail: debit-normal, asset bucket.
	for _, label := range []AccountType{"", "Piutang Aneh", "aset", "ASET", "Expense"} {
		assert.Equal(t, NormalDebit, label.NormalSide(), "label %q", label)
		assert.Equal(t, BucketAsset, label.Bucket(), "label %q", label)
	}
}
