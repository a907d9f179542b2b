package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/utils/accounting"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestSignedMovement(t *testing.T) {
	testCases := []struct {
		name      string
		direction domain.EntryDirection
		normal    domain.NormalBalance
		expected  string
	}{
		{"debit on debit-normal increases", domain.Debit, domain.NormalDebit, "100"},
		{"credit on debit-normal decreases", domain.Credit, domain.NormalDebit, "-100"},
		{"credit on credit-normal increases", domain.Credit, domain.NormalCredit, "100"},
		{"debit on credit-normal decreases", domain.Debit, domain.NormalCredit, "-100"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := accounting.SignedMovement(tc.direction, dec(t, "100"), tc.normal)
			assert.True(t, got.Equal(dec(t, tc.expected)), "got %s", got.String())
		})
	}
}

func TestBalanceFromSums(t *testing.T) {
	debit := dec(t, "500")
	credit := dec(t, "200")

	assert.True(t, accounting.BalanceFromSums(debit, credit, domain.NormalDebit).Equal(dec(t, "300")))
	assert.True(t, accounting.BalanceFromSums(debit, credit, domain.NormalCredit).Equal(dec(t, "-300")))
}

func TestIsZeroAmount(t *testing.T) {
	assert.True(t, accounting.IsZeroAmount(decimal.Zero))
	assert.True(t, accounting.IsZeroAmount(dec(t, "0.009")))
	assert.True(t, accounting.IsZeroAmount(dec(t, "-0.005")))
	assert.False(t, accounting.IsZeroAmount(dec(t, "0.01")))
	assert.False(t, accounting.IsZeroAmount(dec(t, "-0.02")))
}

func TestValidateBalanced_Success(t *testing.T) {
	lines := []domain.JournalLine{
		{ChartOfAccountID: "cash", Direction: domain.Debit, Amount: dec(t, "1500")},
		{ChartOfAccountID: "tuition", Direction: domain.Credit, Amount: dec(t, "1000")},
		{ChartOfAccountID: "fees", Direction: domain.Credit, Amount: dec(t, "500")},
	}
	total, err := accounting.ValidateBalanced(lines)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(t, "1500")))
}

func TestValidateBalanced_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		{ChartOfAccountID: "cash", Direction: domain.Debit, Amount: dec(t, "100")},
		{ChartOfAccountID: "tuition", Direction: domain.Credit, Amount: dec(t, "99.99")},
	}
	_, err := accounting.ValidateBalanced(lines)
	assert.ErrorContains(t, err, "does not balance")
}

func TestValidateBalanced_SingleLine(t *testing.T) {
	lines := []domain.JournalLine{
		{ChartOfAccountID: "cash", Direction: domain.Debit, Amount: dec(t, "100")},
	}
	_, err := accounting.ValidateBalanced(lines)
	assert.ErrorContains(t, err, "at least two lines")
}

func TestValidateBalanced_NonPositiveAmount(t *testing.T) {
	lines := []domain.JournalLine{
		{ChartOfAccountID: "cash", Direction: domain.Debit, Amount: decimal.Zero},
		{ChartOfAccountID: "tuition", Direction: domain.Credit, Amount: decimal.Zero},
	}
	_, err := accounting.ValidateBalanced(lines)
	assert.ErrorContains(t, err, "must be positive")
}
