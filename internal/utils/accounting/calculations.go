package accounting

import (
	"fmt"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// zeroEpsilon is the threshold below which a report amount is treated as zero.
// Historic data contains float-rounded values, so exact Equal(zero) checks
// would leave dust rows on reports.
var zeroEpsilon = decimal.NewFromFloat(0.01)

// SignedMovement returns the balance effect of a single journal line on an
// account with the given normal balance: +amount when the line direction
// matches the account's increasing direction, -amount otherwise.
func SignedMovement(direction domain.EntryDirection, amount decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	increases := (normal == domain.NormalDebit && direction == domain.Debit) ||
		(normal == domain.NormalCredit && direction == domain.Credit)
	if increases {
		return amount
	}
	return amount.Neg()
}

// BalanceFromSums folds unsigned debit/credit totals into a signed balance
// according to the account's normal balance.
func BalanceFromSums(debit, credit decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.NormalDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// IsZeroAmount reports whether d is zero for reporting purposes (|d| < 0.01).
func IsZeroAmount(d decimal.Decimal) bool {
	return d.Abs().LessThan(zeroEpsilon)
}

// ValidateBalanced checks the double-entry invariant over a set of journal
// lines: at least two lines, every amount strictly positive, and the debit sum
// equal to the credit sum. It returns the common side total on success.
func ValidateBalanced(lines []domain.JournalLine) (decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, fmt.Errorf("journal entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("line amount must be positive for account %s", line.ChartOfAccountID)
		}
		switch line.Direction {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return decimal.Zero, fmt.Errorf("unknown direction %q for account %s", line.Direction, line.ChartOfAccountID)
		}
	}

	if !debits.Equal(credits) {
		return decimal.Zero, fmt.Errorf("journal entry does not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return debits, nil
}
