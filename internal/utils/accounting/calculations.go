package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// CalculateSignedAmount applies the correct sign to a transaction amount based
// on account type and transaction type. Used in both services and
// repositories so balance math stays consistent.
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateJournalBalance checks that a journal's lines net to zero: every
// amount positive and the debit sum equal to the credit sum.
func ValidateJournalBalance(transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return fmt.Errorf("journal must have at least one transaction line")
	}

	zero := decimal.NewFromInt(0)
	debitsSum := zero
	creditsSum := zero

	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
		}
		if txn.TransactionType == domain.Debit {
			debitsSum = debitsSum.Add(txn.Amount)
		} else {
			creditsSum = creditsSum.Add(txn.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("journal lines do not balance to zero: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}

	return nil
}
