package domain

import "time"

// CurrentBalance derives the running balance from the opening float and
// the ledger: initial + sales - expenses. Payment method does not matter
// here; online sales count toward the balance even though they never
// move the till.
func CurrentBalance(initialBalance int64, transactions []Transaction) int64 {
	balance := initialBalance
	for _, t := range transactions {
		switch t.Type {
		case TransactionSale:
			balance += t.Amount
		case TransactionExpense:
			balance -= t.Amount
		}
	}
	return balance
}

// BalanceModificationType tags how an opening balance was changed
// outside the normal transaction flow.
type BalanceModificationType string

const (
	BalanceModificationAdd  BalanceModificationType = "add"
	BalanceModificationEdit BalanceModificationType = "edit"
)

// BalanceModification is one append-only audit record of an opening
// balance change. These are a human-facing history; balance computation
// never reads them back.
type BalanceModification struct {
	ID              string                  `json:"id"`
	SessionDate     string                  `json:"session_date"`
	Type            BalanceModificationType `json:"type"`
	PreviousBalance int64                   `json:"previous_balance"`
	NewBalance      int64                   `json:"new_balance"`
	Difference      int64                   `json:"difference"`
	Timestamp       time.Time               `json:"timestamp"`
}
