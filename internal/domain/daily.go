package domain

import "time"

// PendingTransaction is an order taken but not yet paid. It sits outside
// the ledger and the till until it is continued into a real sale.
type PendingTransaction struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	Customer     string        `json:"customer"`
	Amount       int64         `json:"amount"`
	OrderDetails *OrderDetails `json:"order_details,omitempty"`
}

// DebtTransaction records money owed by a customer. Like pending orders
// it never touches the till.
type DebtTransaction struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Customer  string    `json:"customer"`
	Amount    int64     `json:"amount"`
}

// DailyData is one business day's full register state: the unit of
// persistence. The whole snapshot is rewritten on every mutation, so a
// restart loses nothing. FinalBalance is a persisted cache of the derived
// running balance, never the source of truth.
type DailyData struct {
	Date                 string               `json:"date"`
	InitialBalance       int64                `json:"initial_balance"`
	FinalBalance         int64                `json:"final_balance"`
	InitialDenominations DenominationSet      `json:"initial_denominations"`
	Denominations        DenominationSet      `json:"denominations"`
	Transactions         []Transaction        `json:"transactions"`
	PendingTransactions  []PendingTransaction `json:"pending_transactions,omitempty"`
	DebtTransactions     []DebtTransaction    `json:"debt_transactions,omitempty"`
}
