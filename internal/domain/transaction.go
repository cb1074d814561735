package domain

import (
	"strings"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionSale    TransactionType = "sale"
	TransactionExpense TransactionType = "expense"
)

// PaymentMethod is how a transaction was settled. Only cash transactions
// move denominations through the till.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// ToppingSelection is one add-on chosen for an order line.
type ToppingSelection struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OrderItem is one product line inside a sale's order details.
type OrderItem struct {
	ProductID        string             `json:"product_id"`
	Name             string             `json:"name"`
	Price            int64              `json:"price"`
	Quantity         int64              `json:"quantity"`
	SelectedToppings []ToppingSelection `json:"selected_toppings,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

// OrderDetails captures what was sold, for receipts and reporting.
type OrderDetails struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	ShippingAmount  int64       `json:"shipping_amount,omitempty"`
}

// Transaction is one ledger record. Amount is the net recorded value:
// the sale price for sales, the net outflow for expenses (paid out minus
// change received back). PaymentAmount is the gross cash tendered.
type Transaction struct {
	ID               string           `json:"id"`
	Type             TransactionType  `json:"type"`
	Amount           int64            `json:"amount"`
	PaymentAmount    int64            `json:"payment_amount"`
	Change           int64            `json:"change"`
	Timestamp        time.Time        `json:"timestamp"`
	Customer         string           `json:"customer"`
	PaymentMethod    PaymentMethod    `json:"payment_method"`
	PaymentBreakdown []BreakdownEntry `json:"payment_breakdown,omitempty"`
	ChangeBreakdown  []BreakdownEntry `json:"change_breakdown,omitempty"`
	OrderDetails     *OrderDetails    `json:"order_details,omitempty"`
}

// IsCash reports whether the transaction touches the till.
func (t *Transaction) IsCash() bool {
	return t.PaymentMethod == PaymentCash
}

// Validate checks the entry-time invariants. Violations reject the
// transaction before any ledger or till mutation happens.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Customer) == "" {
		return ErrMissingCustomer
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.Type != TransactionSale && t.Type != TransactionExpense {
		return ErrInvalidTransactionType
	}
	if t.PaymentMethod != PaymentCash && t.PaymentMethod != PaymentOnline {
		return ErrInvalidPaymentMethod
	}

	if !t.IsCash() {
		return nil
	}

	switch t.Type {
	case TransactionSale:
		if t.PaymentAmount < t.Amount {
			return ErrInsufficientPayment
		}
		if t.Change != t.PaymentAmount-t.Amount {
			return ErrChangeMismatch
		}
	case TransactionExpense:
		if t.Amount != t.PaymentAmount-t.Change {
			return ErrChangeMismatch
		}
	}

	if t.Change > 0 && BreakdownTotal(t.ChangeBreakdown) != t.Change {
		return ErrChangeMismatch
	}
	return nil
}
