package usecase

import (
	"context"
	"time"

	"github.com/dnoor/kasir/internal/domain"
)

// RecordTransactionInput describes a sale or expense being entered.
//
// For a sale, Amount is the price of goods and PaymentAmount the cash
// tendered; the change breakdown is always computed here against the
// live till. For an expense, Amount is the gross cash paid out and
// Change the cash received back; the net outflow is recorded.
type RecordTransactionInput struct {
	Type             domain.TransactionType
	Amount           int64
	PaymentAmount    int64
	Change           int64
	Customer         string
	PaymentMethod    domain.PaymentMethod
	PaymentBreakdown []domain.BreakdownEntry
	ChangeBreakdown  []domain.BreakdownEntry
	OrderDetails     *domain.OrderDetails
}

// RecordTransaction validates, reconciles and appends one transaction.
// The ledger append and the till update happen under one lock; any
// validation or reconciliation failure leaves both untouched.
func (uc *RegisterUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateCustomer(input.Customer); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}

	var tx *domain.Transaction
	var err error
	switch input.Type {
	case domain.TransactionSale:
		tx, err = uc.buildSaleLocked(input)
	case domain.TransactionExpense:
		tx, err = uc.buildExpenseLocked(input)
	default:
		return nil, domain.ErrInvalidTransactionType
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if err := uc.active.till.ApplyTransaction(tx); err != nil {
		return nil, err
	}

	uc.active.transactions = append(uc.active.transactions, *tx)

	uc.logger.Info().
		Str("id", tx.ID).
		Str("type", string(tx.Type)).
		Str("method", string(tx.PaymentMethod)).
		Int64("amount", tx.Amount).
		Msg("transaction recorded")
	if uc.metrics != nil {
		uc.metrics.TransactionsRecorded.WithLabelValues(string(tx.Type), string(tx.PaymentMethod)).Inc()
		uc.metrics.TransactionAmount.WithLabelValues(string(tx.Type)).Observe(float64(tx.Amount))
	}

	uc.persistLocked(ctx)
	return tx, nil
}

func (uc *RegisterUseCase) buildSaleLocked(input RecordTransactionInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Type:          domain.TransactionSale,
		Amount:        input.Amount,
		Timestamp:     time.Now().UTC(),
		Customer:      input.Customer,
		PaymentMethod: input.PaymentMethod,
		OrderDetails:  input.OrderDetails,
	}

	if input.PaymentMethod != domain.PaymentCash {
		tx.PaymentAmount = input.Amount
		return tx, nil
	}

	if input.PaymentAmount < input.Amount {
		return nil, domain.ErrInsufficientPayment
	}
	if domain.BreakdownTotal(input.PaymentBreakdown) != input.PaymentAmount {
		return nil, domain.ErrPaymentMismatch
	}

	changeAmount := input.PaymentAmount - input.Amount
	changeBreakdown, err := domain.CalculateChange(changeAmount, uc.active.till.Current())
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ChangeImpossible.Inc()
		}
		return nil, err
	}

	tx.PaymentAmount = input.PaymentAmount
	tx.Change = changeAmount
	tx.PaymentBreakdown = input.PaymentBreakdown
	tx.ChangeBreakdown = changeBreakdown
	return tx, nil
}

func (uc *RegisterUseCase) buildExpenseLocked(input RecordTransactionInput) (*domain.Transaction, error) {
	// Net outflow must stay positive after change received back.
	if input.Change < 0 || input.Change >= input.Amount {
		return nil, domain.ErrInvalidAmount
	}

	tx := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Type:          domain.TransactionExpense,
		Amount:        input.Amount - input.Change,
		PaymentAmount: input.Amount,
		Change:        input.Change,
		Timestamp:     time.Now().UTC(),
		Customer:      input.Customer,
		PaymentMethod: input.PaymentMethod,
	}

	if input.PaymentMethod != domain.PaymentCash {
		tx.PaymentAmount = tx.Amount
		tx.Change = 0
		return tx, nil
	}

	if domain.BreakdownTotal(input.PaymentBreakdown) != input.Amount {
		return nil, domain.ErrPaymentMismatch
	}
	if domain.BreakdownTotal(input.ChangeBreakdown) != input.Change {
		return nil, domain.ErrChangeMismatch
	}

	tx.PaymentBreakdown = input.PaymentBreakdown
	tx.ChangeBreakdown = input.ChangeBreakdown
	return tx, nil
}

// DeleteTransaction removes a transaction from the ledger and applies
// the exact inverse of its till effect.
func (uc *RegisterUseCase) DeleteTransaction(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return domain.ErrNoActiveSession
	}

	idx := -1
	for i := range uc.active.transactions {
		if uc.active.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrTransactionNotFound
	}

	tx := uc.active.transactions[idx]
	if err := uc.active.till.ReverseTransaction(&tx); err != nil {
		return err
	}
	uc.active.transactions = append(uc.active.transactions[:idx], uc.active.transactions[idx+1:]...)

	uc.logger.Info().Str("id", id).Str("type", string(tx.Type)).Msg("transaction deleted")
	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.WithLabelValues(string(tx.Type)).Inc()
	}

	uc.persistLocked(ctx)
	return nil
}

// ListTransactions returns a copy of the active session's ledger in
// insertion order.
func (uc *RegisterUseCase) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	return append([]domain.Transaction(nil), uc.active.transactions...), nil
}

// GetTransaction returns one ledger record by ID.
func (uc *RegisterUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	for i := range uc.active.transactions {
		if uc.active.transactions[i].ID == id {
			tx := uc.active.transactions[i]
			return &tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}
