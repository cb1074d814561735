package usecase

import (
	"context"
	"time"

	"github.com/dnoor/kasir/internal/domain"
)

// AddPendingInput describes an order taken but not yet paid.
type AddPendingInput struct {
	Customer     string
	Amount       int64
	OrderDetails *domain.OrderDetails
}

// AddPending queues a pending transaction on the active session.
func (uc *RegisterUseCase) AddPending(ctx context.Context, input AddPendingInput) (*domain.PendingTransaction, error) {
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

	pending := domain.PendingTransaction{
		ID:           uc.idGen.Generate(),
		Timestamp:    time.Now().UTC(),
		Customer:     input.Customer,
		Amount:       input.Amount,
		OrderDetails: input.OrderDetails,
	}
	uc.active.pending = append(uc.active.pending, pending)

	uc.persistLocked(ctx)
	return &pending, nil
}

// ListPending returns the active session's pending queue.
func (uc *RegisterUseCase) ListPending(ctx context.Context) ([]domain.PendingTransaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	return append([]domain.PendingTransaction(nil), uc.active.pending...), nil
}

// RemovePending drops a pending transaction without recording a sale.
func (uc *RegisterUseCase) RemovePending(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return domain.ErrNoActiveSession
	}
	if !uc.removePendingLocked(id) {
		return domain.ErrPendingNotFound
	}

	uc.persistLocked(ctx)
	return nil
}

// ContinuePending removes a pending transaction and hands it back so the
// caller can prefill a sale entry with it. The sale itself goes through
// RecordTransaction like any other.
func (uc *RegisterUseCase) ContinuePending(ctx context.Context, id string) (*domain.PendingTransaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}

	for i := range uc.active.pending {
		if uc.active.pending[i].ID == id {
			pending := uc.active.pending[i]
			uc.active.pending = append(uc.active.pending[:i], uc.active.pending[i+1:]...)
			uc.persistLocked(ctx)
			return &pending, nil
		}
	}
	return nil, domain.ErrPendingNotFound
}

func (uc *RegisterUseCase) removePendingLocked(id string) bool {
	for i := range uc.active.pending {
		if uc.active.pending[i].ID == id {
			uc.active.pending = append(uc.active.pending[:i], uc.active.pending[i+1:]...)
			return true
		}
	}
	return false
}

// AddDebtInput describes money owed by a customer.
type AddDebtInput struct {
	Customer string
	Amount   int64
}

// AddDebt queues a debt record on the active session.
func (uc *RegisterUseCase) AddDebt(ctx context.Context, input AddDebtInput) (*domain.DebtTransaction, error) {
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

	debt := domain.DebtTransaction{
		ID:        uc.idGen.Generate(),
		Timestamp: time.Now().UTC(),
		Customer:  input.Customer,
		Amount:    input.Amount,
	}
	uc.active.debts = append(uc.active.debts, debt)

	uc.persistLocked(ctx)
	return &debt, nil
}

// ListDebts returns the active session's debt queue.
func (uc *RegisterUseCase) ListDebts(ctx context.Context) ([]domain.DebtTransaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	return append([]domain.DebtTransaction(nil), uc.active.debts...), nil
}

// RemoveDebt settles or discards a debt record.
func (uc *RegisterUseCase) RemoveDebt(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return domain.ErrNoActiveSession
	}

	for i := range uc.active.debts {
		if uc.active.debts[i].ID == id {
			uc.active.debts = append(uc.active.debts[:i], uc.active.debts[i+1:]...)
			uc.persistLocked(ctx)
			return nil
		}
	}
	return domain.ErrDebtNotFound
}
