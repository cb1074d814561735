package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

func TestRegisterUseCase_PendingQueue(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

	pending, err := f.uc.AddPending(ctx, usecase.AddPendingInput{
		Customer: "Budi",
		Amount:   15000,
		OrderDetails: &domain.OrderDetails{
			Items: []domain.OrderItem{{Name: "Es Teh", Quantity: 3, Price: 5000}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, pending.ID)

	list, err := f.uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Budi", list[0].Customer)

	// Continuing hands the order back and drops it from the queue; the
	// ledger is untouched until the sale is actually recorded.
	got, err := f.uc.ContinuePending(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, got.ID)

	list, err = f.uc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, f.uc.Status(ctx).Transactions)

	_, err = f.uc.ContinuePending(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)
}

func TestRegisterUseCase_RemovePending(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

	pending, err := f.uc.AddPending(ctx, usecase.AddPendingInput{Customer: "Sari", Amount: 8000})
	require.NoError(t, err)

	require.NoError(t, f.uc.RemovePending(ctx, pending.ID))
	assert.ErrorIs(t, f.uc.RemovePending(ctx, pending.ID), domain.ErrPendingNotFound)
}

func TestRegisterUseCase_DebtQueue(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

	debt, err := f.uc.AddDebt(ctx, usecase.AddDebtInput{Customer: "Budi", Amount: 25000})
	require.NoError(t, err)

	debts, err := f.uc.ListDebts(ctx)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, int64(25000), debts[0].Amount)

	require.NoError(t, f.uc.RemoveDebt(ctx, debt.ID))
	assert.ErrorIs(t, f.uc.RemoveDebt(ctx, debt.ID), domain.ErrDebtNotFound)
}

func TestRegisterUseCase_QueuesSurviveContinue(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

	_, err := f.uc.AddPending(ctx, usecase.AddPendingInput{Customer: "Budi", Amount: 15000})
	require.NoError(t, err)
	_, err = f.uc.AddDebt(ctx, usecase.AddDebtInput{Customer: "Sari", Amount: 25000})
	require.NoError(t, err)

	require.NoError(t, f.uc.Close(ctx))
	_, err = f.uc.Continue(ctx, "2026-08-28")
	require.NoError(t, err)

	st := f.uc.Status(ctx)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 1, st.Debts)
}

func TestRegisterUseCase_QueuesRequireSession(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	_, err := f.uc.AddPending(ctx, usecase.AddPendingInput{Customer: "Budi", Amount: 1000})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = f.uc.AddDebt(ctx, usecase.AddDebtInput{Customer: "Budi", Amount: 1000})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = f.uc.ListPending(ctx)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}
