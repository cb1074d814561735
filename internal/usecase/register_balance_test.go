package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

func TestRegisterUseCase_AddToBalance(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

	mod, err := f.uc.AddToBalance(ctx, openingFloat(map[int64]int64{20000: 2}))
	require.NoError(t, err)
	assert.Equal(t, domain.BalanceModificationAdd, mod.Type)
	assert.Equal(t, int64(50000), mod.PreviousBalance)
	assert.Equal(t, int64(90000), mod.NewBalance)
	assert.Equal(t, int64(40000), mod.Difference)

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(90000), st.InitialBalance)
	assert.Equal(t, int64(90000), st.CashOnHand)

	require.Len(t, f.auditRepo.Records, 1)
	require.NotNil(t, f.txManager.Last)
	assert.True(t, f.txManager.Last.Committed, "audit and snapshot commit together")
}

func TestRegisterUseCase_AddToBalance_RejectsEmptyAddition(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

	_, err := f.uc.AddToBalance(ctx, openingFloat(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, f.auditRepo.Records)
}

func TestRegisterUseCase_EditInitialBalance(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	// Open 70.000, sell 30.000 paid with a 50.000 note: till is now two
	// 50.000 notes and the 20.000 is gone.
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1, 20000: 1})
	_, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type:          domain.TransactionSale,
		Amount:        30000,
		PaymentAmount: 50000,
		Customer:      "Budi",
		PaymentMethod: domain.PaymentCash,
		PaymentBreakdown: []domain.BreakdownEntry{
			{Value: 50000, Count: 1},
		},
	})
	require.NoError(t, err)

	// Correct the opening snapshot: it should have been two 20.000 notes.
	mod, err := f.uc.EditInitialBalance(ctx, openingFloat(map[int64]int64{50000: 1, 20000: 2}))
	require.NoError(t, err)
	assert.Equal(t, domain.BalanceModificationEdit, mod.Type)
	assert.Equal(t, int64(20000), mod.Difference)

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(90000), st.InitialBalance)
	// Only the +1 delta on the 20.000 slot hits the live till; the sale's
	// cash movement is preserved.
	assert.Equal(t, int64(120000), st.CashOnHand)
	twenty, _ := st.Denominations.CountOf(20000)
	assert.Equal(t, int64(1), twenty)
}

func TestRegisterUseCase_EditInitialBalance_CannotStripSpentCash(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1, 20000: 1})

	// Spend the 20.000 as change.
	_, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type:          domain.TransactionSale,
		Amount:        30000,
		PaymentAmount: 50000,
		Customer:      "Budi",
		PaymentMethod: domain.PaymentCash,
		PaymentBreakdown: []domain.BreakdownEntry{
			{Value: 50000, Count: 1},
		},
	})
	require.NoError(t, err)

	// Claiming the opening never had the 20.000 would drive its live count
	// below zero.
	_, err = f.uc.EditInitialBalance(ctx, openingFloat(map[int64]int64{50000: 1, 20000: 2, 10000: 0}))
	require.NoError(t, err)

	_, err = f.uc.EditInitialBalance(ctx, openingFloat(map[int64]int64{50000: 1}))
	assert.ErrorIs(t, err, domain.ErrInsufficientDenominations)
}

func TestRegisterUseCase_BalanceCommitFailureReturned(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

	f.auditRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, mod *domain.BalanceModification) error {
		return errors.New("deadlock detected")
	}

	_, err := f.uc.AddToBalance(ctx, openingFloat(map[int64]int64{20000: 1}))
	require.Error(t, err)

	// The in-memory change stands; the failure is surfaced.
	st := f.uc.Status(ctx)
	assert.Equal(t, int64(70000), st.InitialBalance)
	assert.Equal(t, int64(1), st.PersistFailures)
}

func TestRegisterUseCase_ListBalanceModifications(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

	_, err := f.uc.AddToBalance(ctx, openingFloat(map[int64]int64{20000: 1}))
	require.NoError(t, err)

	mods, err := f.uc.ListBalanceModifications(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mods, 1)
}

func TestRegisterUseCase_BalanceOpsRequireSession(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	_, err := f.uc.AddToBalance(ctx, openingFloat(map[int64]int64{20000: 1}))
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = f.uc.EditInitialBalance(ctx, openingFloat(map[int64]int64{20000: 1}))
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}
