package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
	"github.com/dnoor/kasir/internal/usecase/mocks"
)

type registerFixture struct {
	uc        *usecase.RegisterUseCase
	dailyRepo *mocks.MockDailyDataRepository
	auditRepo *mocks.MockAuditRepository
	txManager *mocks.MockTransactionManager
	cache     *mocks.MockCache
}

func newRegisterFixture() *registerFixture {
	f := &registerFixture{
		dailyRepo: mocks.NewMockDailyDataRepository(),
		auditRepo: mocks.NewMockAuditRepository(),
		txManager: mocks.NewMockTransactionManager(),
		cache:     mocks.NewMockCache(),
	}
	f.uc = usecase.NewRegisterUseCase(
		f.dailyRepo,
		f.auditRepo,
		f.txManager,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		f.cache,
		zerolog.Nop(),
		nil,
	)
	return f
}

func openingFloat(counts map[int64]int64) domain.DenominationSet {
	set := domain.RupiahDenominations()
	for i := range set {
		set[i].Count = counts[set[i].Value]
	}
	return set
}

func mustInitialize(t *testing.T, f *registerFixture, date string, counts map[int64]int64) {
	t.Helper()
	_, err := f.uc.Initialize(context.Background(), usecase.InitializeInput{
		Date:          date,
		Denominations: openingFloat(counts),
	})
	require.NoError(t, err)
}

func TestRegisterUseCase_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("starts session and persists snapshot", func(t *testing.T) {
		f := newRegisterFixture()

		day, err := f.uc.Initialize(ctx, usecase.InitializeInput{
			Date:          "2026-08-28",
			Denominations: openingFloat(map[int64]int64{50000: 1, 20000: 1}),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(70000), day.InitialBalance)
		assert.Equal(t, int64(70000), day.FinalBalance)

		persisted, err := f.dailyRepo.Get(ctx, "2026-08-28")
		require.NoError(t, err)
		assert.Equal(t, int64(70000), persisted.Denominations.Total())
	})

	t.Run("rejects empty opening float", func(t *testing.T) {
		f := newRegisterFixture()

		_, err := f.uc.Initialize(ctx, usecase.InitializeInput{
			Date:          "2026-08-28",
			Denominations: openingFloat(nil),
		})
		assert.ErrorIs(t, err, domain.ErrEmptyOpeningFloat)
	})

	t.Run("rejects second session", func(t *testing.T) {
		f := newRegisterFixture()
		mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

		_, err := f.uc.Initialize(ctx, usecase.InitializeInput{
			Date:          "2026-08-29",
			Denominations: openingFloat(map[int64]int64{50000: 1}),
		})
		assert.ErrorIs(t, err, domain.ErrSessionActive)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		f := newRegisterFixture()

		_, err := f.uc.Initialize(ctx, usecase.InitializeInput{
			Date:          "28-08-2026",
			Denominations: openingFloat(map[int64]int64{50000: 1}),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestRegisterUseCase_CashSaleReconciliation(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	// Open with Rp70.000: one 50.000 and one 20.000 note.
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1, 20000: 1})

	tx, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
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
	assert.Equal(t, int64(20000), tx.Change)
	require.Len(t, tx.ChangeBreakdown, 1)
	assert.Equal(t, int64(20000), tx.ChangeBreakdown[0].Value)

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(100000), st.CurrentBalance)
	assert.Equal(t, int64(100000), st.CashOnHand)

	fifty, _ := st.Denominations.CountOf(50000)
	twenty, _ := st.Denominations.CountOf(20000)
	assert.Equal(t, int64(2), fifty)
	assert.Equal(t, int64(0), twenty)
}

func TestRegisterUseCase_OnlineSaleLeavesTillAlone(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

	_, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type:          domain.TransactionSale,
		Amount:        30000,
		Customer:      "Sari",
		PaymentMethod: domain.PaymentOnline,
	})
	require.NoError(t, err)

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(130000), st.CurrentBalance, "online sale still raises the balance")
	assert.Equal(t, int64(100000), st.CashOnHand, "but cash on hand is untouched")
}

func TestRegisterUseCase_CashExpense(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2, 10000: 3})

	// Pay a supplier Rp50.000 and receive Rp7.000 back.
	tx, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type:          domain.TransactionExpense,
		Amount:        50000,
		Change:        7000,
		Customer:      "supplier",
		PaymentMethod: domain.PaymentCash,
		PaymentBreakdown: []domain.BreakdownEntry{
			{Value: 50000, Count: 1},
		},
		ChangeBreakdown: []domain.BreakdownEntry{
			{Value: 5000, Count: 1},
			{Value: 2000, Count: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(43000), tx.Amount, "ledger records the net outflow")

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(130000-43000), st.CashOnHand)
	assert.Equal(t, int64(130000-43000), st.CurrentBalance)
}

func TestRegisterUseCase_RecordTransaction_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.RecordTransactionInput
		wantErr error
	}{
		{
			name: "insufficient payment",
			input: usecase.RecordTransactionInput{
				Type: domain.TransactionSale, Amount: 30000, PaymentAmount: 20000,
				Customer: "Budi", PaymentMethod: domain.PaymentCash,
				PaymentBreakdown: []domain.BreakdownEntry{{Value: 20000, Count: 1}},
			},
			wantErr: domain.ErrInsufficientPayment,
		},
		{
			name: "payment breakdown does not sum to payment",
			input: usecase.RecordTransactionInput{
				Type: domain.TransactionSale, Amount: 30000, PaymentAmount: 50000,
				Customer: "Budi", PaymentMethod: domain.PaymentCash,
				PaymentBreakdown: []domain.BreakdownEntry{{Value: 20000, Count: 1}},
			},
			wantErr: domain.ErrPaymentMismatch,
		},
		{
			name: "unknown transaction type",
			input: usecase.RecordTransactionInput{
				Type: "refund", Amount: 1000, Customer: "Budi",
				PaymentMethod: domain.PaymentCash,
			},
			wantErr: domain.ErrInvalidTransactionType,
		},
		{
			name: "blank customer",
			input: usecase.RecordTransactionInput{
				Type: domain.TransactionSale, Amount: 1000, PaymentAmount: 1000,
				Customer: "   ", PaymentMethod: domain.PaymentCash,
			},
			wantErr: domain.ErrMissingCustomer,
		},
		{
			name: "expense change swallows the whole amount",
			input: usecase.RecordTransactionInput{
				Type: domain.TransactionExpense, Amount: 10000, Change: 10000,
				Customer: "supplier", PaymentMethod: domain.PaymentCash,
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegisterFixture()
			mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2, 20000: 2, 10000: 2})

			_, err := f.uc.RecordTransaction(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)

			st := f.uc.Status(ctx)
			assert.Equal(t, 0, st.Transactions, "failed record must not touch the ledger")
			assert.Equal(t, int64(160000), st.CashOnHand, "failed record must not touch the till")
		})
	}
}

func TestRegisterUseCase_ChangeImpossibleRejectsSale(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	// Till holds only 50.000 notes; Rp20.000 change cannot be assembled.
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 2})

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
	assert.ErrorIs(t, err, domain.ErrChangeImpossible)

	st := f.uc.Status(ctx)
	assert.Equal(t, 0, st.Transactions)
	assert.Equal(t, int64(100000), st.CashOnHand)
}

func TestRegisterUseCase_DeleteTransactionRestoresTill(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1, 20000: 1})

	before := f.uc.Status(ctx)

	tx, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
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

	require.NoError(t, f.uc.DeleteTransaction(ctx, tx.ID))

	after := f.uc.Status(ctx)
	assert.Equal(t, before.CurrentBalance, after.CurrentBalance)
	assert.Equal(t, before.CashOnHand, after.CashOnHand)
	assert.Equal(t, before.Denominations, after.Denominations)
	assert.Equal(t, 0, after.Transactions)

	err = f.uc.DeleteTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestRegisterUseCase_CloseAndContinue(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
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

	require.NoError(t, f.uc.Close(ctx))
	assert.False(t, f.uc.Status(ctx).Active)

	day, err := f.uc.Continue(ctx, "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, day.Transactions, 1)

	st := f.uc.Status(ctx)
	assert.True(t, st.Active)
	assert.Equal(t, int64(70000), st.InitialBalance)
	assert.Equal(t, int64(100000), st.CurrentBalance)
	assert.Equal(t, int64(100000), st.CashOnHand)
}

func TestRegisterUseCase_Continue_NotFound(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.uc.Continue(context.Background(), "2026-08-28")
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestRegisterUseCase_ResetClearsLedgerOnly(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
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

	require.NoError(t, f.uc.Reset(ctx))

	st := f.uc.Status(ctx)
	assert.Equal(t, 0, st.Transactions)
	assert.Equal(t, int64(100000), st.CashOnHand, "reset leaves the till untouched")
	assert.Equal(t, int64(70000), st.CurrentBalance, "balance falls back to the opening amount")
}

func TestRegisterUseCase_DeleteDay(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1})

	require.NoError(t, f.uc.DeleteDay(ctx, "2026-08-28"))

	st := f.uc.Status(ctx)
	assert.False(t, st.Active, "deleting the active day returns to uninitialized")

	_, err := f.dailyRepo.Get(ctx, "2026-08-28")
	assert.ErrorIs(t, err, domain.ErrDayNotFound)

	// A fresh day can now be initialized.
	mustInitialize(t, f, "2026-08-29", map[int64]int64{50000: 1})
	assert.True(t, f.uc.Status(ctx).Active)
}

func TestRegisterUseCase_ListDates(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	for _, date := range []string{"2026-08-26", "2026-08-28", "2026-08-27"} {
		mustInitialize(t, f, date, map[int64]int64{50000: 1})
		require.NoError(t, f.uc.Close(ctx))
	}

	dates, err := f.uc.ListDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-28", "2026-08-27", "2026-08-26"}, dates)
}

func TestRegisterUseCase_PersistFailureSurfacedInStatus(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{50000: 1, 20000: 1})

	f.dailyRepo.SaveFunc = func(ctx context.Context, data *domain.DailyData) error {
		return errors.New("connection refused")
	}

	tx, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type:          domain.TransactionSale,
		Amount:        30000,
		PaymentAmount: 50000,
		Customer:      "Budi",
		PaymentMethod: domain.PaymentCash,
		PaymentBreakdown: []domain.BreakdownEntry{
			{Value: 50000, Count: 1},
		},
	})
	require.NoError(t, err, "recording succeeds even when persistence fails")
	require.NotNil(t, tx)

	st := f.uc.Status(ctx)
	assert.Equal(t, 1, st.Transactions, "in-memory ledger is authoritative")
	assert.Equal(t, int64(1), st.PersistFailures)
	assert.Contains(t, st.LastPersistErr, "connection refused")
}

func TestRegisterUseCase_PreviewChange(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()
	mustInitialize(t, f, "2026-08-28", map[int64]int64{20000: 1, 5000: 2})

	breakdown, err := f.uc.PreviewChange(ctx, 25000)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), domain.BreakdownTotal(breakdown))

	st := f.uc.Status(ctx)
	assert.Equal(t, int64(30000), st.CashOnHand, "preview must not mutate the till")

	_, err = f.uc.PreviewChange(ctx, 1700)
	assert.ErrorIs(t, err, domain.ErrChangeImpossible)
}

func TestRegisterUseCase_NoActiveSession(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture()

	_, err := f.uc.RecordTransaction(ctx, usecase.RecordTransactionInput{
		Type: domain.TransactionSale, Amount: 1000, PaymentAmount: 1000,
		Customer: "Budi", PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	assert.ErrorIs(t, f.uc.Reset(ctx), domain.ErrNoActiveSession)
	assert.ErrorIs(t, f.uc.Close(ctx), domain.ErrNoActiveSession)
	assert.ErrorIs(t, f.uc.DeleteTransaction(ctx, "x"), domain.ErrNoActiveSession)

	_, err = f.uc.PreviewChange(ctx, 1000)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}
