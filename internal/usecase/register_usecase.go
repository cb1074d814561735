package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/infrastructure/metrics"
)

// session is the in-memory state of the active register day. It is owned
// exclusively by RegisterUseCase and only ever touched under its mutex.
type session struct {
	date           string
	initialBalance int64
	till           *domain.Till
	transactions   []domain.Transaction
	pending        []domain.PendingTransaction
	debts          []domain.DebtTransaction
}

// RegisterUseCase owns the daily session lifecycle and every ledger/till
// mutation. A single mutex serializes mutations so a ledger change and
// its till reconciliation are observed as one unit; the in-memory session
// stays authoritative even when snapshot persistence fails.
type RegisterUseCase struct {
	mu sync.Mutex

	dailyRepo DailyDataRepository
	auditRepo AuditRepository
	txManager TransactionManager
	idGen     IDGenerator
	retrier   Retrier
	cache     Cache
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	active *session

	persistFailures int64
	lastPersistErr  error
}

// NewRegisterUseCase creates a new RegisterUseCase. Cache and metrics may
// be nil.
func NewRegisterUseCase(
	dailyRepo DailyDataRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *RegisterUseCase {
	return &RegisterUseCase{
		dailyRepo: dailyRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		idGen:     idGen,
		retrier:   retrier,
		cache:     cache,
		logger:    logger,
		metrics:   m,
	}
}

// InitializeInput seeds a new daily session.
type InitializeInput struct {
	Date          string
	Denominations domain.DenominationSet
}

// Initialize starts a session for a date from an opening denomination
// count. The opening float must total more than zero.
func (uc *RegisterUseCase) Initialize(ctx context.Context, input InitializeInput) (*domain.DailyData, error) {
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active != nil {
		return nil, domain.ErrSessionActive
	}

	till, err := domain.NewTill(input.Denominations)
	if err != nil {
		return nil, err
	}
	if till.CashOnHand() <= 0 {
		return nil, domain.ErrEmptyOpeningFloat
	}

	uc.active = &session{
		date:           input.Date,
		initialBalance: till.CashOnHand(),
		till:           till,
	}

	uc.logger.Info().Str("date", input.Date).Int64("opening_balance", uc.active.initialBalance).Msg("register session initialized")
	if uc.metrics != nil {
		uc.metrics.SessionsInitialized.Inc()
	}

	uc.persistLocked(ctx)
	return uc.snapshotLocked(), nil
}

// Continue resumes a previously persisted day, loading the till, ledger
// and queues wholesale.
func (uc *RegisterUseCase) Continue(ctx context.Context, date string) (*domain.DailyData, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active != nil {
		return nil, domain.ErrSessionActive
	}

	data, err := uc.dailyRepo.Get(ctx, date)
	if err != nil {
		return nil, err
	}

	initial := data.InitialDenominations
	if len(initial) == 0 {
		// Days persisted before initial snapshots were stored carry only
		// the live counts; treat those as the baseline for edits.
		initial = data.Denominations
	}
	till, err := domain.RestoreTill(initial, data.Denominations)
	if err != nil {
		return nil, err
	}

	uc.active = &session{
		date:           date,
		initialBalance: data.InitialBalance,
		till:           till,
		transactions:   append([]domain.Transaction(nil), data.Transactions...),
		pending:        append([]domain.PendingTransaction(nil), data.PendingTransactions...),
		debts:          append([]domain.DebtTransaction(nil), data.DebtTransactions...),
	}

	uc.logger.Info().Str("date", date).Int("transactions", len(uc.active.transactions)).Msg("register session continued")
	if uc.metrics != nil {
		uc.metrics.SessionsContinued.Inc()
	}

	return uc.snapshotLocked(), nil
}

// Reset clears only the transaction ledger of the active session; the
// till and balances stay as they are.
func (uc *RegisterUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return domain.ErrNoActiveSession
	}

	uc.active.transactions = nil
	uc.logger.Info().Str("date", uc.active.date).Msg("transaction ledger reset")

	uc.persistLocked(ctx)
	return nil
}

// Close detaches the active session without destroying anything. The day
// remains persisted and can be continued later.
func (uc *RegisterUseCase) Close(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return domain.ErrNoActiveSession
	}

	uc.persistLocked(ctx)
	uc.active = nil
	return nil
}

// DeleteDay destroys all persisted state for a date. If that date is the
// active session, the till and ledger reset and the register returns to
// the uninitialized state, pending and debt queues included.
func (uc *RegisterUseCase) DeleteDay(ctx context.Context, date string) error {
	if err := domain.ValidateDate(date); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.dailyRepo.Delete(ctx, date); err != nil {
		return err
	}
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, dailyCacheKey(date))
	}

	if uc.active != nil && uc.active.date == date {
		uc.active = nil
	}

	uc.logger.Info().Str("date", date).Msg("daily data deleted")
	if uc.metrics != nil {
		uc.metrics.DaysDeleted.Inc()
	}
	return nil
}

// ListDates returns the persisted session dates, most recent first.
func (uc *RegisterUseCase) ListDates(ctx context.Context) ([]string, error) {
	dates, err := uc.dailyRepo.ListDates(ctx)
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Status is the derived view of the active session.
type Status struct {
	Active          bool
	Date            string
	InitialBalance  int64
	CurrentBalance  int64
	CashOnHand      int64
	Denominations   domain.DenominationSet
	Transactions    int
	Pending         int
	Debts           int
	PersistFailures int64
	LastPersistErr  string
}

// Status reports the active session's derived balances. Both totals are
// recomputed from the ledger and the till on every call; nothing here is
// stored state that could drift.
func (uc *RegisterUseCase) Status(ctx context.Context) Status {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st := Status{PersistFailures: uc.persistFailures}
	if uc.lastPersistErr != nil {
		st.LastPersistErr = uc.lastPersistErr.Error()
	}
	if uc.active == nil {
		return st
	}

	st.Active = true
	st.Date = uc.active.date
	st.InitialBalance = uc.active.initialBalance
	st.CurrentBalance = domain.CurrentBalance(uc.active.initialBalance, uc.active.transactions)
	st.CashOnHand = uc.active.till.CashOnHand()
	st.Denominations = uc.active.till.Current()
	st.Transactions = len(uc.active.transactions)
	st.Pending = len(uc.active.pending)
	st.Debts = len(uc.active.debts)
	return st
}

// PreviewChange runs the change calculator against the live till without
// recording anything.
func (uc *RegisterUseCase) PreviewChange(ctx context.Context, amount int64) ([]domain.BreakdownEntry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	if uc.metrics != nil {
		uc.metrics.ChangeCalculations.Inc()
	}
	breakdown, err := domain.CalculateChange(amount, uc.active.till.Current())
	if err != nil && uc.metrics != nil {
		uc.metrics.ChangeImpossible.Inc()
	}
	return breakdown, err
}

// snapshotLocked builds the persistable DailyData view of the session.
// Callers must hold the mutex.
func (uc *RegisterUseCase) snapshotLocked() *domain.DailyData {
	s := uc.active
	return &domain.DailyData{
		Date:                 s.date,
		InitialBalance:       s.initialBalance,
		FinalBalance:         domain.CurrentBalance(s.initialBalance, s.transactions),
		InitialDenominations: s.till.Initial(),
		Denominations:        s.till.Current(),
		Transactions:         append([]domain.Transaction(nil), s.transactions...),
		PendingTransactions:  append([]domain.PendingTransaction(nil), s.pending...),
		DebtTransactions:     append([]domain.DebtTransaction(nil), s.debts...),
	}
}

// persistLocked rewrites the whole daily snapshot. The in-memory session
// is authoritative: a failed save is retried with backoff, then logged
// and counted, never rolled back into memory. Callers must hold the
// mutex.
func (uc *RegisterUseCase) persistLocked(ctx context.Context) {
	data := uc.snapshotLocked()

	err := uc.retrier.Retry(ctx, func() error {
		return uc.dailyRepo.Save(ctx, data)
	})
	if err != nil {
		uc.persistFailures++
		uc.lastPersistErr = err
		uc.logger.Error().Err(err).Str("date", data.Date).Int64("failures", uc.persistFailures).
			Msg("daily snapshot persistence failed; in-memory state remains authoritative")
		if uc.metrics != nil {
			uc.metrics.SnapshotSaveFailures.Inc()
		}
		return
	}

	uc.lastPersistErr = nil
	if uc.metrics != nil {
		uc.metrics.SnapshotSaves.Inc()
		uc.metrics.CashOnHand.Set(float64(data.Denominations.Total()))
		uc.metrics.CurrentBalance.Set(float64(data.FinalBalance))
	}
	uc.cacheSnapshot(ctx, data)
}

func dailyCacheKey(date string) string {
	return "daily:" + date
}

const dailyCacheTTL = 24 * time.Hour
