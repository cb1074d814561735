package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dnoor/kasir/internal/domain"
)

// AddToBalance adds denominations to both the opening snapshot and the
// live till, and appends an audit record. The audit insert and the daily
// snapshot rewrite commit in one database transaction.
func (uc *RegisterUseCase) AddToBalance(ctx context.Context, added domain.DenominationSet) (*domain.BalanceModification, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	if added.Total() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	previous := uc.active.initialBalance
	amount, err := uc.active.till.AddToInitial(added)
	if err != nil {
		return nil, err
	}
	uc.active.initialBalance += amount

	mod := &domain.BalanceModification{
		ID:              uuid.NewString(),
		SessionDate:     uc.active.date,
		Type:            domain.BalanceModificationAdd,
		PreviousBalance: previous,
		NewBalance:      uc.active.initialBalance,
		Difference:      amount,
		Timestamp:       time.Now().UTC(),
	}

	if err := uc.commitBalanceChangeLocked(ctx, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// EditInitialBalance replaces the opening denomination snapshot. Only the
// per-value delta between the old and new snapshots is applied to the
// live till, so cash movement from transactions recorded since
// initialization is preserved.
func (uc *RegisterUseCase) EditInitialBalance(ctx context.Context, newInitial domain.DenominationSet) (*domain.BalanceModification, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.active == nil {
		return nil, domain.ErrNoActiveSession
	}

	previous := uc.active.initialBalance
	diff, err := uc.active.till.EditInitial(newInitial)
	if err != nil {
		return nil, err
	}
	uc.active.initialBalance += diff

	mod := &domain.BalanceModification{
		ID:              uuid.NewString(),
		SessionDate:     uc.active.date,
		Type:            domain.BalanceModificationEdit,
		PreviousBalance: previous,
		NewBalance:      uc.active.initialBalance,
		Difference:      diff,
		Timestamp:       time.Now().UTC(),
	}

	if err := uc.commitBalanceChangeLocked(ctx, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// commitBalanceChangeLocked writes the audit record and the rewritten
// daily snapshot atomically. Unlike ordinary snapshot persistence this is
// not fire-and-forget: losing an audit record would leave a balance
// change with no history, so a commit failure is returned to the caller
// (the in-memory till change stands either way).
func (uc *RegisterUseCase) commitBalanceChangeLocked(ctx context.Context, mod *domain.BalanceModification) error {
	data := uc.snapshotLocked()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.auditRepo.CreateTx(ctx, tx, mod); err != nil {
			return err
		}
		if err := uc.dailyRepo.SaveTx(ctx, tx, data); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		uc.persistFailures++
		uc.lastPersistErr = err
		uc.logger.Error().Err(err).Str("date", data.Date).Msg("balance modification commit failed")
		if uc.metrics != nil {
			uc.metrics.SnapshotSaveFailures.Inc()
		}
		return err
	}

	uc.lastPersistErr = nil
	if uc.metrics != nil {
		uc.metrics.SnapshotSaves.Inc()
		uc.metrics.BalanceModifications.WithLabelValues(string(mod.Type)).Inc()
	}
	uc.cacheSnapshot(ctx, data)

	uc.logger.Info().
		Str("type", string(mod.Type)).
		Int64("previous", mod.PreviousBalance).
		Int64("new", mod.NewBalance).
		Msg("opening balance modified")
	return nil
}

// ListBalanceModifications returns the audit history for the active
// session's date, newest first.
func (uc *RegisterUseCase) ListBalanceModifications(ctx context.Context, limit, offset int) ([]*domain.BalanceModification, error) {
	uc.mu.Lock()
	date := ""
	if uc.active != nil {
		date = uc.active.date
	}
	uc.mu.Unlock()

	if date == "" {
		return nil, domain.ErrNoActiveSession
	}

	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.auditRepo.ListByDate(ctx, date, limit, offset)
}
