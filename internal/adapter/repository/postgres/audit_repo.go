package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// AuditRepository persists balance modification records. The log is
// append-only history; balances are always recomputed from the ledger,
// never read back from here.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const insertModificationQuery = `
	INSERT INTO balance_modifications (
		id, session_date, type, previous_balance, new_balance,
		difference, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// CreateTx appends one record inside an existing transaction. An audit
// row only ever lands together with the snapshot it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, mod *domain.BalanceModification) error {
	pgTx, ok := tx.(*Tx)
	if !ok {
		return errors.New("postgres: CreateTx requires a postgres transaction")
	}

	_, err := pgTx.PgxTx().Exec(ctx, insertModificationQuery,
		mod.ID, mod.SessionDate, string(mod.Type),
		mod.PreviousBalance, mod.NewBalance, mod.Difference, mod.Timestamp,
	)
	return err
}

// ListByDate returns the modification history for one session date,
// newest first.
func (r *AuditRepository) ListByDate(ctx context.Context, date string, limit, offset int) ([]*domain.BalanceModification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_date, type, previous_balance, new_balance,
		       difference, created_at
		FROM balance_modifications
		WHERE session_date = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, date, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []*domain.BalanceModification
	for rows.Next() {
		var mod domain.BalanceModification
		var modType string
		err := rows.Scan(
			&mod.ID, &mod.SessionDate, &modType,
			&mod.PreviousBalance, &mod.NewBalance,
			&mod.Difference, &mod.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		mod.Type = domain.BalanceModificationType(modType)
		mods = append(mods, &mod)
	}
	return mods, rows.Err()
}
