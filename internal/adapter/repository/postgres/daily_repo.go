package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// DailyDataRepository persists whole-day register snapshots. Each day is
// one row keyed by date; the till, ledger and queues are stored as jsonb
// and rewritten wholesale on every save.
type DailyDataRepository struct {
	pool *pgxpool.Pool
}

// NewDailyDataRepository creates a new DailyDataRepository.
func NewDailyDataRepository(pool *pgxpool.Pool) *DailyDataRepository {
	return &DailyDataRepository{pool: pool}
}

const saveDailyQuery = `
	INSERT INTO daily_data (
		date, initial_balance, final_balance,
		initial_denominations, denominations,
		transactions, pending_transactions, debt_transactions,
		updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (date) DO UPDATE SET
		initial_balance = EXCLUDED.initial_balance,
		final_balance = EXCLUDED.final_balance,
		initial_denominations = EXCLUDED.initial_denominations,
		denominations = EXCLUDED.denominations,
		transactions = EXCLUDED.transactions,
		pending_transactions = EXCLUDED.pending_transactions,
		debt_transactions = EXCLUDED.debt_transactions,
		updated_at = now()
`

type dailyRow struct {
	initialDenominations []byte
	denominations        []byte
	transactions         []byte
	pending              []byte
	debts                []byte
}

func marshalDaily(data *domain.DailyData) (*dailyRow, error) {
	row := &dailyRow{}
	var err error
	if row.initialDenominations, err = json.Marshal(data.InitialDenominations); err != nil {
		return nil, err
	}
	if row.denominations, err = json.Marshal(data.Denominations); err != nil {
		return nil, err
	}
	if row.transactions, err = json.Marshal(data.Transactions); err != nil {
		return nil, err
	}
	if row.pending, err = json.Marshal(data.PendingTransactions); err != nil {
		return nil, err
	}
	if row.debts, err = json.Marshal(data.DebtTransactions); err != nil {
		return nil, err
	}
	return row, nil
}

// Save upserts the snapshot for a date.
func (r *DailyDataRepository) Save(ctx context.Context, data *domain.DailyData) error {
	row, err := marshalDaily(data)
	if err != nil {
		return fmt.Errorf("marshal daily snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx, saveDailyQuery,
		data.Date, data.InitialBalance, data.FinalBalance,
		row.initialDenominations, row.denominations,
		row.transactions, row.pending, row.debts,
	)
	return err
}

// SaveTx upserts the snapshot inside an existing transaction.
func (r *DailyDataRepository) SaveTx(ctx context.Context, tx usecase.Transaction, data *domain.DailyData) error {
	pgTx, ok := tx.(*Tx)
	if !ok {
		return errors.New("postgres: SaveTx requires a postgres transaction")
	}

	row, err := marshalDaily(data)
	if err != nil {
		return fmt.Errorf("marshal daily snapshot: %w", err)
	}

	_, err = pgTx.PgxTx().Exec(ctx, saveDailyQuery,
		data.Date, data.InitialBalance, data.FinalBalance,
		row.initialDenominations, row.denominations,
		row.transactions, row.pending, row.debts,
	)
	return err
}

const getDailyQuery = `
	SELECT date, initial_balance, final_balance,
	       initial_denominations, denominations,
	       transactions, pending_transactions, debt_transactions
	FROM daily_data
`

func scanDaily(row pgx.Row) (*domain.DailyData, error) {
	var data domain.DailyData
	var initialDenoms, denoms, transactions, pending, debts []byte

	err := row.Scan(
		&data.Date, &data.InitialBalance, &data.FinalBalance,
		&initialDenoms, &denoms, &transactions, &pending, &debts,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDayNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(initialDenoms, &data.InitialDenominations); err != nil {
		return nil, fmt.Errorf("unmarshal initial denominations: %w", err)
	}
	if err := json.Unmarshal(denoms, &data.Denominations); err != nil {
		return nil, fmt.Errorf("unmarshal denominations: %w", err)
	}
	if err := json.Unmarshal(transactions, &data.Transactions); err != nil {
		return nil, fmt.Errorf("unmarshal transactions: %w", err)
	}
	if err := json.Unmarshal(pending, &data.PendingTransactions); err != nil {
		return nil, fmt.Errorf("unmarshal pending transactions: %w", err)
	}
	if err := json.Unmarshal(debts, &data.DebtTransactions); err != nil {
		return nil, fmt.Errorf("unmarshal debt transactions: %w", err)
	}
	return &data, nil
}

// Get loads one day's snapshot.
func (r *DailyDataRepository) Get(ctx context.Context, date string) (*domain.DailyData, error) {
	row := r.pool.QueryRow(ctx, getDailyQuery+` WHERE date = $1`, date)
	return scanDaily(row)
}

// Delete removes a day's snapshot entirely.
func (r *DailyDataRepository) Delete(ctx context.Context, date string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM daily_data WHERE date = $1`, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDayNotFound
	}
	return nil
}

// ListDates returns every persisted date, unordered.
func (r *DailyDataRepository) ListDates(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT date FROM daily_data`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// GetRange loads the snapshots between two dates, inclusive.
func (r *DailyDataRepository) GetRange(ctx context.Context, from, to string) ([]*domain.DailyData, error) {
	rows, err := r.pool.Query(ctx, getDailyQuery+` WHERE date >= $1 AND date <= $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*domain.DailyData
	for rows.Next() {
		day, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
