package usecase

import (
	"context"
	"time"

	"github.com/dnoor/kasir/internal/domain"
)

// DailyDataRepository defines data access for daily session snapshots.
// Save rewrites the whole snapshot for a date; that is the durability
// contract, not an incremental log.
type DailyDataRepository interface {
	Save(ctx context.Context, data *domain.DailyData) error
	SaveTx(ctx context.Context, tx Transaction, data *domain.DailyData) error
	Get(ctx context.Context, date string) (*domain.DailyData, error)
	Delete(ctx context.Context, date string) error
	ListDates(ctx context.Context) ([]string, error)
	GetRange(ctx context.Context, from, to string) ([]*domain.DailyData, error)
}

// AuditRepository defines data access for balance modification records.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, mod *domain.BalanceModification) error
	ListByDate(ctx context.Context, date string, limit, offset int) ([]*domain.BalanceModification, error)
}

// ProductRepository defines data access for the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
