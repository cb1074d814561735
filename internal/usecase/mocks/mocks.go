package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/dnoor/kasir/internal/domain"
	"github.com/dnoor/kasir/internal/usecase"
)

// MockDailyDataRepository is a mock implementation of DailyDataRepository.
type MockDailyDataRepository struct {
	mu   sync.RWMutex
	days map[string]*domain.DailyData

	SaveFunc     func(ctx context.Context, data *domain.DailyData) error
	SaveTxFunc   func(ctx context.Context, tx usecase.Transaction, data *domain.DailyData) error
	GetFunc      func(ctx context.Context, date string) (*domain.DailyData, error)
	DeleteFunc   func(ctx context.Context, date string) error
	ListFunc     func(ctx context.Context) ([]string, error)
	GetRangeFunc func(ctx context.Context, from, to string) ([]*domain.DailyData, error)
}

func NewMockDailyDataRepository() *MockDailyDataRepository {
	return &MockDailyDataRepository{days: make(map[string]*domain.DailyData)}
}

func (m *MockDailyDataRepository) Save(ctx context.Context, data *domain.DailyData) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[data.Date] = data
	return nil
}

func (m *MockDailyDataRepository) SaveTx(ctx context.Context, tx usecase.Transaction, data *domain.DailyData) error {
	if m.SaveTxFunc != nil {
		return m.SaveTxFunc(ctx, tx, data)
	}
	return m.Save(ctx, data)
}

func (m *MockDailyDataRepository) Get(ctx context.Context, date string) (*domain.DailyData, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if day, ok := m.days[date]; ok {
		return day, nil
	}
	return nil, domain.ErrDayNotFound
}

func (m *MockDailyDataRepository) Delete(ctx context.Context, date string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, date)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.days, date)
	return nil
}

func (m *MockDailyDataRepository) ListDates(ctx context.Context) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	dates := make([]string, 0, len(m.days))
	for date := range m.days {
		dates = append(dates, date)
	}
	return dates, nil
}

func (m *MockDailyDataRepository) GetRange(ctx context.Context, from, to string) ([]*domain.DailyData, error) {
	if m.GetRangeFunc != nil {
		return m.GetRangeFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var days []*domain.DailyData
	for date, day := range m.days {
		if date >= from && date <= to {
			days = append(days, day)
		}
	}
	return days, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	Records []*domain.BalanceModification

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, mod *domain.BalanceModification) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, mod *domain.BalanceModification) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, mod)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, mod)
	return nil
}

func (m *MockAuditRepository) ListByDate(ctx context.Context, date string, limit, offset int) ([]*domain.BalanceModification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.BalanceModification
	for _, mod := range m.Records {
		if mod.SessionDate == date {
			out = append(out, mod)
		}
	}
	return out, nil
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	CreateFunc func(ctx context.Context, product *domain.Product) error
	GetFunc    func(ctx context.Context, id string) (*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*domain.Product)}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Last      *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + itoa(m.counter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, domain.ErrDayNotFound
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
