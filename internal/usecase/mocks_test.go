package usecase

import (
	"context"
	"time"

	"github.com/suppscan/backend/internal/domain"
)

// MockProductFinder is a mock implementation of domain.ProductFinder
type MockProductFinder struct {
	barcodeResult *domain.Product
	barcodeErr    error
	searchResults []domain.Product
	searchErr     error

	barcodeCalls []string
	searchCalls  []string
}

func (m *MockProductFinder) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	m.barcodeCalls = append(m.barcodeCalls, barcode)
	if m.barcodeErr != nil {
		return nil, m.barcodeErr
	}
	return m.barcodeResult, nil
}

func (m *MockProductFinder) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

// MockSecondarySource is a mock implementation of domain.SecondaryProductSource
type MockSecondarySource struct {
	result *domain.Product
	err    error
	calls  []string
}

func (m *MockSecondarySource) FindProduct(ctx context.Context, query string) (*domain.Product, error) {
	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, domain.ErrProductNotFound
	}
	return m.result, nil
}

// MockEvaluator is a mock implementation of domain.Evaluator
type MockEvaluator struct {
	result *domain.Evaluation
	err    error
	calls  int
}

func (m *MockEvaluator) EvaluateSupplement(ctx context.Context, product *domain.Product) (*domain.Evaluation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// MockEvaluationStore is a mock implementation of domain.EvaluationStore
type MockEvaluationStore struct {
	entries map[string]*domain.EvaluationLog
	getErr  error
	saveErr error
	upserts int
}

func NewMockEvaluationStore() *MockEvaluationStore {
	return &MockEvaluationStore{entries: make(map[string]*domain.EvaluationLog)}
}

func (m *MockEvaluationStore) UpsertEvaluation(ctx context.Context, entry *domain.EvaluationLog) (*domain.EvaluationLog, error) {
	m.upserts++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	saved := *entry
	saved.ID = "mock-id"
	if saved.UpdatedAt.IsZero() {
		saved.UpdatedAt = time.Now()
	}
	m.entries[entry.ProductID] = &saved
	return &saved, nil
}

func (m *MockEvaluationStore) GetEvaluation(ctx context.Context, productID string) (*domain.EvaluationLog, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[productID], nil
}

func (m *MockEvaluationStore) RecentEvaluations(ctx context.Context, limit int) ([]domain.EvaluationLog, error) {
	out := make([]domain.EvaluationLog, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, *entry)
	}
	return out, nil
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}
