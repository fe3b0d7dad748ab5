package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductFinder defines the interface for the primary product database
// (OpenFoodFacts)
type ProductFinder interface {
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}

// SecondaryProductSource defines the interface for the hosted-database
// fallback, queried only when the primary source misses
type SecondaryProductSource interface {
	FindProduct(ctx context.Context, query string) (*Product, error)
}

// Evaluator defines the interface for the LLM-backed ingredient scoring
// endpoint
type Evaluator interface {
	EvaluateSupplement(ctx context.Context, product *Product) (*Evaluation, error)
}

// EvaluationStore defines the interface for the persisted evaluation log
type EvaluationStore interface {
	UpsertEvaluation(ctx context.Context, entry *EvaluationLog) (*EvaluationLog, error)
	GetEvaluation(ctx context.Context, productID string) (*EvaluationLog, error)
	RecentEvaluations(ctx context.Context, limit int) ([]EvaluationLog, error)
}
