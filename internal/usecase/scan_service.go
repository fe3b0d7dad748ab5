package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/suppscan/backend/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	CacheTTL time.Duration
}

// ScanService runs the full pipeline for one user-initiated scan or search:
// result cache -> lookup fallback chain -> ingredient evaluator -> cache.
type ScanService struct {
	cache      domain.CacheRepository
	lookup     *LookupService
	evaluation *EvaluationService
	cacheTTL   time.Duration
}

// NewScanService creates a scan service with dependencies
func NewScanService(
	cache domain.CacheRepository,
	lookup *LookupService,
	evaluation *EvaluationService,
	config ScanServiceConfig,
) *ScanService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &ScanService{
		cache:      cache,
		lookup:     lookup,
		evaluation: evaluation,
		cacheTTL:   cacheTTL,
	}
}

// Scan resolves the query to a product and evaluates its ingredients,
// serving repeat queries from the cache. Insufficient ingredient data is a
// distinct result status, not an error.
func (s *ScanService) Scan(ctx context.Context, query string) (*domain.ScanResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := generateCacheKey(query)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		cached.Source = domain.ScanSourceCache
		return cached, nil
	}

	product, err := s.lookup.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{
		Product: product,
		Status:  domain.StatusEvaluated,
		Source:  domain.ScanSourceLive,
	}

	evaluation, err := s.evaluation.Evaluate(ctx, product)
	switch {
	case err == nil:
		result.Evaluation = evaluation
	case errors.Is(err, domain.ErrInsufficientIngredients):
		result.Status = domain.StatusInsufficientData
	default:
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Printf("[scan] cache write failed for %q: %v", cacheKey, err)
	}

	return result, nil
}

// getFromCache retrieves a previous scan result from the cache
func (s *ScanService) getFromCache(ctx context.Context, key string) (*domain.ScanResult, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	result, ok := value.(*domain.ScanResult)
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	// Copy so the cached entry's Source label is not mutated in place
	copied := *result
	return &copied, nil
}

// generateCacheKey creates a normalized cache key from the query.
// Format: "scan:{normalized_query}"
func generateCacheKey(query string) string {
	normalized := strings.ToLower(query)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("scan:%s", strings.TrimSpace(normalized))
}
