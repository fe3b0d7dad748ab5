package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/suppscan/backend/internal/domain"
)

// defaultMinIngredientLength is the shortest ingredient text worth sending
// to the model. Anything below it yields the insufficient-data state.
const defaultMinIngredientLength = 20

// EvaluationServiceConfig holds configuration for the evaluation service
type EvaluationServiceConfig struct {
	MinIngredientLength int
	MockFallback        bool
}

// EvaluationService obtains a structured quality assessment for a product's
// ingredient list, with an explicit degradation policy: reuse a logged
// result when available, otherwise call the model once, and on any failure
// either substitute the deterministic mock (when enabled) or surface the
// error.
type EvaluationService struct {
	evaluator           domain.Evaluator
	store               domain.EvaluationStore
	minIngredientLength int
	mockFallback        bool
}

// NewEvaluationService creates an evaluation service. store may be nil when
// no hosted database is configured; logged-result reuse and persistence are
// then skipped.
func NewEvaluationService(
	evaluator domain.Evaluator,
	store domain.EvaluationStore,
	config EvaluationServiceConfig,
) *EvaluationService {
	minLength := config.MinIngredientLength
	if minLength == 0 {
		minLength = defaultMinIngredientLength
	}

	return &EvaluationService{
		evaluator:           evaluator,
		store:               store,
		minIngredientLength: minLength,
		mockFallback:        config.MockFallback,
	}
}

// Evaluate returns an Evaluation for the product's ingredients.
// Preconditions and flow:
//   - ingredient text below the minimum length returns
//     domain.ErrInsufficientIngredients without any network call;
//   - a previously logged evaluation for the same product id is reused;
//   - otherwise the model is called once, and failures fall back to the
//     mock evaluation unless mock fallback is disabled.
func (s *EvaluationService) Evaluate(ctx context.Context, product *domain.Product) (*domain.Evaluation, error) {
	if product == nil {
		return nil, domain.ErrInvalidRequest
	}

	if len(strings.TrimSpace(product.IngredientsText)) < s.minIngredientLength {
		return nil, domain.ErrInsufficientIngredients
	}

	if logged := s.loggedEvaluation(ctx, product); logged != nil {
		return logged, nil
	}

	evaluation, err := s.evaluator.EvaluateSupplement(ctx, product)
	if err != nil {
		if !s.mockFallback {
			return nil, err
		}
		log.Printf("[evaluate] model evaluation failed for %q, using mock fallback: %v", product.Name, err)
		return MockEvaluation(product), nil
	}

	s.persistEvaluation(ctx, product, evaluation)
	return evaluation, nil
}

// loggedEvaluation returns a previously persisted evaluation for the
// product, if the store is configured and holds one
func (s *EvaluationService) loggedEvaluation(ctx context.Context, product *domain.Product) *domain.Evaluation {
	if s.store == nil || product.Code == "" {
		return nil
	}

	entry, err := s.store.GetEvaluation(ctx, product.Code)
	if err != nil {
		log.Printf("[evaluate] evaluation log read failed for %q: %v", product.Code, err)
		return nil
	}
	if entry == nil || entry.Result == nil {
		return nil
	}

	result := *entry.Result
	result.Source = domain.EvaluationSourceLog
	result.EvaluatedAt = entry.UpdatedAt
	return &result
}

// persistEvaluation upserts a freshly computed (non-mock) evaluation into
// the log. Failures are logged, never fatal.
func (s *EvaluationService) persistEvaluation(ctx context.Context, product *domain.Product, evaluation *domain.Evaluation) {
	if s.store == nil || product.Code == "" {
		return
	}

	_, err := s.store.UpsertEvaluation(ctx, &domain.EvaluationLog{
		ProductID:   product.Code,
		ProductName: product.Name,
		Brand:       product.Brands,
		Result:      evaluation,
		UpdatedAt:   evaluation.EvaluatedAt,
	})
	if err != nil {
		log.Printf("[evaluate] evaluation log write failed for %q: %v", product.Code, err)
	}
}
