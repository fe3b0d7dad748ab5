package domain

import "errors"

var (
	// ErrProductNotFound is returned when no lookup source produced a product
	ErrProductNotFound = errors.New("product not found in any source")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrOpenFoodFactsFailure is returned when an OpenFoodFacts API request fails
	ErrOpenFoodFactsFailure = errors.New("OpenFoodFacts API request failed")

	// ErrInsufficientIngredients is returned when the ingredient text is too
	// short to evaluate. This is a distinct terminal state, not a failure.
	ErrInsufficientIngredients = errors.New("ingredient text too short to evaluate")

	// ErrEvaluationFailed is returned when the remote evaluation failed and
	// the mock fallback is disabled
	ErrEvaluationFailed = errors.New("ingredient evaluation failed")

	// ErrInvalidEvaluation is returned when the model response does not parse
	// or does not match the expected result shape
	ErrInvalidEvaluation = errors.New("invalid evaluation response")

	// ErrStoreUnavailable is returned when no secondary database is configured
	ErrStoreUnavailable = errors.New("evaluation store not configured")
)
