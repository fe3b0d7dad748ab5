package usecase

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"github.com/suppscan/backend/internal/domain"
)

// mockCategories is the fixed breakdown the mock fallback produces
var mockCategories = []string{"Purity", "Effectiveness", "Safety", "Value"}

// MockEvaluation fabricates a plausible-looking evaluation when the remote
// model is unavailable. Sub-scores are pseudo-random but seeded from the
// product identity, so repeat scans of the same product score identically.
// The result is clearly labeled with source "mock".
func MockEvaluation(product *domain.Product) *domain.Evaluation {
	h := fnv.New64a()
	h.Write([]byte(product.Code + "|" + product.Name))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	breakdown := make(map[string]domain.CategoryScore, len(mockCategories))
	total := 0.0
	for _, category := range mockCategories {
		score := float64(rng.Intn(10) + 1)
		total += score
		breakdown[category] = domain.CategoryScore{
			Score:  score,
			Reason: "Mock evaluation - actual analysis would appear here.",
		}
	}

	overall := math.Min(100, math.Round(total/float64(len(mockCategories))*10))

	name := product.Name
	if name == "" {
		name = "Unknown Product"
	}
	brand := product.Brands
	if brand == "" {
		brand = "Unknown Brand"
	}

	return &domain.Evaluation{
		Score:             overall,
		Summary:           fmt.Sprintf("This is a mock evaluation for %s by %s. In a real implementation, this would be an AI-generated analysis.", name, brand),
		Ingredients:       mockIngredients(product.IngredientsText),
		CategoryBreakdown: breakdown,
		Source:            domain.EvaluationSourceMock,
	}
}

// mockIngredients takes the first few comma-separated entries from the real
// ingredient text so the mock still reflects the scanned product
func mockIngredients(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, 3)
	for _, part := range parts {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		out = []string{"Ingredient 1", "Ingredient 2", "Ingredient 3"}
	}
	return out
}
