package openrouter

import (
	"fmt"

	"github.com/suppscan/backend/internal/domain"
)

// buildEvaluationPrompt renders the fixed prompt template the model is
// scored against. The instructed JSON shape must stay in sync with
// parseEvaluation.
func buildEvaluationPrompt(product *domain.Product) string {
	name := product.Name
	if name == "" {
		name = "Unknown Product"
	}
	brand := product.Brands
	if brand == "" {
		brand = "Unknown Brand"
	}
	categories := product.Categories
	if categories == "" {
		categories = "N/A"
	}
	ingredients := product.IngredientsText
	if ingredients == "" {
		ingredients = "Not specified"
	}

	return fmt.Sprintf(`Evaluate this supplement and provide a detailed analysis in JSON format with the following structure:
{
  "score": number (0-100),
  "summary": "A brief summary of the supplement's quality",
  "ingredients": ["list", "of", "key", "ingredients"],
  "category_breakdown": {
    "Purity": { "score": number (0-10), "reason": "Detailed reason" },
    "Effectiveness": { "score": number (0-10), "reason": "Detailed reason" },
    "Safety": { "score": number (0-10), "reason": "Detailed reason" },
    "Value": { "score": number (0-10), "reason": "Detailed reason" }
  }
}

Product: %s
Brand: %s
Categories: %s
Ingredients: %s

Be critical and thorough in your evaluation. Consider potential allergens, fillers, and the quality of ingredients.`,
		name, brand, categories, ingredients)
}
