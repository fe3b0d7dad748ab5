package domain

// Product represents one supplement/food item as known to the product
// databases. Field shapes follow the OpenFoodFacts v2 API; Code may be
// empty for name-only search hits.
type Product struct {
	Code            string `json:"code,omitempty"`
	Name            string `json:"product_name"`
	Brands          string `json:"brands,omitempty"`
	Categories      string `json:"categories,omitempty"`
	IngredientsText string `json:"ingredients_text,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	NutriScore      string `json:"nutriscore_grade,omitempty"`
	NovaGroup       int    `json:"nova_group,omitempty"`
	EcoScore        string `json:"ecoscore_grade,omitempty"`
}

// LookupRequest represents a product lookup request from the client
type LookupRequest struct {
	Query string `json:"query" binding:"required"`
}

// ScanResult status values
const (
	StatusEvaluated        = "evaluated"
	StatusInsufficientData = "insufficient_data"
)

// ScanResult source values
const (
	ScanSourceLive  = "live"
	ScanSourceCache = "cache"
)

// ScanResult pairs a resolved product with its evaluation (if any).
// Status distinguishes a real evaluation from the insufficient-data state;
// Source tells whether the pair came from the cache or a live lookup.
type ScanResult struct {
	Product    *Product    `json:"product"`
	Status     string      `json:"status"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Source     string      `json:"source"` // "live" or "cache"
}
