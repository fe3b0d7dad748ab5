package domain

import "time"

// Evaluation source values
const (
	EvaluationSourceOpenRouter = "openrouter"
	EvaluationSourceMock       = "mock"
	EvaluationSourceLog        = "log"
)

// CategoryScore is one entry of an evaluation's category breakdown
type CategoryScore struct {
	Score  float64 `json:"score"`  // 0-10
	Reason string  `json:"reason"`
}

// Evaluation represents the structured quality assessment of a product's
// ingredient list. Source records where it came from: a live model call,
// the deterministic mock fallback, or the persisted evaluation log.
type Evaluation struct {
	Score             float64                  `json:"score"` // 0-100
	Summary           string                   `json:"summary"`
	Ingredients       []string                 `json:"ingredients"`
	CategoryBreakdown map[string]CategoryScore `json:"category_breakdown"`
	Source            string                   `json:"evaluation_source,omitempty"`
	EvaluatedAt       time.Time                `json:"evaluated_at,omitempty"`
}

// EvaluationLog is one row of the persisted evaluation log, keyed by
// product id with replace-on-conflict semantics.
type EvaluationLog struct {
	ID          string      `json:"id,omitempty"`
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name,omitempty"`
	Brand       string      `json:"brand,omitempty"`
	Result      *Evaluation `json:"result"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
