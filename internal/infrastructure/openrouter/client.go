package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/suppscan/backend/internal/domain"
)

// Client handles communication with the OpenRouter chat-completion API
type Client struct {
	apiKey string
	model  string
	http   *resty.Client
}

// NewClient creates a new OpenRouter client. The model is the identifier
// sent with every completion request.
func NewClient(apiKey, baseURL, model string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(60 * time.Second)

	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   c,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// EvaluateSupplement asks the model for a structured quality assessment of
// the product's ingredient list. A single attempt is made; transport
// failures, non-OK statuses and malformed responses are all surfaced to the
// caller, which owns the fallback policy.
func (c *Client) EvaluateSupplement(ctx context.Context, product *domain.Product) (*domain.Evaluation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", domain.ErrEvaluationFailed)
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful assistant that evaluates nutritional supplements.",
			},
			{
				Role:    "user",
				Content: buildEvaluationPrompt(product),
			},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", "https://suppscan.app").
		SetHeader("X-Title", "SuppScan").
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEvaluationFailed, err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrEvaluationFailed, msg)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", domain.ErrInvalidEvaluation)
	}

	evaluation, err := parseEvaluation(result.Choices[0].Message.Content)
	if err != nil {
		log.Printf("[OpenRouter] failed to parse model response: %v", err)
		return nil, err
	}

	evaluation.Source = domain.EvaluationSourceOpenRouter
	evaluation.EvaluatedAt = time.Now()
	return evaluation, nil
}

// parseEvaluation decodes the model's generated text into an Evaluation and
// validates the required shape: numeric score, string summary, ingredient
// array and an object-of-objects category breakdown.
func parseEvaluation(content string) (*domain.Evaluation, error) {
	payload := extractJSON(content)

	var raw struct {
		Score             *float64                        `json:"score"`
		Summary           *string                         `json:"summary"`
		Ingredients       []string                        `json:"ingredients"`
		CategoryBreakdown map[string]domain.CategoryScore `json:"category_breakdown"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvaluation, err)
	}

	if raw.Score == nil || raw.Summary == nil || raw.Ingredients == nil || raw.CategoryBreakdown == nil {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidEvaluation)
	}

	return &domain.Evaluation{
		Score:             *raw.Score,
		Summary:           *raw.Summary,
		Ingredients:       raw.Ingredients,
		CategoryBreakdown: raw.CategoryBreakdown,
	}, nil
}

// extractJSON strips markdown code fences and surrounding prose that chat
// models commonly wrap around JSON output.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
