package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/suppscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchPageSize limits text searches to the top candidates
const searchPageSize = 20

// Client handles communication with the OpenFoodFacts v2 API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new OpenFoodFacts API client. requestsPerHour is a
// politeness budget; OpenFoodFacts asks unauthenticated clients to stay
// well below their global limits and to send an identifying User-Agent.
func NewClient(baseURL, userAgent string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.debug {
		log.Printf("[OFF] GET %s", reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOpenFoodFactsFailure, err)
	}

	return resp, nil
}

// GetProductByBarcode looks up a product by exact barcode. The API reports
// an unknown barcode with status 0 in a 200 body, which maps to
// domain.ErrProductNotFound.
func (c *Client) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(barcode))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrOpenFoodFactsFailure, resp.StatusCode, string(body))
	}

	var productResp productResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if productResp.Status == 0 {
		log.Printf("[OFF] No product for barcode: %q", barcode)
		return nil, domain.ErrProductNotFound
	}

	product := mapProduct(productResp.Product)
	if product.Code == "" {
		product.Code = productResp.Code
	}
	return &product, nil
}

// SearchProducts performs a fuzzy name/brand search and returns the top
// candidates. An empty result slice is a miss, not an error.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	endpoint := fmt.Sprintf("%s/search", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("json", "1")
	params.Add("page_size", fmt.Sprintf("%d", searchPageSize))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrOpenFoodFactsFailure, resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	products := make([]domain.Product, 0, len(searchResp.Products))
	for _, p := range searchResp.Products {
		products = append(products, mapProduct(p))
	}

	if c.debug {
		log.Printf("[OFF] Found %d products for query: %q", len(products), query)
	}
	return products, nil
}
