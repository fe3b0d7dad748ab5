package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suppscan/backend/internal/domain"
	"github.com/suppscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scans      *usecase.ScanService
	lookup     *usecase.LookupService
	evaluation *usecase.EvaluationService
	store      domain.EvaluationStore
}

// NewHandler creates a new HTTP handler. store may be nil when no hosted
// database is configured.
func NewHandler(
	scans *usecase.ScanService,
	lookup *usecase.LookupService,
	evaluation *usecase.EvaluationService,
	store domain.EvaluationStore,
) *Handler {
	return &Handler{
		scans:      scans,
		lookup:     lookup,
		evaluation: evaluation,
		store:      store,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "suppscan-backend",
		"version": "1.0.0",
	})
}

// Scan handles the full scan pipeline: lookup chain, evaluation, cache
func (h *Handler) Scan(c *gin.Context) {
	var req domain.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.scans.Scan(c.Request.Context(), req.Query)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProductByBarcode handles direct barcode lookups
func (h *Handler) GetProductByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if !usecase.IsBarcode(barcode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode must be 8-14 digits"})
		return
	}

	product, err := h.lookup.Lookup(c.Request.Context(), barcode)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProduct resolves a free-text query through the lookup chain
func (h *Handler) SearchProduct(c *gin.Context) {
	var req domain.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	product, err := h.lookup.Lookup(c.Request.Context(), req.Query)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// EvaluateProduct evaluates a client-supplied product payload
func (h *Handler) EvaluateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if product.Name == "" && product.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name or code is required"})
		return
	}

	evaluation, err := h.evaluation.Evaluate(c.Request.Context(), &product)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientIngredients) {
			// A distinct state, not a zero score
			c.JSON(http.StatusOK, gin.H{
				"status":  domain.StatusInsufficientData,
				"message": "Not enough ingredient information to evaluate this product",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     domain.StatusEvaluated,
		"evaluation": evaluation,
	})
}

// RecentEvaluations returns the latest entries of the persisted log
func (h *Handler) RecentEvaluations(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrStoreUnavailable.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := h.store.RecentEvaluations(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read evaluation log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": entries})
}

// renderLookupError maps lookup errors to HTTP responses. A full chain
// miss is recoverable: the client prompts a manual search.
func (h *Handler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "product not found",
			"message": "Try a different search term or scan a barcode",
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "product lookup failed"})
	}
}
