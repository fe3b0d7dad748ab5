package usecase

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/suppscan/backend/internal/domain"
)

// barcodeRegex matches UPC/EAN style identifiers: 8 to 14 consecutive digits
var barcodeRegex = regexp.MustCompile(`^\d{8,14}$`)

// IsBarcode reports whether the input should be treated as a barcode rather
// than a free-text query
func IsBarcode(query string) bool {
	return barcodeRegex.MatchString(query)
}

// LookupService resolves a user-supplied string to a Product, trying
// sources in a fixed priority order and stopping at the first hit.
type LookupService struct {
	products  domain.ProductFinder
	secondary domain.SecondaryProductSource
}

// NewLookupService creates a lookup service. secondary may be nil when no
// hosted database is configured; the chain then ends after the name search.
func NewLookupService(products domain.ProductFinder, secondary domain.SecondaryProductSource) *LookupService {
	return &LookupService{
		products:  products,
		secondary: secondary,
	}
}

// Lookup runs the fallback chain: exact barcode lookup (barcode-shaped
// input only), then fuzzy name search, then the secondary database. A
// failure of one source is logged and treated as a miss so the chain
// continues; only a transport failure of the final source is surfaced.
func (s *LookupService) Lookup(ctx context.Context, query string) (*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	if IsBarcode(query) {
		product, err := s.products.GetProductByBarcode(ctx, query)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, domain.ErrProductNotFound) {
			log.Printf("[lookup] barcode source failed for %q: %v", query, err)
		}
	}

	hits, err := s.products.SearchProducts(ctx, query)
	if err != nil {
		log.Printf("[lookup] name search failed for %q: %v", query, err)
	} else if len(hits) > 0 {
		product := hits[0]
		return &product, nil
	}

	if s.secondary == nil {
		return nil, domain.ErrProductNotFound
	}

	product, err := s.secondary.FindProduct(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		// last source in the chain: nothing left to fall back to
		return nil, err
	}
	return product, nil
}
