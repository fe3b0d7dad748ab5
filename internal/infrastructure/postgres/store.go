package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suppscan/backend/internal/domain"
)

// Store is the hosted-database adapter. It serves two roles: the last
// fallback of the product lookup chain and the persisted evaluation log.
type Store struct {
	db *sql.DB
}

const (
	findProductQuery = `
		SELECT barcode, name, brand, ingredients, image
		FROM products
		WHERE barcode = $1 OR name ILIKE '%' || $2 || '%'
		LIMIT 1
	`
	upsertEvaluationQuery = `
		INSERT INTO evaluations (id, product_id, product_name, brand, result, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			brand = EXCLUDED.brand,
			result = EXCLUDED.result,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	getEvaluationQuery = `
		SELECT id, product_id, product_name, brand, result, updated_at
		FROM evaluations
		WHERE product_id = $1
	`
	recentEvaluationsQuery = `
		SELECT id, product_id, product_name, brand, result, updated_at
		FROM evaluations
		ORDER BY updated_at DESC
		LIMIT $1
	`
)

// NewStore creates a new Store on an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindProduct queries the products table with an OR-combined filter on
// exact barcode or partial case-insensitive name match, limited to one row.
func (s *Store) FindProduct(ctx context.Context, query string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, findProductQuery, query, query)

	var (
		barcode     sql.NullString
		name        string
		brand       sql.NullString
		ingredients sql.NullString
		image       sql.NullString
	)
	if err := row.Scan(&barcode, &name, &brand, &ingredients, &image); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return &domain.Product{
		Code:            barcode.String,
		Name:            name,
		Brands:          brand.String,
		IngredientsText: ingredients.String,
		ImageURL:        image.String,
	}, nil
}

// UpsertEvaluation records a computed evaluation for reuse across sessions,
// replacing any previous row for the same product id.
func (s *Store) UpsertEvaluation(ctx context.Context, entry *domain.EvaluationLog) (*domain.EvaluationLog, error) {
	if entry == nil || entry.ProductID == "" || entry.Result == nil {
		return nil, domain.ErrInvalidRequest
	}

	result, err := json.Marshal(entry.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation: %w", err)
	}

	saved := *entry
	if saved.UpdatedAt.IsZero() {
		saved.UpdatedAt = time.Now().UTC()
	}

	row := s.db.QueryRowContext(ctx, upsertEvaluationQuery,
		uuid.NewString(), saved.ProductID, saved.ProductName, saved.Brand, result, saved.UpdatedAt)
	if err := row.Scan(&saved.ID); err != nil {
		return nil, fmt.Errorf("upsert evaluation: %w", err)
	}

	return &saved, nil
}

// GetEvaluation returns the logged evaluation for a product id, or nil when
// none has been recorded.
func (s *Store) GetEvaluation(ctx context.Context, productID string) (*domain.EvaluationLog, error) {
	row := s.db.QueryRowContext(ctx, getEvaluationQuery, productID)

	entry, err := scanEvaluation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get evaluation: %w", err)
	}
	return entry, nil
}

// RecentEvaluations returns the most recently updated log entries
func (s *Store) RecentEvaluations(ctx context.Context, limit int) ([]domain.EvaluationLog, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, recentEvaluationsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("recent evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.EvaluationLog, 0, limit)
	for rows.Next() {
		entry, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("recent evaluations: %w", err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent evaluations: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row rowScanner) (*domain.EvaluationLog, error) {
	var (
		entry       domain.EvaluationLog
		productName sql.NullString
		brand       sql.NullString
		result      []byte
	)
	if err := row.Scan(&entry.ID, &entry.ProductID, &productName, &brand, &result, &entry.UpdatedAt); err != nil {
		return nil, err
	}
	entry.ProductName = productName.String
	entry.Brand = brand.String

	var evaluation domain.Evaluation
	if err := json.Unmarshal(result, &evaluation); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	entry.Result = &evaluation

	return &entry, nil
}
