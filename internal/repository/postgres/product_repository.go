// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, sku, name, shipping_mode, status, remarks,
			safety_stock_days, safety_threshold_percentage, lead_time_weeks,
			is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `
		SELECT id, sku, name, shipping_mode, status, remarks,
			safety_stock_days, safety_threshold_percentage, lead_time_weeks,
			is_active, created_at, updated_at
		FROM products
		WHERE ($1 = FALSE OR is_active)
		ORDER BY sku
	`

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, activeOnly); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			sku, name, shipping_mode, status, remarks,
			safety_stock_days, safety_threshold_percentage, lead_time_weeks, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		product.SKU, product.Name, product.ShippingMode, product.Status, product.Remarks,
		product.SafetyStockDays, product.SafetyThresholdPercentage, product.LeadTimeWeeks, product.IsActive).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("product sku %s: %w", product.SKU, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) UpdatePlanningConfig(ctx context.Context, id int64, safetyStockDays int, safetyThresholdPct float64, leadTimeWeeks int) error {
	query := `
		UPDATE products
		SET safety_stock_days = $2,
			safety_threshold_percentage = $3,
			lead_time_weeks = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, safetyStockDays, safetyThresholdPct, leadTimeWeeks)
	if err != nil {
		return fmt.Errorf("failed to update product planning config: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
