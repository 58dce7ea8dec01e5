// internal/repository/postgres/po_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/jmoiron/sqlx"
)

const poColumns = `
	id, product_id, po_number, quantity, forecasted_quantity,
	order_week, order_date, expected_delivery_week, etd, eta,
	status, shipping_mode, stage, stage_updated_at, auto_generated, notes,
	created_at, updated_at
`

type poRepository struct {
	db *DB
}

func NewPORepository(db *DB) *poRepository {
	return &poRepository{db: db}
}

func (r *poRepository) List(ctx context.Context, filter domain.PurchaseOrderFilter) ([]domain.PurchaseOrder, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + poColumns + `
		FROM purchase_orders
		WHERE ($1::BIGINT IS NULL OR product_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3 = '' OR stage = $3)
			AND ($4::DATE IS NULL OR order_week >= $4)
			AND ($5::DATE IS NULL OR order_week <= $5)
		ORDER BY order_week DESC, id DESC
		LIMIT $6 OFFSET $7
	`

	var pos []domain.PurchaseOrder
	err := sqlx.SelectContext(ctx, r.db, &pos, query,
		filter.ProductID, filter.Status, filter.Stage, filter.StartWeek, filter.EndWeek, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	return pos, nil
}

func (r *poRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`

	var po domain.PurchaseOrder
	if err := sqlx.GetContext(ctx, r.db, &po, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	return &po, nil
}

func (r *poRepository) ListForWeek(ctx context.Context, productID int64, orderWeek time.Time) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + poColumns + `
		FROM purchase_orders
		WHERE product_id = $1 AND order_week = $2
		ORDER BY id
	`

	var pos []domain.PurchaseOrder
	if err := sqlx.SelectContext(ctx, r.db, &pos, query, productID, orderWeek); err != nil {
		return nil, fmt.Errorf("failed to list purchase orders for week: %w", err)
	}

	return pos, nil
}

func (r *poRepository) ListOpenWithETA(ctx context.Context, productID int64, horizon time.Time) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + poColumns + `
		FROM purchase_orders
		WHERE product_id = $1
			AND eta IS NOT NULL
			AND eta <= $2
			AND status IN ('ordered', 'shipped')
		ORDER BY eta
	`

	var pos []domain.PurchaseOrder
	if err := sqlx.SelectContext(ctx, r.db, &pos, query, productID, horizon); err != nil {
		return nil, fmt.Errorf("failed to list open purchase orders: %w", err)
	}

	return pos, nil
}

func (r *poRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (
			product_id, po_number, quantity, forecasted_quantity,
			order_week, order_date, expected_delivery_week, etd, eta,
			status, shipping_mode, stage, auto_generated, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		po.ProductID, po.PONumber, po.Quantity, po.ForecastedQuantity,
		po.OrderWeek, po.OrderDate, po.ExpectedDeliveryWeek, po.ETD, po.ETA,
		po.Status, po.ShippingMode, po.Stage, po.AutoGenerated, po.Notes).
		Scan(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase order: %w", err)
	}

	return nil
}

func (r *poRepository) InsertGenerated(ctx context.Context, po *domain.PurchaseOrder) (bool, error) {
	// The partial unique index uq_generated_po_per_week makes this an
	// atomic insert-or-skip: a concurrent run that already inserted the
	// week's PO turns this statement into a no-op.
	query := `
		INSERT INTO purchase_orders (
			product_id, quantity, forecasted_quantity,
			order_week, order_date, expected_delivery_week,
			status, shipping_mode, stage, auto_generated, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10)
		ON CONFLICT (product_id, order_week) WHERE auto_generated DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		po.ProductID, po.Quantity, po.ForecastedQuantity,
		po.OrderWeek, po.OrderDate, po.ExpectedDeliveryWeek,
		po.Status, po.ShippingMode, po.Stage, po.Notes).
		Scan(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert generated purchase order: %w", err)
	}

	po.AutoGenerated = true
	return true, nil
}

func (r *poRepository) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET po_number = $2, quantity = $3, forecasted_quantity = $4,
			order_week = $5, order_date = $6, expected_delivery_week = $7,
			etd = $8, eta = $9, status = $10, shipping_mode = $11,
			stage = $12, notes = $13, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		po.ID, po.PONumber, po.Quantity, po.ForecastedQuantity,
		po.OrderWeek, po.OrderDate, po.ExpectedDeliveryWeek,
		po.ETD, po.ETA, po.Status, po.ShippingMode, po.Stage, po.Notes)
	if err != nil {
		return fmt.Errorf("failed to update purchase order: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("purchase order %d: %w", po.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *poRepository) UpdateStage(ctx context.Context, id int64, stage, status string) error {
	query := `
		UPDATE purchase_orders
		SET stage = $2,
			status = COALESCE(NULLIF($3, ''), status),
			stage_updated_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, stage, status)
	if err != nil {
		return fmt.Errorf("failed to update purchase order stage: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("purchase order %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *poRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("purchase order %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
