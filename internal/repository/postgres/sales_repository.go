// internal/repository/postgres/sales_repository.go
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

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) List(ctx context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error) {
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
		SELECT id, product_id, sale_date, quantity, channel, created_at
		FROM sales_records
		WHERE ($1::BIGINT IS NULL OR product_id = $1)
			AND ($2::DATE IS NULL OR sale_date >= $2)
			AND ($3::DATE IS NULL OR sale_date <= $3)
			AND ($4 = '' OR $4 = 'all' OR channel = $4)
		ORDER BY sale_date DESC, id DESC
		LIMIT $5 OFFSET $6
	`

	var records []domain.SalesRecord
	err := sqlx.SelectContext(ctx, r.db, &records, query,
		filter.ProductID, filter.StartDate, filter.EndDate, filter.Channel, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales records: %w", err)
	}

	return records, nil
}

func (r *salesRepository) GetByID(ctx context.Context, id int64) (*domain.SalesRecord, error) {
	query := `
		SELECT id, product_id, sale_date, quantity, channel, created_at
		FROM sales_records
		WHERE id = $1
	`

	var record domain.SalesRecord
	if err := sqlx.GetContext(ctx, r.db, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sales record %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sales record: %w", err)
	}

	return &record, nil
}

func (r *salesRepository) SumQuantity(ctx context.Context, productID int64, start, end time.Time, channel string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales_records
		WHERE product_id = $1
			AND sale_date >= $2
			AND sale_date <= $3
			AND ($4 = '' OR $4 = 'all' OR channel = $4)
	`

	var total int
	if err := r.db.QueryRowxContext(ctx, query, productID, start, end, channel).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sales quantity: %w", err)
	}

	return total, nil
}

func (r *salesRepository) SumQuantityAll(ctx context.Context, start, end time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales_records
		WHERE sale_date >= $1 AND sale_date <= $2
	`

	var total int
	if err := r.db.QueryRowxContext(ctx, query, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sales quantity: %w", err)
	}

	return total, nil
}

func (r *salesRepository) CreateWithStockDecrement(ctx context.Context, sale *domain.SalesRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := ensureInventoryRow(ctx, tx, sale.ProductID); err != nil {
			return err
		}

		if err := subtractStock(ctx, tx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}

		query := `
			INSERT INTO sales_records (product_id, sale_date, quantity, channel)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		if err := tx.QueryRowxContext(ctx, query, sale.ProductID, sale.SaleDate, sale.Quantity, sale.Channel).
			Scan(&sale.ID, &sale.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert sales record: %w", err)
		}

		return nil
	})
}

func (r *salesRepository) UpdateWithRebalance(ctx context.Context, sale *domain.SalesRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var oldQty int
		err := tx.QueryRowxContext(ctx,
			`SELECT quantity FROM sales_records WHERE id = $1 FOR UPDATE`, sale.ID).
			Scan(&oldQty)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("sales record %d: %w", sale.ID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock sales record: %w", err)
		}

		// Re-balance inventory by the delta before touching the record so
		// the current-stock floor still holds.
		delta := sale.Quantity - oldQty
		if delta > 0 {
			if err := subtractStock(ctx, tx, sale.ProductID, delta); err != nil {
				return err
			}
		} else if delta < 0 {
			if err := restoreStock(ctx, tx, sale.ProductID, -delta); err != nil {
				return err
			}
		}

		query := `
			UPDATE sales_records
			SET sale_date = $2, quantity = $3, channel = $4
			WHERE id = $1
		`

		if _, err := tx.ExecContext(ctx, query, sale.ID, sale.SaleDate, sale.Quantity, sale.Channel); err != nil {
			return fmt.Errorf("failed to update sales record: %w", err)
		}

		return nil
	})
}

func (r *salesRepository) DeleteWithRestore(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var productID int64
		var qty int
		err := tx.QueryRowxContext(ctx,
			`DELETE FROM sales_records WHERE id = $1 RETURNING product_id, quantity`, id).
			Scan(&productID, &qty)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("sales record %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to delete sales record: %w", err)
		}

		return restoreStock(ctx, tx, productID, qty)
	})
}
