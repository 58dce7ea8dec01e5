// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/jmoiron/sqlx"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetByProductID(ctx context.Context, productID int64) (*domain.Inventory, error) {
	query := `
		SELECT id, product_id, current_stock, cbu_in_hand, kits_in_factory, last_updated
		FROM inventory
		WHERE product_id = $1
	`

	var inv domain.Inventory
	if err := sqlx.GetContext(ctx, r.db, &inv, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // created lazily on first write
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return &inv, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.Inventory, error) {
	query := `
		SELECT id, product_id, current_stock, cbu_in_hand, kits_in_factory, last_updated
		FROM inventory
		ORDER BY product_id
	`

	var rows []domain.Inventory
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	return rows, nil
}

func (r *inventoryRepository) Upsert(ctx context.Context, inv *domain.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, current_stock, cbu_in_hand, kits_in_factory, last_updated)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id) DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			cbu_in_hand = EXCLUDED.cbu_in_hand,
			kits_in_factory = EXCLUDED.kits_in_factory,
			last_updated = NOW()
		RETURNING id, last_updated
	`

	if err := r.db.QueryRowxContext(ctx, query, inv.ProductID, inv.CurrentStock, inv.CBUInHand, inv.KitsInFactory).
		Scan(&inv.ID, &inv.LastUpdated); err != nil {
		return fmt.Errorf("failed to upsert inventory: %w", err)
	}

	return nil
}

func (r *inventoryRepository) Subtract(ctx context.Context, productID int64, quantity int) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return subtractStock(ctx, tx, productID, quantity)
	})
}

func (r *inventoryRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("inventory for product %d: %w", productID, domain.ErrNotFound)
	}

	return nil
}

// subtractStock decrements current_stock with a row lock, rejecting a result
// below zero. Shared with the sales transaction.
func subtractStock(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) error {
	var current int
	err := tx.QueryRowxContext(ctx,
		`SELECT current_stock FROM inventory WHERE product_id = $1 FOR UPDATE`, productID).
		Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("inventory for product %d: %w", productID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock inventory row: %w", err)
	}

	if current < quantity {
		return fmt.Errorf("available %d, requested %d: %w", current, quantity, domain.ErrInsufficientStock)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory SET current_stock = current_stock - $2, last_updated = NOW() WHERE product_id = $1`,
		productID, quantity); err != nil {
		return fmt.Errorf("failed to subtract stock: %w", err)
	}

	return nil
}

// restoreStock adds quantity back, creating the row if it vanished.
func restoreStock(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) error {
	query := `
		INSERT INTO inventory (product_id, current_stock, last_updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (product_id) DO UPDATE SET
			current_stock = inventory.current_stock + EXCLUDED.current_stock,
			last_updated = NOW()
	`

	if _, err := tx.ExecContext(ctx, query, productID, quantity); err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	return nil
}

// ensureInventoryRow creates an empty inventory row if the product has none.
func ensureInventoryRow(ctx context.Context, tx *sqlx.Tx, productID int64) error {
	query := `
		INSERT INTO inventory (product_id, current_stock)
		VALUES ($1, 0)
		ON CONFLICT (product_id) DO NOTHING
	`

	if _, err := tx.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("failed to ensure inventory row: %w", err)
	}

	return nil
}
