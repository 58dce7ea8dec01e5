// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
)

// ProductRepository reads and updates product master data.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	// Create fails with domain.ErrConflict on a duplicate SKU.
	Create(ctx context.Context, product *domain.Product) error
	// UpdatePlanningConfig persists the per-product planning knobs.
	UpdatePlanningConfig(ctx context.Context, id int64, safetyStockDays int, safetyThresholdPct float64, leadTimeWeeks int) error
}

// InventoryRepository reads and mutates stock levels. Get returns
// (nil, nil) when no inventory row exists for the product.
type InventoryRepository interface {
	GetByProductID(ctx context.Context, productID int64) (*domain.Inventory, error)
	List(ctx context.Context) ([]domain.Inventory, error)
	// Upsert creates the row lazily on first use.
	Upsert(ctx context.Context, inv *domain.Inventory) error
	// Subtract decrements current stock inside one transaction and fails
	// with domain.ErrInsufficientStock if the result would go negative.
	Subtract(ctx context.Context, productID int64, quantity int) error
	DeleteByProductID(ctx context.Context, productID int64) error
}

// SalesRepository reads sales history and owns the sale/stock transaction.
type SalesRepository interface {
	List(ctx context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.SalesRecord, error)
	SumQuantity(ctx context.Context, productID int64, start, end time.Time, channel string) (int, error)
	// SumQuantityAll sums across every product, for dashboard headlines.
	SumQuantityAll(ctx context.Context, start, end time.Time) (int, error)
	// CreateWithStockDecrement inserts the sale and decrements inventory
	// atomically; the decrement failing rolls the sale back.
	CreateWithStockDecrement(ctx context.Context, sale *domain.SalesRecord) error
	// UpdateWithRebalance applies a corrective edit and re-balances
	// inventory by the quantity delta in the same transaction.
	UpdateWithRebalance(ctx context.Context, sale *domain.SalesRecord) error
	// DeleteWithRestore removes the sale and returns its quantity to stock.
	DeleteWithRestore(ctx context.Context, id int64) error
}

// PurchaseOrderRepository reads and writes purchase orders.
type PurchaseOrderRepository interface {
	List(ctx context.Context, filter domain.PurchaseOrderFilter) ([]domain.PurchaseOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	// ListForWeek returns POs for one (product, order week) pair.
	ListForWeek(ctx context.Context, productID int64, orderWeek time.Time) ([]domain.PurchaseOrder, error)
	// ListOpenWithETA returns non-terminal POs with an ETA at or before
	// the horizon, the N+3 projection's candidate set.
	ListOpenWithETA(ctx context.Context, productID int64, horizon time.Time) ([]domain.PurchaseOrder, error)
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	// InsertGenerated inserts an auto-generated PO with insert-or-skip
	// semantics: the partial unique index on auto-generated
	// (product_id, order_week) rows absorbs the check-then-create race and
	// inserted reports whether the row landed.
	InsertGenerated(ctx context.Context, po *domain.PurchaseOrder) (inserted bool, err error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	UpdateStage(ctx context.Context, id int64, stage, status string) error
	Delete(ctx context.Context, id int64) error
}

// SalesForecastRepository reads versioned monthly sales predictions.
// Versions compare lexically; the latest one wins.
type SalesForecastRepository interface {
	LatestForMonth(ctx context.Context, productID int64, month time.Time, channel string) (*domain.SalesForecast, error)
	Create(ctx context.Context, forecast *domain.SalesForecast) error
}

// MonthlyPlanRepository reads and writes PSI plan rows.
type MonthlyPlanRepository interface {
	List(ctx context.Context, filter domain.PlanFilter) ([]domain.MonthlyPlan, error)
	GetByID(ctx context.Context, id int64) (*domain.MonthlyPlan, error)
	// LatestForMonth returns the highest-version plan for the month,
	// (nil, nil) when none exists.
	LatestForMonth(ctx context.Context, productID int64, month time.Time) (*domain.MonthlyPlan, error)
	// Create fails with domain.ErrConflict on a duplicate
	// (product, plan month, version) key.
	Create(ctx context.Context, plan *domain.MonthlyPlan) error
	Update(ctx context.Context, plan *domain.MonthlyPlan) error
	Delete(ctx context.Context, id int64) error
}

// SystemConfigRepository is the key/value override store for planning
// defaults.
type SystemConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.SystemConfig, error)
	All(ctx context.Context) ([]domain.SystemConfig, error)
	Upsert(ctx context.Context, cfg *domain.SystemConfig) error
	Delete(ctx context.Context, key string) error
}
