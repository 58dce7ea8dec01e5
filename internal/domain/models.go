// internal/domain/models.go
package domain

import "time"

// Product represents a sellable product model (master data)
type Product struct {
	ID                        int64     `json:"id" db:"id"`
	SKU                       string    `json:"sku" db:"sku"`
	Name                      string    `json:"name" db:"name"`
	ShippingMode              string    `json:"shipping_mode" db:"shipping_mode"`
	Status                    string    `json:"status" db:"status"`
	Remarks                   string    `json:"remarks" db:"remarks"`
	SafetyStockDays           int       `json:"safety_stock_days" db:"safety_stock_days"`
	SafetyThresholdPercentage float64   `json:"safety_threshold_percentage" db:"safety_threshold_percentage"`
	LeadTimeWeeks             int       `json:"lead_time_weeks" db:"lead_time_weeks"`
	IsActive                  bool      `json:"is_active" db:"is_active"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at" db:"updated_at"`
}

// Inventory represents current stock levels for a product. One row per
// product, created lazily the first time a product needs one.
type Inventory struct {
	ID            int64     `json:"id" db:"id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	CurrentStock  int       `json:"current_stock" db:"current_stock"`
	CBUInHand     int       `json:"cbu_in_hand" db:"cbu_in_hand"`
	KitsInFactory int       `json:"kits_in_factory" db:"kits_in_factory"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}

// SalesRecord represents one actual sale transaction
type SalesRecord struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	SaleDate  time.Time `json:"sale_date" db:"sale_date"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Channel   string    `json:"channel" db:"channel"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SalesForecast represents a versioned monthly sales prediction per channel
type SalesForecast struct {
	ID           int64     `json:"id" db:"id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	ForecastDate time.Time `json:"forecast_date" db:"forecast_date"`
	Channel      string    `json:"channel" db:"channel"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ForecastType string    `json:"forecast_type" db:"forecast_type"`
	Version      string    `json:"version" db:"version"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PurchaseOrder represents a purchase order, manual or generator-suggested
type PurchaseOrder struct {
	ID                   int64      `json:"id" db:"id"`
	ProductID            int64      `json:"product_id" db:"product_id"`
	PONumber             *string    `json:"po_number" db:"po_number"`
	Quantity             int        `json:"quantity" db:"quantity"`
	ForecastedQuantity   *int       `json:"forecasted_quantity" db:"forecasted_quantity"`
	OrderWeek            time.Time  `json:"order_week" db:"order_week"`
	OrderDate            *time.Time `json:"order_date" db:"order_date"`
	ExpectedDeliveryWeek *time.Time `json:"expected_delivery_week" db:"expected_delivery_week"`
	ETD                  *time.Time `json:"etd" db:"etd"`
	ETA                  *time.Time `json:"eta" db:"eta"`
	Status               string     `json:"status" db:"status"`
	ShippingMode         string     `json:"shipping_mode" db:"shipping_mode"`
	Stage                string     `json:"stage" db:"stage"`
	StageUpdatedAt       *time.Time `json:"stage_updated_at" db:"stage_updated_at"`
	AutoGenerated        bool       `json:"auto_generated" db:"auto_generated"`
	Notes                string     `json:"notes" db:"notes"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// MonthlyPlan represents one row of the monthly PSI table, keyed by
// (product, plan month, version). Versions are never superseded implicitly;
// callers supply a new version to keep history.
type MonthlyPlan struct {
	ID              int64     `json:"id" db:"id"`
	ProductID       int64     `json:"product_id" db:"product_id"`
	PlanMonth       time.Time `json:"plan_month" db:"plan_month"`
	Week1Purchase   int       `json:"week_1_purchase" db:"week_1_purchase"`
	Week2Purchase   int       `json:"week_2_purchase" db:"week_2_purchase"`
	Week3Purchase   int       `json:"week_3_purchase" db:"week_3_purchase"`
	Week4Purchase   int       `json:"week_4_purchase" db:"week_4_purchase"`
	OpeningBalance  int       `json:"opening_balance" db:"opening_balance"`
	SalesForecast   int       `json:"sales_forecast" db:"sales_forecast"`
	EndingInventory int       `json:"ending_inventory" db:"ending_inventory"`
	DOSDays         *float64  `json:"dos_days" db:"dos_days"`
	Version         string    `json:"version" db:"version"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SystemConfig is one key/value override for the compiled planning defaults
type SystemConfig struct {
	ID          int64     `json:"id" db:"id"`
	ConfigKey   string    `json:"config_key" db:"config_key"`
	ConfigValue string    `json:"config_value" db:"config_value"`
	Description string    `json:"description" db:"description"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SalesFilter narrows sales record queries
type SalesFilter struct {
	ProductID *int64
	StartDate *time.Time
	EndDate   *time.Time
	Channel   string
	Limit     int
	Offset    int
}

// PurchaseOrderFilter narrows purchase order queries
type PurchaseOrderFilter struct {
	ProductID *int64
	Status    string
	Stage     string
	StartWeek *time.Time
	EndWeek   *time.Time
	Limit     int
	Offset    int
}

// PlanFilter narrows monthly plan queries
type PlanFilter struct {
	ProductID *int64
	PlanMonth *time.Time
	Version   string
}
