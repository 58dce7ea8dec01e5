// internal/domain/results.go
package domain

import "time"

// PurchaseForecast is the structured output of the forecast engine
type PurchaseForecast struct {
	ProductID               int64   `json:"product_id"`
	ProductName             string  `json:"product_name"`
	CurrentStock            int     `json:"current_stock"`
	ForecastedWeeklyDemand  float64 `json:"forecasted_weekly_demand"`
	SafetyStock             int     `json:"safety_stock"`
	RequiredInventory       int     `json:"required_inventory"`
	SuggestedPurchaseQty    int     `json:"suggested_purchase_quantity"`
	ConfidenceLevel         string  `json:"confidence_level"`
	DataPointsUsed          int     `json:"data_points_used"`
}

// MonthlyPSI is the computed monthly roll-forward for one product.
// DOSDays is nil when the month has no sales forecast (never infinity).
type MonthlyPSI struct {
	ProductID              int64    `json:"product_id"`
	ProductName            string   `json:"product_name"`
	ProductSKU             string   `json:"product_sku"`
	Month                  string   `json:"month"`
	OpeningBalance         int      `json:"opening_balance"`
	Week1Purchase          int      `json:"week_1_purchase"`
	Week2Purchase          int      `json:"week_2_purchase"`
	Week3Purchase          int      `json:"week_3_purchase"`
	Week4Purchase          int      `json:"week_4_purchase"`
	TotalWeeklyPurchases   int      `json:"total_weekly_purchases"`
	AvailableSalesInventory int     `json:"available_sales_inventory"`
	SalesForecast          int      `json:"sales_forecast"`
	ActualSales            int      `json:"actual_sales"`
	EndingInventory        int      `json:"ending_inventory"`
	DOSDays                *float64 `json:"dos_days"`
	TargetDOS              int      `json:"target_dos"`
	Status                 string   `json:"status"`
}

// EndToEndStock is the N+3 rolling projection across the four inventory pools
type EndToEndStock struct {
	ProductID          int64  `json:"product_id"`
	ProductName        string `json:"product_name"`
	ProductSKU         string `json:"product_sku"`
	CBUInHand          int    `json:"cbu_in_hand"`
	KitsInFactory      int    `json:"kits_in_factory"`
	SeaShipping        int    `json:"sea_shipping"`
	DomesticODF        int    `json:"domestic_odf"`
	EndToEndInventory  int    `json:"end_to_end_inventory"`
	NPlus3Stock        int    `json:"n_plus_3_stock"`
	ProjectionDate     string `json:"projection_date"`
}

// GeneratedPO describes one PO created by the weekly generator, with the
// inputs that produced its quantity.
type GeneratedPO struct {
	ProductID         int64  `json:"product_id"`
	ProductSKU        string `json:"product_sku"`
	Quantity          int    `json:"quantity"`
	WeeklyConsumption int    `json:"weekly_consumption"`
	SafetyStock       int    `json:"safety_stock"`
	CurrentInventory  int    `json:"current_inventory"`
}

// SkippedPO describes one product the generator skipped and why
type SkippedPO struct {
	ProductID  int64  `json:"product_id"`
	ProductSKU string `json:"product_sku"`
	Reason     string `json:"reason"`
}

// WeeklyGenerationResult is the per-run summary of one order week
type WeeklyGenerationResult struct {
	OrderWeek      string        `json:"order_week"`
	GeneratedCount int           `json:"generated_count"`
	SkippedCount   int           `json:"skipped_count"`
	PurchaseOrders []GeneratedPO `json:"purchase_orders"`
	Skipped        []SkippedPO   `json:"skipped"`
}

// AnnualGenerationResult accumulates 52 weekly runs for one year
type AnnualGenerationResult struct {
	Year       int                      `json:"year"`
	TotalWeeks int                      `json:"total_weeks"`
	Results    []WeeklyGenerationResult `json:"results"`
}

// DelayedShipment is a PO whose ETA has passed without delivery
type DelayedShipment struct {
	POID         int64   `json:"po_id"`
	PONumber     *string `json:"po_number"`
	ProductID    int64   `json:"product_id"`
	ETA          string  `json:"eta"`
	CurrentStage string  `json:"current_stage"`
	DelayDays    int     `json:"delay_days"`
	Status       string  `json:"status"`
}

// LowStockAlert flags a product whose projected cover is below target
type LowStockAlert struct {
	ProductID    int64    `json:"product_id"`
	ProductSKU   string   `json:"product_sku"`
	ProductName  string   `json:"product_name"`
	CurrentStock int      `json:"current_stock"`
	TargetDOS    int      `json:"target_dos"`
	DOSDays      *float64 `json:"dos_days"`
}

// DashboardSummary aggregates headline figures for the landing page
type DashboardSummary struct {
	TotalProducts    int       `json:"total_products"`
	ActiveProducts   int       `json:"active_products"`
	TotalStock       int       `json:"total_stock"`
	OpenPOCount      int       `json:"open_po_count"`
	OpenPOQuantity   int       `json:"open_po_quantity"`
	SalesLast30Days  int       `json:"sales_last_30_days"`
	DelayedShipments int       `json:"delayed_shipments"`
	GeneratedAt      time.Time `json:"generated_at"`
}
