// internal/planning/forecast.go
package planning

import (
	"math"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Forecast window defaults
const (
	DefaultForecastWeeks    = 4
	SalesHistoryWeeks       = 8
	SafetyStockHistoryWeeks = 12

	// Fewer weekly observations than this and the demand signal is too
	// thin: safety stock collapses to 0 and confidence drops to Low.
	MinDataPointsForConfidence = 4
)

// WeightedMovingAverage computes the weighted moving average of series,
// most-recent-last. Only the last len(weights) points are used; if fewer
// exist, the window is left-padded with zeros. An empty series yields 0.
func WeightedMovingAverage(series []float64, weights []float64) float64 {
	if len(series) == 0 || len(weights) == 0 {
		return 0
	}

	window := make([]float64, len(weights))
	offset := len(weights) - len(series)
	if offset < 0 {
		copy(window, series[len(series)-len(weights):])
	} else {
		copy(window[offset:], series)
	}

	sum := 0.0
	for i, w := range weights {
		sum += window[i] * w
	}
	return sum
}

// SafetyStock computes the demand-variability buffer from the last 12 weeks
// of weekly sales: z * sigma * sqrt(lead time in weeks), clamped at 0.
// With fewer than 4 weekly observations the result is 0.
func SafetyStock(weeklySales []float64, cfg Config) float64 {
	if len(weeklySales) < MinDataPointsForConfidence {
		return 0
	}

	// Sample standard deviation of weekly demand
	sigma := stat.StdDev(weeklySales, nil)

	safetyStock := cfg.ZScore() * sigma * math.Sqrt(cfg.LeadTimeWeeks())
	return math.Max(0, safetyStock)
}

// BuildPurchaseForecast turns a product's weekly sales history and current
// inventory into a suggested purchase quantity:
//
//	required  = forecasted weekly demand * forecastWeeks + safety stock
//	suggested = max(0, required - current stock)
//
// demandSales is the recent 8-week window and drives the demand average,
// the data point count, and the confidence label. safetySales is the wider
// 12-week window feeding the variability buffer. With no recent sales the
// weekly demand falls back to the product's target DOS converted to weeks
// (SafetyStockDays / 7).
func BuildPurchaseForecast(product domain.Product, inventory *domain.Inventory, demandSales, safetySales []float64, forecastWeeks int, cfg Config) domain.PurchaseForecast {
	if forecastWeeks <= 0 {
		forecastWeeks = DefaultForecastWeeks
	}

	currentStock := 0
	if inventory != nil {
		currentStock = inventory.CurrentStock
	}

	var forecastedDemand float64
	if len(demandSales) > 0 {
		forecastedDemand = WeightedMovingAverage(demandSales, cfg.ForecastWeights)
	} else {
		forecastedDemand = float64(product.SafetyStockDays) / 7.0
	}

	safetyStock := SafetyStock(safetySales, cfg)
	requiredInventory := forecastedDemand*float64(forecastWeeks) + safetyStock
	suggestedQty := math.Max(0, requiredInventory-float64(currentStock))

	confidence := "Low"
	if len(demandSales) >= MinDataPointsForConfidence {
		confidence = "High"
	}

	return domain.PurchaseForecast{
		ProductID:              product.ID,
		ProductName:            product.Name,
		CurrentStock:           currentStock,
		ForecastedWeeklyDemand: math.Round(forecastedDemand*100) / 100,
		SafetyStock:            int(math.Round(safetyStock)),
		RequiredInventory:      int(math.Round(requiredInventory)),
		SuggestedPurchaseQty:   int(math.Round(suggestedQty)),
		ConfidenceLevel:        confidence,
		DataPointsUsed:         len(demandSales),
	}
}
