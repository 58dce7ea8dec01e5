// internal/planning/psi.go
package planning

import (
	"math"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
)

// PSIInputs carries everything the monthly PSI roll-forward needs. The
// service layer assembles it from the store; the calculation itself is a
// pure function with no side effects.
type PSIInputs struct {
	Product     domain.Product
	TargetMonth time.Time
	Today       time.Time

	// PriorPlan is the previous month's plan at its highest version, nil
	// if none was ever persisted.
	PriorPlan *domain.MonthlyPlan

	// Inventory is the product's current stock row, nil if none exists.
	Inventory *domain.Inventory

	// MonthPOs are all purchase orders whose order week falls inside the
	// target month, any status. Status filtering happens here.
	MonthPOs []domain.PurchaseOrder

	// ActualSales is the summed sales quantity inside the target month.
	ActualSales int

	// ForecastRow is the all-channel SalesForecast for the target month at
	// its highest version, nil if none exists.
	ForecastRow *domain.SalesForecast

	// TrailingSales is the summed sales over the 90 days ending the day
	// before the target month starts, the last-resort forecast fallback.
	TrailingSales int
}

// MonthStart normalizes t to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last calendar day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// purchaseCounted reports whether a PO contributes to the monthly purchase
// buckets. Suggested and cancelled orders do not.
func purchaseCounted(status string) bool {
	switch status {
	case domain.POStatusOrdered, domain.POStatusShipped, domain.POStatusDelivered:
		return true
	}
	return false
}

// WeeklyPurchaseBuckets sums counted PO quantities into the four fixed
// in-month windows: days 1-7 -> W1, 8-14 -> W2, 15-21 -> W3, 22 through
// month end -> W4.
func WeeklyPurchaseBuckets(monthStart time.Time, pos []domain.PurchaseOrder) [4]int {
	week1End := monthStart.AddDate(0, 0, 6)
	week2End := monthStart.AddDate(0, 0, 13)
	week3End := monthStart.AddDate(0, 0, 20)

	var buckets [4]int
	for _, po := range pos {
		if !purchaseCounted(po.Status) {
			continue
		}
		switch {
		case !po.OrderWeek.After(week1End):
			buckets[0] += po.Quantity
		case !po.OrderWeek.After(week2End):
			buckets[1] += po.Quantity
		case !po.OrderWeek.After(week3End):
			buckets[2] += po.Quantity
		default:
			buckets[3] += po.Quantity
		}
	}
	return buckets
}

// resolveOpeningBalance prefers the prior month's ending inventory, falls
// back to current stock, else 0.
func resolveOpeningBalance(priorPlan *domain.MonthlyPlan, inventory *domain.Inventory) int {
	if priorPlan != nil {
		return priorPlan.EndingInventory
	}
	if inventory != nil {
		return inventory.CurrentStock
	}
	return 0
}

// resolveMonthlySalesForecast picks the sales figure to plan against:
// realized sales for a fully elapsed month, else the stored all-channel
// forecast, else a third of the trailing 90-day sales, else 0.
func resolveMonthlySalesForecast(in PSIInputs, monthEnd time.Time) int {
	if !monthEnd.After(in.Today) && in.ActualSales > 0 {
		return in.ActualSales
	}
	if in.ForecastRow != nil {
		return in.ForecastRow.Quantity
	}
	if in.TrailingSales > 0 {
		return in.TrailingSales / 3
	}
	return 0
}

// CalculateMonthlyPSI rolls forward one calendar month of purchase, sales
// and inventory for a product:
//
//	available inventory = sum(W1..W4 purchases) + opening balance
//	ending inventory    = available inventory - monthly sales forecast
//	DOS                 = ending inventory / forecast * 30 (nil if no forecast)
func CalculateMonthlyPSI(in PSIInputs, cfg Config) domain.MonthlyPSI {
	monthStart := MonthStart(in.TargetMonth)
	monthEnd := MonthEnd(in.TargetMonth)

	openingBalance := resolveOpeningBalance(in.PriorPlan, in.Inventory)

	buckets := WeeklyPurchaseBuckets(monthStart, in.MonthPOs)
	totalPurchases := buckets[0] + buckets[1] + buckets[2] + buckets[3]

	availableInventory := totalPurchases + openingBalance
	salesForecast := resolveMonthlySalesForecast(in, monthEnd)
	endingInventory := availableInventory - salesForecast

	dosDays := DOSFromForecast(endingInventory, salesForecast)
	if dosDays != nil {
		rounded := roundTo(*dosDays, 1)
		dosDays = &rounded
	}

	targetDOS := in.Product.SafetyStockDays
	if targetDOS == 0 {
		targetDOS = cfg.TargetDOSEstablishedMax
	}

	return domain.MonthlyPSI{
		ProductID:               in.Product.ID,
		ProductName:             in.Product.Name,
		ProductSKU:              in.Product.SKU,
		Month:                   monthStart.Format("2006-01"),
		OpeningBalance:          openingBalance,
		Week1Purchase:           buckets[0],
		Week2Purchase:           buckets[1],
		Week3Purchase:           buckets[2],
		Week4Purchase:           buckets[3],
		TotalWeeklyPurchases:    totalPurchases,
		AvailableSalesInventory: availableInventory,
		SalesForecast:           salesForecast,
		ActualSales:             in.ActualSales,
		EndingInventory:         endingInventory,
		DOSDays:                 dosDays,
		TargetDOS:               targetDOS,
		Status:                  DOSStatus(dosDays, targetDOS, cfg),
	}
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
