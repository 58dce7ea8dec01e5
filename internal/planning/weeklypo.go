// internal/planning/weeklypo.go
package planning

import (
	"fmt"
	"math"
	"time"
)

// SaturdayOfWeek returns the Saturday anchor of d's ISO week (Monday + 5).
func SaturdayOfWeek(d time.Time) time.Time {
	daysSinceMonday := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -daysSinceMonday)
	return monday.AddDate(0, 0, 5)
}

// FirstSaturdayOfYear returns the first Saturday on or after January 1.
func FirstSaturdayOfYear(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	daysToSaturday := (int(time.Saturday) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, daysToSaturday)
}

// ConsumptionWindow returns the Monday-Friday window preceding a Saturday
// order week: orderWeek-6d through orderWeek-2d inclusive.
func ConsumptionWindow(orderWeek time.Time) (start, end time.Time) {
	return orderWeek.AddDate(0, 0, -6), orderWeek.AddDate(0, 0, -2)
}

// GeneratorSafetyStock treats a fixed fraction of the current stock as the
// safety buffer: floor(current stock * threshold% / 100).
func GeneratorSafetyStock(currentStock int, thresholdPct float64) int {
	return int(float64(currentStock) * thresholdPct / 100.0)
}

// POQuantity is the weekly generator formula:
//
//	max(0, weekly consumption * lead time weeks + safety stock - current inventory)
//
// The result is never negative, for any input combination.
func POQuantity(weeklyConsumption, leadTimeWeeks, safetyStock, currentInventory int) int {
	leadTimeDemand := weeklyConsumption * leadTimeWeeks
	qty := leadTimeDemand + safetyStock - currentInventory
	return int(math.Max(0, float64(qty)))
}

// ExpectedDeliveryWeek offsets an order week by the product lead time.
func ExpectedDeliveryWeek(orderWeek time.Time, leadTimeWeeks int) time.Time {
	return orderWeek.AddDate(0, 0, 7*leadTimeWeeks)
}

// GeneratorNotes records the three computed inputs on the PO for audit.
func GeneratorNotes(weeklyConsumption, safetyStock, currentInventory int) string {
	return fmt.Sprintf("Auto-generated PO. Weekly consumption: %d, Safety stock: %d, Current inventory: %d",
		weeklyConsumption, safetyStock, currentInventory)
}
