// internal/planning/aggregate.go
package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
)

// WeeklyPoint is one ISO week's summed sales quantity
type WeeklyPoint struct {
	Week     string `json:"week"`
	Quantity int    `json:"quantity"`
}

// WeekKey returns the ISO calendar week key for d, e.g. "2025-W03".
// Keys sort lexically in chronological order.
func WeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyTotals groups sales records into ISO calendar weeks and returns the
// summed quantities in chronological order. Week boundaries follow the ISO
// calendar, not a rolling 7-day window.
func WeeklyTotals(records []domain.SalesRecord) []WeeklyPoint {
	totals := make(map[string]int)
	for _, rec := range records {
		totals[WeekKey(rec.SaleDate)] += rec.Quantity
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]WeeklyPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, WeeklyPoint{Week: key, Quantity: totals[key]})
	}
	return points
}

// WeeklySeries returns just the ordered weekly quantities as floats, the
// shape the forecast formulas consume.
func WeeklySeries(records []domain.SalesRecord) []float64 {
	points := WeeklyTotals(records)
	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = float64(p.Quantity)
	}
	return series
}

// TotalQuantity sums the quantities of all records.
func TotalQuantity(records []domain.SalesRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.Quantity
	}
	return total
}
