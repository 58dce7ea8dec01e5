package planning

import (
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(y int, m time.Month, d, qty int) domain.SalesRecord {
	return domain.SalesRecord{
		SaleDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Quantity: qty,
	}
}

func TestWeekKey(t *testing.T) {
	// 2024-12-30 (Monday) belongs to ISO week 1 of 2025
	assert.Equal(t, "2025-W01", WeekKey(time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-W02", WeekKey(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)))
}

func TestWeeklyTotalsGroupsByISOWeek(t *testing.T) {
	records := []domain.SalesRecord{
		sale(2025, time.January, 6, 3),  // W02 Monday
		sale(2025, time.January, 10, 4), // W02 Friday
		sale(2025, time.January, 13, 7), // W03 Monday
		sale(2025, time.January, 12, 5), // W02 Sunday - ISO week, not rolling window
	}

	points := WeeklyTotals(records)
	require.Len(t, points, 2)

	assert.Equal(t, WeeklyPoint{Week: "2025-W02", Quantity: 12}, points[0])
	assert.Equal(t, WeeklyPoint{Week: "2025-W03", Quantity: 7}, points[1])
}

func TestWeeklySeriesIsChronological(t *testing.T) {
	records := []domain.SalesRecord{
		sale(2025, time.February, 3, 30),
		sale(2025, time.January, 6, 10),
		sale(2025, time.January, 13, 20),
	}

	assert.Equal(t, []float64{10, 20, 30}, WeeklySeries(records))
}

func TestTotalQuantity(t *testing.T) {
	assert.Zero(t, TotalQuantity(nil))

	records := []domain.SalesRecord{
		sale(2025, time.January, 6, 3),
		sale(2025, time.January, 7, 4),
	}
	assert.Equal(t, 7, TotalQuantity(records))
}
