package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaturdayOfWeek(t *testing.T) {
	// Week of Monday 2025-01-06: every day maps to Saturday 2025-01-11
	saturday := time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC)

	for day := 6; day <= 12; day++ {
		d := time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, saturday, SaturdayOfWeek(d), "day %s", d.Weekday())
	}
}

func TestFirstSaturdayOfYear(t *testing.T) {
	tests := []struct {
		year     int
		expected time.Time
	}{
		// Jan 1 2022 was itself a Saturday
		{2022, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)},
		// Jan 1 2023 was a Sunday
		{2023, time.Date(2023, time.January, 7, 0, 0, 0, 0, time.UTC)},
		// Jan 1 2025 was a Wednesday
		{2025, time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := FirstSaturdayOfYear(tt.year, time.UTC)
		assert.Equal(t, tt.expected, got, "year %d", tt.year)
		assert.Equal(t, time.Saturday, got.Weekday())
	}
}

func TestConsumptionWindow(t *testing.T) {
	orderWeek := time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC) // Saturday

	start, end := ConsumptionWindow(orderWeek)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), end)
}

func TestGeneratorSafetyStock(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int
		thresholdPct float64
		expected     int
	}{
		{"twenty percent of one hundred", 100, 20, 20},
		{"fractions are floored", 99, 20.5, 20}, // 20.295
		{"zero stock", 0, 20, 0},
		{"zero threshold", 100, 0, 0},
		{"full threshold", 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GeneratorSafetyStock(tt.currentStock, tt.thresholdPct))
		})
	}
}

func TestPOQuantity(t *testing.T) {
	tests := []struct {
		name        string
		consumption int
		leadWeeks   int
		safety      int
		inventory   int
		expected    int
	}{
		{"reference scenario", 30, 10, 20, 100, 220},
		{"large inventory clamps to zero", 5, 2, 10, 100000, 0},
		{"zero everything", 0, 10, 0, 0, 0},
		{"safety stock alone drives the order", 0, 10, 50, 20, 30},
		{"exact balance yields zero", 10, 2, 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := POQuantity(tt.consumption, tt.leadWeeks, tt.safety, tt.inventory)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestExpectedDeliveryWeek(t *testing.T) {
	orderWeek := time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC)

	got := ExpectedDeliveryWeek(orderWeek, 10)
	assert.Equal(t, time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Saturday, got.Weekday())
}
