// internal/service/forecast_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForecastFixture(products []domain.Product, inventories map[int64]*domain.Inventory, sales []domain.SalesRecord, now time.Time) *ForecastService {
	svc := NewForecastService(
		&fakeProductRepo{products: products},
		&fakeInventoryRepo{byProduct: inventories},
		&fakeSalesRepo{records: sales},
		&fakeForecastRepo{},
		NewSettingsService(&fakeConfigRepo{}),
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetPurchaseForecast(t *testing.T) {
	now := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	product := domain.Product{ID: 1, Name: "55 inch QLED TV", SafetyStockDays: 45, IsActive: true}
	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 10}}

	t.Run("recent sales drive demand", func(t *testing.T) {
		// Four ISO weeks of steady sales inside the demand window.
		sales := []domain.SalesRecord{
			{ProductID: 1, SaleDate: time.Date(2025, 5, 19, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
		}
		svc := newForecastFixture([]domain.Product{product}, inventories, sales, now)

		got, err := svc.GetPurchaseForecast(context.Background(), 1, 4)
		require.NoError(t, err)

		assert.Equal(t, 4, got.DataPointsUsed)
		assert.Equal(t, "High", got.ConfidenceLevel)
		assert.InDelta(t, 20.0, got.ForecastedWeeklyDemand, 0.01)
		assert.Equal(t, 0, got.SafetyStock) // flat demand, zero variance
		assert.Equal(t, 70, got.SuggestedPurchaseQty)
	})

	t.Run("sales older than eight weeks are not demand history", func(t *testing.T) {
		// All sales sit 9 to 12 weeks back. They still feed the variability
		// buffer, but the demand window is empty: the forecast falls back
		// to the target DOS rate at Low confidence with zero data points.
		sales := []domain.SalesRecord{
			{ProductID: 1, SaleDate: time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC), Quantity: 10, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), Quantity: 10, Channel: domain.ChannelEcommerce},
			{ProductID: 1, SaleDate: time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), Quantity: 20, Channel: domain.ChannelEcommerce},
		}
		svc := newForecastFixture([]domain.Product{product}, inventories, sales, now)

		got, err := svc.GetPurchaseForecast(context.Background(), 1, 4)
		require.NoError(t, err)

		assert.Equal(t, 0, got.DataPointsUsed)
		assert.Equal(t, "Low", got.ConfidenceLevel)
		assert.InDelta(t, 45.0/7.0, got.ForecastedWeeklyDemand, 0.01)
		// 1.65 * stddev([10,20,10,20]) * sqrt(10 weeks)
		assert.Equal(t, 30, got.SafetyStock)
		// round(45/7 * 4 + 30.12 - 10)
		assert.Equal(t, 46, got.SuggestedPurchaseQty)
	})
}
