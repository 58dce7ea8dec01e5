// internal/service/po_generator_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeneratorFixture(products []domain.Product, inventories map[int64]*domain.Inventory, sales []domain.SalesRecord) (*POGeneratorService, *fakePORepo) {
	poRepo := &fakePORepo{}
	gen := NewPOGeneratorService(
		&fakeProductRepo{products: products},
		&fakeInventoryRepo{byProduct: inventories},
		&fakeSalesRepo{records: sales},
		poRepo,
		NewSettingsService(&fakeConfigRepo{}),
	)
	return gen, poRepo
}

func TestGenerateWeekly(t *testing.T) {
	product := domain.Product{
		ID:                        1,
		SKU:                       "TV-55Q",
		Name:                      "55 inch QLED TV",
		SafetyThresholdPercentage: 20,
		LeadTimeWeeks:             10,
		IsActive:                  true,
	}
	inventories := map[int64]*domain.Inventory{
		1: {ProductID: 1, CurrentStock: 100},
	}
	// Saturday 2025-01-11; the consumption window is Jan 5 through Jan 9.
	sales := []domain.SalesRecord{
		{ProductID: 1, SaleDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Quantity: 30, Channel: domain.ChannelEcommerce},
		{ProductID: 1, SaleDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Quantity: 99, Channel: domain.ChannelEcommerce}, // outside window
	}

	gen, poRepo := newGeneratorFixture([]domain.Product{product}, inventories, sales)

	result, err := gen.GenerateWeekly(context.Background(), time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2025-01-11", result.OrderWeek)
	require.Len(t, result.PurchaseOrders, 1)
	assert.Empty(t, result.Skipped)

	generated := result.PurchaseOrders[0]
	assert.Equal(t, 30, generated.WeeklyConsumption)
	assert.Equal(t, 20, generated.SafetyStock)
	// 30 * 10 weeks + 20 safety - 100 on hand
	assert.Equal(t, 220, generated.Quantity)

	require.Len(t, poRepo.pos, 1)
	po := poRepo.pos[0]
	assert.Equal(t, domain.POStatusSuggested, po.Status)
	assert.Equal(t, domain.StageCKDPrepared, po.Stage)
	assert.True(t, po.AutoGenerated)
	require.NotNil(t, po.ForecastedQuantity)
	assert.Equal(t, 220, *po.ForecastedQuantity)
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), po.OrderWeek)
	assert.Contains(t, po.Notes, "Weekly consumption: 30")
}

func TestGenerateWeeklyIdempotent(t *testing.T) {
	product := domain.Product{ID: 1, SKU: "TV-55Q", LeadTimeWeeks: 10, IsActive: true}
	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 50}}

	gen, poRepo := newGeneratorFixture([]domain.Product{product}, inventories, nil)

	week := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	first, err := gen.GenerateWeekly(context.Background(), week)
	require.NoError(t, err)
	assert.Equal(t, 1, first.GeneratedCount)

	second, err := gen.GenerateWeekly(context.Background(), week)
	require.NoError(t, err)
	assert.Equal(t, 0, second.GeneratedCount)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, "PO already exists for this week", second.Skipped[0].Reason)

	// Still exactly one PO for the week.
	assert.Len(t, poRepo.pos, 1)
}

func TestGenerateWeeklyZeroQuantity(t *testing.T) {
	// No sales and plenty of stock: the PO is still created at quantity 0
	// as an explicit no-order decision.
	product := domain.Product{ID: 2, SKU: "FR-320", LeadTimeWeeks: 4, IsActive: true}
	inventories := map[int64]*domain.Inventory{2: {ProductID: 2, CurrentStock: 500}}

	gen, poRepo := newGeneratorFixture([]domain.Product{product}, inventories, nil)

	result, err := gen.GenerateWeekly(context.Background(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, result.PurchaseOrders, 1)
	assert.Equal(t, 0, result.PurchaseOrders[0].Quantity)
	require.Len(t, poRepo.pos, 1)
	assert.Equal(t, 0, poRepo.pos[0].Quantity)
}

func TestGenerateWeeklySkipsInactiveProducts(t *testing.T) {
	products := []domain.Product{
		{ID: 1, SKU: "TV-55Q", LeadTimeWeeks: 10, IsActive: true},
		{ID: 2, SKU: "FR-320", LeadTimeWeeks: 4, IsActive: false},
	}
	inventories := map[int64]*domain.Inventory{
		1: {ProductID: 1, CurrentStock: 10},
		2: {ProductID: 2, CurrentStock: 10},
	}

	gen, poRepo := newGeneratorFixture(products, inventories, nil)

	result, err := gen.GenerateWeekly(context.Background(), time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1, result.GeneratedCount)
	require.Len(t, poRepo.pos, 1)
	assert.Equal(t, int64(1), poRepo.pos[0].ProductID)
}

// racingPORepo hides the rival's row from the existence check so the insert
// itself has to absorb the conflict, the way a real concurrent run would.
type racingPORepo struct {
	*fakePORepo
}

func (r *racingPORepo) ListForWeek(context.Context, int64, time.Time) ([]domain.PurchaseOrder, error) {
	return nil, nil
}

func TestGenerateWeeklyRaceLosesCleanly(t *testing.T) {
	product := domain.Product{ID: 1, SKU: "TV-55Q", LeadTimeWeeks: 10, IsActive: true}
	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 50}}

	poRepo := &racingPORepo{fakePORepo: &fakePORepo{}}
	gen := NewPOGeneratorService(
		&fakeProductRepo{products: []domain.Product{product}},
		&fakeInventoryRepo{byProduct: inventories},
		&fakeSalesRepo{},
		poRepo,
		NewSettingsService(&fakeConfigRepo{}),
	)

	week := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)

	// The rival's insert lands between our existence check and our insert.
	_, err := poRepo.InsertGenerated(context.Background(), &domain.PurchaseOrder{
		ProductID: 1,
		OrderWeek: week,
		Status:    domain.POStatusSuggested,
	})
	require.NoError(t, err)

	result, err := gen.GenerateWeekly(context.Background(), week)
	require.NoError(t, err)
	assert.Equal(t, 0, result.GeneratedCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Len(t, poRepo.pos, 1)
}

func TestGenerateAnnual(t *testing.T) {
	product := domain.Product{ID: 1, SKU: "TV-55Q", LeadTimeWeeks: 10, IsActive: true}
	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 50}}

	gen, poRepo := newGeneratorFixture([]domain.Product{product}, inventories, nil)

	annual, err := gen.GenerateAnnual(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, annual.Year)
	assert.Equal(t, 52, annual.TotalWeeks)
	require.Len(t, annual.Results, 52)

	// First Saturday of 2025 is January 4; weeks step by 7 days.
	assert.Equal(t, "2025-01-04", annual.Results[0].OrderWeek)
	assert.Equal(t, "2025-01-11", annual.Results[1].OrderWeek)

	assert.Len(t, poRepo.pos, 52)
}

func TestGenerateAnnualRerunSkipsExisting(t *testing.T) {
	product := domain.Product{ID: 1, SKU: "TV-55Q", LeadTimeWeeks: 10, IsActive: true}
	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 50}}

	gen, poRepo := newGeneratorFixture([]domain.Product{product}, inventories, nil)

	_, err := gen.GenerateAnnual(context.Background(), 2025)
	require.NoError(t, err)

	rerun, err := gen.GenerateAnnual(context.Background(), 2025)
	require.NoError(t, err)

	for _, weekly := range rerun.Results {
		assert.Equal(t, 0, weekly.GeneratedCount)
		assert.Equal(t, 1, weekly.SkippedCount)
	}
	assert.Len(t, poRepo.pos, 52)
}
