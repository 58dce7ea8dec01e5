// internal/service/plan_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlanVersioning(t *testing.T) {
	product := domain.Product{ID: 1, SKU: "TV-55Q", IsActive: true}
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	inventories := map[int64]*domain.Inventory{1: {ProductID: 1, CurrentStock: 150}}
	forecasts := []domain.SalesForecast{
		{ProductID: 1, ForecastDate: month, Channel: domain.ChannelAll, Quantity: 50, Version: "v001"},
	}

	planRepo := &fakePlanRepo{}
	psiSvc := NewPSIService(
		&fakeProductRepo{products: []domain.Product{product}},
		&fakeInventoryRepo{byProduct: inventories},
		&fakeSalesRepo{},
		&fakePORepo{},
		&fakeForecastRepo{forecasts: forecasts},
		planRepo,
		NewSettingsService(&fakeConfigRepo{}),
	)
	psiSvc.now = func() time.Time { return today }

	svc := NewPlanService(planRepo, psiSvc)

	first, err := svc.GeneratePlan(context.Background(), 1, month)
	require.NoError(t, err)
	assert.Equal(t, "v001", first.Version)
	assert.Equal(t, 150, first.OpeningBalance)
	assert.Equal(t, 50, first.SalesForecast)
	assert.Equal(t, 100, first.EndingInventory)

	// A second save for the same month appends, never overwrites.
	second, err := svc.GeneratePlan(context.Background(), 1, month)
	require.NoError(t, err)
	assert.Equal(t, "v002", second.Version)

	plans, err := svc.List(context.Background(), domain.PlanFilter{ProductID: &product.ID, PlanMonth: &month})
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestCreatePlanDuplicateVersionConflicts(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	planRepo := &fakePlanRepo{}
	svc := NewPlanService(planRepo, nil)

	plan := domain.MonthlyPlan{ProductID: 1, PlanMonth: month, Version: "v001"}
	require.NoError(t, svc.Create(context.Background(), &plan))

	dup := domain.MonthlyPlan{ProductID: 1, PlanMonth: month, Version: "v001"}
	err := svc.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreatePlanAssignsNextVersion(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	planRepo := &fakePlanRepo{plans: []domain.MonthlyPlan{
		{ID: 1, ProductID: 1, PlanMonth: month, Version: "v004"},
	}}
	svc := NewPlanService(planRepo, nil)

	plan := domain.MonthlyPlan{ProductID: 1, PlanMonth: month}
	require.NoError(t, svc.Create(context.Background(), &plan))
	assert.Equal(t, "v005", plan.Version)
}
