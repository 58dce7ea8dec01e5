// internal/service/fakes_test.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
)

// In-memory repository fakes for service tests. Only the paths the services
// exercise are implemented.

type fakeProductRepo struct {
	products []domain.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) List(_ context.Context, activeOnly bool) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return domain.ErrConflict
		}
	}
	product.ID = int64(len(r.products) + 1)
	r.products = append(r.products, *product)
	return nil
}

func (r *fakeProductRepo) UpdatePlanningConfig(_ context.Context, id int64, safetyStockDays int, safetyThresholdPct float64, leadTimeWeeks int) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i].SafetyStockDays = safetyStockDays
			r.products[i].SafetyThresholdPercentage = safetyThresholdPct
			r.products[i].LeadTimeWeeks = leadTimeWeeks
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeInventoryRepo struct {
	byProduct map[int64]*domain.Inventory
}

func (r *fakeInventoryRepo) GetByProductID(_ context.Context, productID int64) (*domain.Inventory, error) {
	inv, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	copy := *inv
	return &copy, nil
}

func (r *fakeInventoryRepo) List(_ context.Context) ([]domain.Inventory, error) {
	out := make([]domain.Inventory, 0, len(r.byProduct))
	for _, inv := range r.byProduct {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInventoryRepo) Upsert(_ context.Context, inv *domain.Inventory) error {
	if r.byProduct == nil {
		r.byProduct = make(map[int64]*domain.Inventory)
	}
	copy := *inv
	r.byProduct[inv.ProductID] = &copy
	return nil
}

func (r *fakeInventoryRepo) Subtract(_ context.Context, productID int64, quantity int) error {
	inv, ok := r.byProduct[productID]
	if !ok || inv.CurrentStock < quantity {
		return domain.ErrInsufficientStock
	}
	inv.CurrentStock -= quantity
	return nil
}

func (r *fakeInventoryRepo) DeleteByProductID(_ context.Context, productID int64) error {
	delete(r.byProduct, productID)
	return nil
}

type fakeSalesRepo struct {
	records []domain.SalesRecord
	nextID  int64
}

func (r *fakeSalesRepo) List(_ context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error) {
	out := make([]domain.SalesRecord, 0)
	for _, rec := range r.records {
		if filter.ProductID != nil && rec.ProductID != *filter.ProductID {
			continue
		}
		if filter.StartDate != nil && rec.SaleDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rec.SaleDate.After(*filter.EndDate) {
			continue
		}
		if filter.Channel != "" && filter.Channel != domain.ChannelAll && rec.Channel != filter.Channel {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeSalesRepo) GetByID(_ context.Context, id int64) (*domain.SalesRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSalesRepo) SumQuantity(ctx context.Context, productID int64, start, end time.Time, channel string) (int, error) {
	records, _ := r.List(ctx, domain.SalesFilter{
		ProductID: &productID,
		StartDate: &start,
		EndDate:   &end,
		Channel:   channel,
	})
	total := 0
	for _, rec := range records {
		total += rec.Quantity
	}
	return total, nil
}

func (r *fakeSalesRepo) SumQuantityAll(ctx context.Context, start, end time.Time) (int, error) {
	records, _ := r.List(ctx, domain.SalesFilter{StartDate: &start, EndDate: &end})
	total := 0
	for _, rec := range records {
		total += rec.Quantity
	}
	return total, nil
}

func (r *fakeSalesRepo) CreateWithStockDecrement(_ context.Context, sale *domain.SalesRecord) error {
	r.nextID++
	sale.ID = r.nextID
	r.records = append(r.records, *sale)
	return nil
}

func (r *fakeSalesRepo) UpdateWithRebalance(_ context.Context, sale *domain.SalesRecord) error {
	for i := range r.records {
		if r.records[i].ID == sale.ID {
			r.records[i] = *sale
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeSalesRepo) DeleteWithRestore(_ context.Context, id int64) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePORepo struct {
	mu     sync.Mutex
	pos    []domain.PurchaseOrder
	nextID int64
}

func (r *fakePORepo) List(_ context.Context, filter domain.PurchaseOrderFilter) ([]domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.PurchaseOrder, 0)
	for _, po := range r.pos {
		if filter.ProductID != nil && po.ProductID != *filter.ProductID {
			continue
		}
		if filter.Status != "" && po.Status != filter.Status {
			continue
		}
		if filter.StartWeek != nil && po.OrderWeek.Before(*filter.StartWeek) {
			continue
		}
		if filter.EndWeek != nil && po.OrderWeek.After(*filter.EndWeek) {
			continue
		}
		out = append(out, po)
	}
	return out, nil
}

func (r *fakePORepo) GetByID(_ context.Context, id int64) (*domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pos {
		if r.pos[i].ID == id {
			po := r.pos[i]
			return &po, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePORepo) ListForWeek(_ context.Context, productID int64, orderWeek time.Time) ([]domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.PurchaseOrder, 0)
	for _, po := range r.pos {
		if po.ProductID == productID && po.OrderWeek.Equal(orderWeek) {
			out = append(out, po)
		}
	}
	return out, nil
}

func (r *fakePORepo) ListOpenWithETA(_ context.Context, productID int64, horizon time.Time) ([]domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.PurchaseOrder, 0)
	for _, po := range r.pos {
		if po.ProductID != productID || po.ETA == nil || po.ETA.After(horizon) {
			continue
		}
		if po.Status != domain.POStatusOrdered && po.Status != domain.POStatusShipped {
			continue
		}
		out = append(out, po)
	}
	return out, nil
}

func (r *fakePORepo) Create(_ context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	po.ID = r.nextID
	r.pos = append(r.pos, *po)
	return nil
}

func (r *fakePORepo) InsertGenerated(_ context.Context, po *domain.PurchaseOrder) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the partial unique index: one auto-generated PO per
	// (product, order week).
	for _, existing := range r.pos {
		if existing.AutoGenerated && existing.ProductID == po.ProductID && existing.OrderWeek.Equal(po.OrderWeek) {
			return false, nil
		}
	}

	r.nextID++
	po.ID = r.nextID
	po.AutoGenerated = true
	r.pos = append(r.pos, *po)
	return true, nil
}

func (r *fakePORepo) Update(_ context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pos {
		if r.pos[i].ID == po.ID {
			r.pos[i] = *po
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePORepo) UpdateStage(_ context.Context, id int64, stage, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pos {
		if r.pos[i].ID == id {
			r.pos[i].Stage = stage
			if status != "" {
				r.pos[i].Status = status
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePORepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pos {
		if r.pos[i].ID == id {
			r.pos = append(r.pos[:i], r.pos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeConfigRepo struct {
	byKey map[string]domain.SystemConfig
}

func (r *fakeConfigRepo) Get(_ context.Context, key string) (*domain.SystemConfig, error) {
	cfg, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cfg, nil
}

func (r *fakeConfigRepo) All(_ context.Context) ([]domain.SystemConfig, error) {
	out := make([]domain.SystemConfig, 0, len(r.byKey))
	for _, cfg := range r.byKey {
		out = append(out, cfg)
	}
	return out, nil
}

func (r *fakeConfigRepo) Upsert(_ context.Context, cfg *domain.SystemConfig) error {
	if r.byKey == nil {
		r.byKey = make(map[string]domain.SystemConfig)
	}
	r.byKey[cfg.ConfigKey] = *cfg
	return nil
}

func (r *fakeConfigRepo) Delete(_ context.Context, key string) error {
	if _, ok := r.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byKey, key)
	return nil
}

type fakePlanRepo struct {
	plans  []domain.MonthlyPlan
	nextID int64
}

func (r *fakePlanRepo) List(_ context.Context, filter domain.PlanFilter) ([]domain.MonthlyPlan, error) {
	out := make([]domain.MonthlyPlan, 0)
	for _, plan := range r.plans {
		if filter.ProductID != nil && plan.ProductID != *filter.ProductID {
			continue
		}
		if filter.PlanMonth != nil && !plan.PlanMonth.Equal(*filter.PlanMonth) {
			continue
		}
		if filter.Version != "" && plan.Version != filter.Version {
			continue
		}
		out = append(out, plan)
	}
	return out, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id int64) (*domain.MonthlyPlan, error) {
	for i := range r.plans {
		if r.plans[i].ID == id {
			plan := r.plans[i]
			return &plan, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePlanRepo) LatestForMonth(_ context.Context, productID int64, month time.Time) (*domain.MonthlyPlan, error) {
	var latest *domain.MonthlyPlan
	for i := range r.plans {
		plan := r.plans[i]
		if plan.ProductID != productID || !plan.PlanMonth.Equal(month) {
			continue
		}
		if latest == nil || plan.Version > latest.Version {
			latest = &plan
		}
	}
	return latest, nil
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.MonthlyPlan) error {
	for _, existing := range r.plans {
		if existing.ProductID == plan.ProductID && existing.PlanMonth.Equal(plan.PlanMonth) && existing.Version == plan.Version {
			return domain.ErrConflict
		}
	}
	r.nextID++
	plan.ID = r.nextID
	r.plans = append(r.plans, *plan)
	return nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.MonthlyPlan) error {
	for i := range r.plans {
		if r.plans[i].ID == plan.ID {
			r.plans[i] = *plan
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePlanRepo) Delete(_ context.Context, id int64) error {
	for i := range r.plans {
		if r.plans[i].ID == id {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeForecastRepo struct {
	forecasts []domain.SalesForecast
	nextID    int64
}

func (r *fakeForecastRepo) LatestForMonth(_ context.Context, productID int64, month time.Time, channel string) (*domain.SalesForecast, error) {
	var latest *domain.SalesForecast
	for i := range r.forecasts {
		f := r.forecasts[i]
		if f.ProductID != productID || !f.ForecastDate.Equal(month) || f.Channel != channel {
			continue
		}
		if latest == nil || f.Version > latest.Version {
			latest = &f
		}
	}
	return latest, nil
}

func (r *fakeForecastRepo) Create(_ context.Context, forecast *domain.SalesForecast) error {
	r.nextID++
	forecast.ID = r.nextID
	r.forecasts = append(r.forecasts, *forecast)
	return nil
}
