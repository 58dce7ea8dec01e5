// internal/service/dashboard_service.go
package service

import (
	"context"
	"time"

	"github.com/andresuchdata/psi-planner/internal/cache"
	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the landing-page summary. The component
// queries are independent, so they fan out concurrently, and the combined
// result sits in the cache between writes.
type DashboardService struct {
	productRepo     repository.ProductRepository
	inventoryRepo   repository.InventoryRepository
	salesRepo       repository.SalesRepository
	poRepo          repository.PurchaseOrderRepository
	shipmentService *ShipmentService
	cache           cache.DashboardCache

	now func() time.Time
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	poRepo repository.PurchaseOrderRepository,
	shipmentService *ShipmentService,
	dashCache cache.DashboardCache,
) *DashboardService {
	return &DashboardService{
		productRepo:     productRepo,
		inventoryRepo:   inventoryRepo,
		salesRepo:       salesRepo,
		poRepo:          poRepo,
		shipmentService: shipmentService,
		cache:           dashCache,
		now:             time.Now,
	}
}

// GetSummary returns the dashboard summary, from cache when warm.
func (s *DashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	if cached, ok, err := s.cache.GetSummary(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache read failed, recomputing")
	} else if ok {
		return cached, nil
	}

	summary, err := s.computeSummary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}

	return summary, nil
}

// Invalidate drops the cached summary; call it after bulk writes.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func (s *DashboardService) computeSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{GeneratedAt: s.now()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.productRepo.List(gctx, false)
		if err != nil {
			return err
		}
		summary.TotalProducts = len(products)
		for _, p := range products {
			if p.IsActive {
				summary.ActiveProducts++
			}
		}
		return nil
	})

	g.Go(func() error {
		inventories, err := s.inventoryRepo.List(gctx)
		if err != nil {
			return err
		}
		for _, inv := range inventories {
			summary.TotalStock += inv.CurrentStock
		}
		return nil
	})

	g.Go(func() error {
		pos, err := s.openPOs(gctx)
		if err != nil {
			return err
		}
		summary.OpenPOCount = len(pos)
		for _, po := range pos {
			summary.OpenPOQuantity += po.Quantity
		}
		return nil
	})

	g.Go(func() error {
		end := s.now()
		start := end.AddDate(0, 0, -30)
		total, err := s.salesRepo.SumQuantityAll(gctx, start, end)
		if err != nil {
			return err
		}
		summary.SalesLast30Days = total
		return nil
	})

	g.Go(func() error {
		delayed, err := s.shipmentService.DelayedShipments(gctx)
		if err != nil {
			return err
		}
		summary.DelayedShipments = len(delayed)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *DashboardService) openPOs(ctx context.Context) ([]domain.PurchaseOrder, error) {
	const pageSize = 500

	var all []domain.PurchaseOrder
	for _, status := range []string{domain.POStatusOrdered, domain.POStatusShipped} {
		for offset := 0; ; offset += pageSize {
			page, err := s.poRepo.List(ctx, domain.PurchaseOrderFilter{
				Status: status,
				Limit:  pageSize,
				Offset: offset,
			})
			if err != nil {
				return nil, err
			}
			all = append(all, page...)
			if len(page) < pageSize {
				break
			}
		}
	}

	return all, nil
}
