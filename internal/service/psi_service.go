// internal/service/psi_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
)

// PSIService assembles the monthly PSI roll-forward and the N+3 stock
// projection from stored data. The arithmetic lives in the planning package;
// this layer only fetches and persists.
type PSIService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	poRepo        repository.PurchaseOrderRepository
	forecastRepo  repository.SalesForecastRepository
	planRepo      repository.MonthlyPlanRepository
	settings      *SettingsService

	// now is swappable for tests
	now func() time.Time
}

func NewPSIService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	poRepo repository.PurchaseOrderRepository,
	forecastRepo repository.SalesForecastRepository,
	planRepo repository.MonthlyPlanRepository,
	settings *SettingsService,
) *PSIService {
	return &PSIService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		poRepo:        poRepo,
		forecastRepo:  forecastRepo,
		planRepo:      planRepo,
		settings:      settings,
		now:           time.Now,
	}
}

// CalculateMonthlyPSI computes the PSI row for one product and month.
func (s *PSIService) CalculateMonthlyPSI(ctx context.Context, productID int64, month time.Time) (*domain.MonthlyPSI, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	inputs, err := s.assemblePSIInputs(ctx, *product, month)
	if err != nil {
		return nil, err
	}

	psi := planning.CalculateMonthlyPSI(*inputs, cfg)
	return &psi, nil
}

// CalculateAllMonthlyPSI computes the PSI table for every active product.
func (s *PSIService) CalculateAllMonthlyPSI(ctx context.Context, month time.Time) ([]domain.MonthlyPSI, error) {
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.MonthlyPSI, 0, len(products))
	for _, product := range products {
		inputs, err := s.assemblePSIInputs(ctx, product, month)
		if err != nil {
			return nil, fmt.Errorf("psi failed for product %d: %w", product.ID, err)
		}
		results = append(results, planning.CalculateMonthlyPSI(*inputs, cfg))
	}

	return results, nil
}

// GetEndToEndStock computes the N+3 projection for one product.
func (s *PSIService) GetEndToEndStock(ctx context.Context, productID int64) (*domain.EndToEndStock, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	result, err := s.endToEndStock(ctx, *product)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllEndToEndStock computes the N+3 projection for every active product.
func (s *PSIService) GetAllEndToEndStock(ctx context.Context) ([]domain.EndToEndStock, error) {
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	results := make([]domain.EndToEndStock, 0, len(products))
	for _, product := range products {
		result, err := s.endToEndStock(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("projection failed for product %d: %w", product.ID, err)
		}
		results = append(results, *result)
	}

	return results, nil
}

func (s *PSIService) endToEndStock(ctx context.Context, product domain.Product) (*domain.EndToEndStock, error) {
	today := s.now()

	inventory, err := s.inventoryRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	horizon := today.AddDate(0, 0, planning.ProjectionHorizonDays)
	openPOs, err := s.poRepo.ListOpenWithETA(ctx, product.ID, horizon)
	if err != nil {
		return nil, err
	}

	result := planning.CalculateEndToEndStock(planning.ProjectionInputs{
		Product:   product,
		Inventory: inventory,
		Today:     today,
		OpenPOs:   openPOs,
	})
	return &result, nil
}

func (s *PSIService) assemblePSIInputs(ctx context.Context, product domain.Product, month time.Time) (*planning.PSIInputs, error) {
	monthStart := planning.MonthStart(month)
	monthEnd := planning.MonthEnd(month)
	priorMonth := monthStart.AddDate(0, -1, 0)

	priorPlan, err := s.planRepo.LatestForMonth(ctx, product.ID, priorMonth)
	if err != nil {
		return nil, err
	}

	inventory, err := s.inventoryRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	monthPOs, err := s.poRepo.List(ctx, domain.PurchaseOrderFilter{
		ProductID: &product.ID,
		StartWeek: &monthStart,
		EndWeek:   &monthEnd,
	})
	if err != nil {
		return nil, err
	}

	actualSales, err := s.salesRepo.SumQuantity(ctx, product.ID, monthStart, monthEnd, "")
	if err != nil {
		return nil, err
	}

	forecastRow, err := s.forecastRepo.LatestForMonth(ctx, product.ID, monthStart, domain.ChannelAll)
	if err != nil {
		return nil, err
	}

	trailingEnd := monthStart.AddDate(0, 0, -1)
	trailingStart := trailingEnd.AddDate(0, 0, -89)
	trailingSales, err := s.salesRepo.SumQuantity(ctx, product.ID, trailingStart, trailingEnd, "")
	if err != nil {
		return nil, err
	}

	return &planning.PSIInputs{
		Product:       product,
		TargetMonth:   monthStart,
		Today:         s.now(),
		PriorPlan:     priorPlan,
		Inventory:     inventory,
		MonthPOs:      monthPOs,
		ActualSales:   actualSales,
		ForecastRow:   forecastRow,
		TrailingSales: trailingSales,
	}, nil
}
