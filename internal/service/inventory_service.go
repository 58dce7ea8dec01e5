// internal/service/inventory_service.go
package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
)

// InventoryService manages stock rows and the per-product planning knobs.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	psiService    *PSIService
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	psiService *PSIService,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		psiService:    psiService,
	}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Inventory, error) {
	return s.inventoryRepo.List(ctx)
}

func (s *InventoryService) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	return s.productRepo.List(ctx, activeOnly)
}

// CreateProduct registers a new product model. New products default to a
// one-week lead time so the generator never multiplies by zero.
func (s *InventoryService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.SKU == "" || product.Name == "" {
		return fmt.Errorf("sku and name are required: %w", domain.ErrInvalidInput)
	}
	if product.SafetyThresholdPercentage < 0 || product.SafetyThresholdPercentage > 100 {
		return fmt.Errorf("safety threshold must be between 0 and 100 percent: %w", domain.ErrInvalidInput)
	}
	if product.LeadTimeWeeks < 0 {
		return fmt.Errorf("lead time cannot be negative: %w", domain.ErrInvalidInput)
	}
	if product.LeadTimeWeeks == 0 {
		product.LeadTimeWeeks = 1
	}

	return s.productRepo.Create(ctx, product)
}

func (s *InventoryService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *InventoryService) GetByProductID(ctx context.Context, productID int64) (*domain.Inventory, error) {
	inv, err := s.inventoryRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory for product %d: %w", productID, domain.ErrNotFound)
	}
	return inv, nil
}

// Upsert creates or replaces the stock row after checking the product exists.
func (s *InventoryService) Upsert(ctx context.Context, inv *domain.Inventory) error {
	if inv.CurrentStock < 0 || inv.CBUInHand < 0 || inv.KitsInFactory < 0 {
		return fmt.Errorf("stock levels cannot be negative: %w", domain.ErrInvalidInput)
	}

	if _, err := s.productRepo.GetByID(ctx, inv.ProductID); err != nil {
		return err
	}

	return s.inventoryRepo.Upsert(ctx, inv)
}

// UpdateProductPlanningConfig validates and persists the per-product
// generator knobs.
func (s *InventoryService) UpdateProductPlanningConfig(ctx context.Context, productID int64, safetyStockDays int, safetyThresholdPct float64, leadTimeWeeks int) error {
	if safetyStockDays < 0 {
		return fmt.Errorf("safety stock days cannot be negative: %w", domain.ErrInvalidInput)
	}
	if safetyThresholdPct < 0 || safetyThresholdPct > 100 {
		return fmt.Errorf("safety threshold must be between 0 and 100 percent: %w", domain.ErrInvalidInput)
	}
	if leadTimeWeeks < 1 {
		return fmt.Errorf("lead time must be at least one week: %w", domain.ErrInvalidInput)
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}

	return s.productRepo.UpdatePlanningConfig(ctx, productID, safetyStockDays, safetyThresholdPct, leadTimeWeeks)
}

// LowStockAlerts flags active products whose projected days of supply is
// below the target, based on the trailing 30 days of demand.
func (s *InventoryService) LowStockAlerts(ctx context.Context) ([]domain.LowStockAlert, error) {
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	cfg, err := s.psiService.settings.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	now := s.psiService.now()
	alerts := make([]domain.LowStockAlert, 0)
	for _, product := range products {
		inv, err := s.inventoryRepo.GetByProductID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		currentStock := 0
		if inv != nil {
			currentStock = inv.CurrentStock
		}

		monthSales, err := s.psiService.salesRepo.SumQuantity(ctx, product.ID, now.AddDate(0, 0, -30), now, "")
		if err != nil {
			return nil, err
		}

		dos := planning.DOSFromActualSales(currentStock, monthSales)
		targetDOS := product.SafetyStockDays
		if targetDOS == 0 {
			targetDOS = cfg.TargetDOSEstablishedMax
		}

		status := planning.DOSStatus(dos, targetDOS, cfg)
		if status != planning.StatusLowStock {
			continue
		}

		alerts = append(alerts, domain.LowStockAlert{
			ProductID:    product.ID,
			ProductSKU:   product.SKU,
			ProductName:  product.Name,
			CurrentStock: currentStock,
			TargetDOS:    targetDOS,
			DOSDays:      dos,
		})
	}

	return alerts, nil
}
