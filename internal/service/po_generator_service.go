// internal/service/po_generator_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnnualWeeks is the fixed run count for a full-year generation pass.
const AnnualWeeks = 52

// POGeneratorService creates suggested purchase orders from recent
// consumption. Runs are idempotent per (product, order week): re-running a
// week never duplicates a PO, whether the first one came from this process
// or a concurrent one.
type POGeneratorService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	poRepo        repository.PurchaseOrderRepository
	settings      *SettingsService

	now func() time.Time
}

func NewPOGeneratorService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	poRepo repository.PurchaseOrderRepository,
	settings *SettingsService,
) *POGeneratorService {
	return &POGeneratorService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		poRepo:        poRepo,
		settings:      settings,
		now:           time.Now,
	}
}

// GenerateWeekly runs one generation pass for the Saturday of forWeek's ISO
// week. Every active product gets either a generated PO (zero-quantity
// included, as an explicit no-order decision) or a skip entry.
func (s *POGeneratorService) GenerateWeekly(ctx context.Context, forWeek time.Time) (*domain.WeeklyGenerationResult, error) {
	orderWeek := planning.SaturdayOfWeek(forWeek)

	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	cfg, err := s.settings.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.WeeklyGenerationResult{
		OrderWeek:      orderWeek.Format("2006-01-02"),
		PurchaseOrders: []domain.GeneratedPO{},
		Skipped:        []domain.SkippedPO{},
	}

	for _, product := range products {
		generated, skipped, err := s.generateForProduct(ctx, product, orderWeek, cfg)
		if err != nil {
			return nil, fmt.Errorf("generation failed for product %d: %w", product.ID, err)
		}
		if skipped != nil {
			result.Skipped = append(result.Skipped, *skipped)
			continue
		}
		result.PurchaseOrders = append(result.PurchaseOrders, *generated)
	}

	result.GeneratedCount = len(result.PurchaseOrders)
	result.SkippedCount = len(result.Skipped)

	log.Info().
		Str("order_week", result.OrderWeek).
		Int("generated", result.GeneratedCount).
		Int("skipped", result.SkippedCount).
		Msg("weekly PO generation complete")

	return result, nil
}

// GenerateAnnual runs 52 weekly passes starting from the first Saturday of
// the year. Weeks that already have POs skip cleanly, so the annual run is
// safe to repeat after a partial failure.
func (s *POGeneratorService) GenerateAnnual(ctx context.Context, year int) (*domain.AnnualGenerationResult, error) {
	firstSaturday := planning.FirstSaturdayOfYear(year, s.now().Location())

	annual := &domain.AnnualGenerationResult{
		Year:       year,
		TotalWeeks: AnnualWeeks,
		Results:    make([]domain.WeeklyGenerationResult, 0, AnnualWeeks),
	}

	for week := 0; week < AnnualWeeks; week++ {
		orderWeek := firstSaturday.AddDate(0, 0, 7*week)
		weekly, err := s.GenerateWeekly(ctx, orderWeek)
		if err != nil {
			return nil, fmt.Errorf("annual generation stopped at week %s: %w", orderWeek.Format("2006-01-02"), err)
		}
		annual.Results = append(annual.Results, *weekly)
	}

	return annual, nil
}

func (s *POGeneratorService) generateForProduct(ctx context.Context, product domain.Product, orderWeek time.Time, cfg planning.Config) (*domain.GeneratedPO, *domain.SkippedPO, error) {
	existing, err := s.poRepo.ListForWeek(ctx, product.ID, orderWeek)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		return nil, &domain.SkippedPO{
			ProductID:  product.ID,
			ProductSKU: product.SKU,
			Reason:     "PO already exists for this week",
		}, nil
	}

	inventory, err := s.inventoryRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, nil, err
	}
	currentStock := 0
	if inventory != nil {
		currentStock = inventory.CurrentStock
	}

	windowStart, windowEnd := planning.ConsumptionWindow(orderWeek)
	consumption, err := s.salesRepo.SumQuantity(ctx, product.ID, windowStart, windowEnd, "")
	if err != nil {
		return nil, nil, err
	}

	leadTimeWeeks := product.LeadTimeWeeks
	if leadTimeWeeks <= 0 {
		leadTimeWeeks = int(cfg.LeadTimeWeeks())
	}

	safetyStock := planning.GeneratorSafetyStock(currentStock, product.SafetyThresholdPercentage)
	quantity := planning.POQuantity(consumption, leadTimeWeeks, safetyStock, currentStock)
	deliveryWeek := planning.ExpectedDeliveryWeek(orderWeek, leadTimeWeeks)
	etd := orderWeek.AddDate(0, 0, cfg.OrderToETDDays)
	eta := orderWeek.AddDate(0, 0, cfg.OrderToETADays)

	po := &domain.PurchaseOrder{
		ProductID:            product.ID,
		Quantity:             quantity,
		ForecastedQuantity:   &quantity,
		OrderWeek:            orderWeek,
		ExpectedDeliveryWeek: &deliveryWeek,
		ETD:                  &etd,
		ETA:                  &eta,
		Status:               domain.POStatusSuggested,
		ShippingMode:         product.ShippingMode,
		Stage:                domain.StageCKDPrepared,
		AutoGenerated:        true,
		Notes:                planning.GeneratorNotes(consumption, safetyStock, currentStock),
	}

	inserted, err := s.poRepo.InsertGenerated(ctx, po)
	if err != nil {
		return nil, nil, err
	}
	if !inserted {
		// A concurrent run won the insert between our check and now.
		return nil, &domain.SkippedPO{
			ProductID:  product.ID,
			ProductSKU: product.SKU,
			Reason:     "PO already exists for this week",
		}, nil
	}

	return &domain.GeneratedPO{
		ProductID:         product.ID,
		ProductSKU:        product.SKU,
		Quantity:          quantity,
		WeeklyConsumption: consumption,
		SafetyStock:       safetyStock,
		CurrentInventory:  currentStock,
	}, nil, nil
}

// WeeklyPOJob adapts the generator to the scheduler's Job interface,
// targeting the current week at fire time.
type WeeklyPOJob struct {
	generator *POGeneratorService
}

func NewWeeklyPOJob(generator *POGeneratorService) *WeeklyPOJob {
	return &WeeklyPOJob{generator: generator}
}

func (j *WeeklyPOJob) Name() string { return "weekly-po-generation" }

func (j *WeeklyPOJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err := j.generator.GenerateWeekly(ctx, time.Now())
	return err
}
