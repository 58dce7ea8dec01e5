// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
)

// ForecastService produces purchase suggestions from weekly sales history
// and stores the versioned monthly sales predictions the PSI table plans
// against.
type ForecastService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	forecastRepo  repository.SalesForecastRepository
	settings      *SettingsService

	now func() time.Time
}

func NewForecastService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	forecastRepo repository.SalesForecastRepository,
	settings *SettingsService,
) *ForecastService {
	return &ForecastService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		forecastRepo:  forecastRepo,
		settings:      settings,
		now:           time.Now,
	}
}

// GetWeeklySalesData returns the product's sales grouped into ISO calendar
// weeks over the trailing window.
func (s *ForecastService) GetWeeklySalesData(ctx context.Context, productID int64, weeks int) ([]planning.WeeklyPoint, error) {
	if weeks <= 0 {
		weeks = planning.SalesHistoryWeeks
	}

	records, err := s.weeklyHistory(ctx, productID, weeks)
	if err != nil {
		return nil, err
	}

	return planning.WeeklyTotals(records), nil
}

// GetPurchaseForecast computes the suggested purchase quantity for one
// product over the forecast horizon.
func (s *ForecastService) GetPurchaseForecast(ctx context.Context, productID int64, forecastWeeks int) (*domain.PurchaseForecast, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	inventory, err := s.inventoryRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// One fetch covers both windows: demand, point count, and confidence
	// read only the recent 8 weeks, safety stock reads the full 12.
	records, err := s.weeklyHistory(ctx, productID, planning.SafetyStockHistoryWeeks)
	if err != nil {
		return nil, err
	}

	demandStart := s.now().AddDate(0, 0, -7*planning.SalesHistoryWeeks)
	recent := make([]domain.SalesRecord, 0, len(records))
	for _, rec := range records {
		if !rec.SaleDate.Before(demandStart) {
			recent = append(recent, rec)
		}
	}

	forecast := planning.BuildPurchaseForecast(*product, inventory,
		planning.WeeklySeries(recent), planning.WeeklySeries(records), forecastWeeks, cfg)
	return &forecast, nil
}

// GetAllPurchaseForecasts computes forecasts for every active product.
func (s *ForecastService) GetAllPurchaseForecasts(ctx context.Context, forecastWeeks int) ([]domain.PurchaseForecast, error) {
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	forecasts := make([]domain.PurchaseForecast, 0, len(products))
	for _, product := range products {
		forecast, err := s.GetPurchaseForecast(ctx, product.ID, forecastWeeks)
		if err != nil {
			return nil, fmt.Errorf("forecast failed for product %d: %w", product.ID, err)
		}
		forecasts = append(forecasts, *forecast)
	}

	return forecasts, nil
}

// SaveSalesForecast stores a monthly sales prediction. Forecasts are
// append-only per (product, month, channel); a new version supersedes
// rather than overwrites.
func (s *ForecastService) SaveSalesForecast(ctx context.Context, forecast *domain.SalesForecast) error {
	if forecast.Quantity < 0 {
		return fmt.Errorf("forecast quantity cannot be negative: %w", domain.ErrInvalidInput)
	}
	if forecast.Channel == "" {
		forecast.Channel = domain.ChannelAll
	}
	if !domain.ValidChannel(forecast.Channel) {
		return fmt.Errorf("unknown channel %q: %w", forecast.Channel, domain.ErrInvalidInput)
	}
	if _, err := s.productRepo.GetByID(ctx, forecast.ProductID); err != nil {
		return err
	}

	forecast.ForecastDate = planning.MonthStart(forecast.ForecastDate)
	return s.forecastRepo.Create(ctx, forecast)
}

// GetSalesForecast returns the latest stored prediction for a month and
// channel, nil when none exists.
func (s *ForecastService) GetSalesForecast(ctx context.Context, productID int64, month time.Time, channel string) (*domain.SalesForecast, error) {
	if channel == "" {
		channel = domain.ChannelAll
	}
	return s.forecastRepo.LatestForMonth(ctx, productID, planning.MonthStart(month), channel)
}

func (s *ForecastService) weeklyHistory(ctx context.Context, productID int64, weeks int) ([]domain.SalesRecord, error) {
	end := s.now()
	start := end.AddDate(0, 0, -7*weeks)

	return s.salesRepo.List(ctx, domain.SalesFilter{
		ProductID: &productID,
		StartDate: &start,
		EndDate:   &end,
	})
}
