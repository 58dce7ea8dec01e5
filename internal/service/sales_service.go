// internal/service/sales_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
)

// SalesService records sales and keeps inventory in lockstep with them.
type SalesService struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
}

func NewSalesService(salesRepo repository.SalesRepository, productRepo repository.ProductRepository) *SalesService {
	return &SalesService{salesRepo: salesRepo, productRepo: productRepo}
}

func (s *SalesService) List(ctx context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error) {
	if !domain.ValidChannel(filter.Channel) {
		return nil, fmt.Errorf("unknown channel %q: %w", filter.Channel, domain.ErrInvalidInput)
	}
	return s.salesRepo.List(ctx, filter)
}

func (s *SalesService) GetByID(ctx context.Context, id int64) (*domain.SalesRecord, error) {
	return s.salesRepo.GetByID(ctx, id)
}

// Create validates the sale and inserts it together with the stock
// decrement. The two move as one: a failed decrement rolls the sale back.
func (s *SalesService) Create(ctx context.Context, sale *domain.SalesRecord) error {
	if err := s.validate(sale); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, sale.ProductID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return fmt.Errorf("product %d is inactive: %w", sale.ProductID, domain.ErrNotFound)
	}

	if err := s.salesRepo.CreateWithStockDecrement(ctx, sale); err != nil {
		return err
	}

	log.Info().
		Int64("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Str("channel", sale.Channel).
		Msg("sale recorded")
	return nil
}

// Update applies a corrective edit and rebalances inventory by the quantity
// delta in the same transaction.
func (s *SalesService) Update(ctx context.Context, sale *domain.SalesRecord) error {
	if err := s.validate(sale); err != nil {
		return err
	}
	return s.salesRepo.UpdateWithRebalance(ctx, sale)
}

// Delete removes the sale and restores its quantity to stock.
func (s *SalesService) Delete(ctx context.Context, id int64) error {
	return s.salesRepo.DeleteWithRestore(ctx, id)
}

func (s *SalesService) validate(sale *domain.SalesRecord) error {
	if sale.Quantity <= 0 {
		return fmt.Errorf("sale quantity must be positive: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidChannel(sale.Channel) {
		return fmt.Errorf("unknown channel %q: %w", sale.Channel, domain.ErrInvalidInput)
	}
	// Branches trade Monday through Friday only.
	switch sale.SaleDate.Weekday() {
	case time.Saturday, time.Sunday:
		return fmt.Errorf("sale date %s falls on a weekend: %w",
			sale.SaleDate.Format("2006-01-02"), domain.ErrInvalidInput)
	}
	return nil
}
