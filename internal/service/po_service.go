// internal/service/po_service.go
package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
)

// POService handles manual purchase order CRUD. Generated POs come from the
// POGeneratorService; manual ones pass through here.
type POService struct {
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
}

func NewPOService(poRepo repository.PurchaseOrderRepository, productRepo repository.ProductRepository) *POService {
	return &POService{poRepo: poRepo, productRepo: productRepo}
}

func (s *POService) List(ctx context.Context, filter domain.PurchaseOrderFilter) ([]domain.PurchaseOrder, error) {
	if filter.Status != "" && !domain.ValidPOStatus(filter.Status) {
		return nil, fmt.Errorf("unknown PO status %q: %w", filter.Status, domain.ErrInvalidInput)
	}
	return s.poRepo.List(ctx, filter)
}

func (s *POService) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return s.poRepo.GetByID(ctx, id)
}

// Create stores a manual purchase order. The order week snaps to its ISO
// week's Saturday so manual and generated orders line up in the same weekly
// buckets.
func (s *POService) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	if err := s.validate(po); err != nil {
		return err
	}

	if _, err := s.productRepo.GetByID(ctx, po.ProductID); err != nil {
		return err
	}

	po.OrderWeek = planning.SaturdayOfWeek(po.OrderWeek)
	po.AutoGenerated = false
	if po.Status == "" {
		po.Status = domain.POStatusOrdered
	}

	return s.poRepo.Create(ctx, po)
}

func (s *POService) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	if err := s.validate(po); err != nil {
		return err
	}
	return s.poRepo.Update(ctx, po)
}

func (s *POService) Delete(ctx context.Context, id int64) error {
	return s.poRepo.Delete(ctx, id)
}

func (s *POService) validate(po *domain.PurchaseOrder) error {
	if po.Quantity < 0 {
		return fmt.Errorf("PO quantity cannot be negative: %w", domain.ErrInvalidInput)
	}
	if po.Status != "" && !domain.ValidPOStatus(po.Status) {
		return fmt.Errorf("unknown PO status %q: %w", po.Status, domain.ErrInvalidInput)
	}
	if po.Stage != "" && !domain.ValidStage(po.Stage) {
		return fmt.Errorf("unknown shipment stage %q: %w", po.Stage, domain.ErrInvalidInput)
	}
	if po.ETD != nil && po.ETA != nil && po.ETA.Before(*po.ETD) {
		return fmt.Errorf("ETA cannot precede ETD: %w", domain.ErrInvalidInput)
	}
	return nil
}
