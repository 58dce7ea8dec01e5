// internal/service/shipment_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
)

// ShipmentService tracks purchase orders through the shipping timeline.
type ShipmentService struct {
	poRepo repository.PurchaseOrderRepository

	now func() time.Time
}

func NewShipmentService(poRepo repository.PurchaseOrderRepository) *ShipmentService {
	return &ShipmentService{poRepo: poRepo, now: time.Now}
}

// UpdateStage moves a PO to an explicit stage, optionally changing status
// with it.
func (s *ShipmentService) UpdateStage(ctx context.Context, id int64, stage, status string) error {
	if stage != "" && !domain.ValidStage(stage) {
		return fmt.Errorf("unknown shipment stage %q: %w", stage, domain.ErrInvalidInput)
	}
	if status != "" && !domain.ValidPOStatus(status) {
		return fmt.Errorf("unknown PO status %q: %w", status, domain.ErrInvalidInput)
	}
	return s.poRepo.UpdateStage(ctx, id, stage, status)
}

// DelayedShipments reports non-delivered POs whose ETA has already passed.
func (s *ShipmentService) DelayedShipments(ctx context.Context) ([]domain.DelayedShipment, error) {
	today := s.now()

	pos, err := s.listInTransit(ctx)
	if err != nil {
		return nil, err
	}

	delayed := make([]domain.DelayedShipment, 0, len(pos))
	for _, po := range pos {
		if po.ETA == nil || !po.ETA.Before(today) {
			continue
		}
		delayed = append(delayed, domain.DelayedShipment{
			POID:         po.ID,
			PONumber:     po.PONumber,
			ProductID:    po.ProductID,
			ETA:          po.ETA.Format("2006-01-02"),
			CurrentStage: po.Stage,
			DelayDays:    int(today.Sub(*po.ETA).Hours() / 24),
			Status:       po.Status,
		})
	}

	return delayed, nil
}

// ProgressStages advances stages from elapsed lead-time fraction for POs
// nobody updates by hand: 30% of the order-to-ETA span means the goods left
// the factory, 50% customs, 70% assembly, 90% arrived. Crossing 90% also
// marks the PO delivered.
func (s *ShipmentService) ProgressStages(ctx context.Context) (int, error) {
	today := s.now()

	pos, err := s.listInTransit(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, po := range pos {
		if po.ETA == nil {
			continue
		}

		stage, status := stageForProgress(elapsedFraction(po.OrderWeek, *po.ETA, today), po.Status)
		if stage == "" || stage == po.Stage {
			continue
		}

		if err := s.poRepo.UpdateStage(ctx, po.ID, stage, status); err != nil {
			return updated, fmt.Errorf("failed to progress PO %d: %w", po.ID, err)
		}
		updated++

		log.Info().
			Int64("po_id", po.ID).
			Str("stage", stage).
			Str("status", status).
			Msg("shipment stage advanced")
	}

	return updated, nil
}

// listInTransit pages through all ordered and shipped POs.
func (s *ShipmentService) listInTransit(ctx context.Context) ([]domain.PurchaseOrder, error) {
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

func elapsedFraction(orderWeek, eta, today time.Time) float64 {
	span := eta.Sub(orderWeek)
	if span <= 0 {
		return 1
	}
	frac := float64(today.Sub(orderWeek)) / float64(span)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func stageForProgress(frac float64, currentStatus string) (stage, status string) {
	switch {
	case frac >= 0.9:
		return domain.StageCBUWarehouse, domain.POStatusDelivered
	case frac >= 0.7:
		return domain.StageAssembly, currentStatus
	case frac >= 0.5:
		return domain.StageCustomsClearance, currentStatus
	case frac >= 0.3:
		return domain.StageShipped, domain.POStatusShipped
	}
	return "", currentStatus
}
