// internal/service/shipment_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageForProgress(t *testing.T) {
	tests := []struct {
		name       string
		frac       float64
		wantStage  string
		wantStatus string
	}{
		{"too early", 0.1, "", domain.POStatusOrdered},
		{"left the factory", 0.3, domain.StageShipped, domain.POStatusShipped},
		{"in customs", 0.55, domain.StageCustomsClearance, domain.POStatusOrdered},
		{"assembling", 0.75, domain.StageAssembly, domain.POStatusOrdered},
		{"arrived", 0.95, domain.StageCBUWarehouse, domain.POStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, status := stageForProgress(tt.frac, domain.POStatusOrdered)
			assert.Equal(t, tt.wantStage, stage)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestProgressStages(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Ordered 60 days ago with a 73-day span: 82% elapsed, should advance
	// to Assembly.
	orderWeek := today.AddDate(0, 0, -60)
	eta := orderWeek.AddDate(0, 0, 73)
	poRepo := &fakePORepo{pos: []domain.PurchaseOrder{
		{ID: 1, ProductID: 1, OrderWeek: orderWeek, ETA: &eta, Status: domain.POStatusShipped, Stage: domain.StageShipped},
	}}

	svc := NewShipmentService(poRepo)
	svc.now = func() time.Time { return today }

	updated, err := svc.ProgressStages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, domain.StageAssembly, poRepo.pos[0].Stage)
	assert.Equal(t, domain.POStatusShipped, poRepo.pos[0].Status)
}

func TestProgressStagesMarksDelivered(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	orderWeek := today.AddDate(0, 0, -73)
	eta := orderWeek.AddDate(0, 0, 73) // ETA is today, 100% elapsed
	poRepo := &fakePORepo{pos: []domain.PurchaseOrder{
		{ID: 1, ProductID: 1, OrderWeek: orderWeek, ETA: &eta, Status: domain.POStatusShipped, Stage: domain.StageAssembly},
	}}

	svc := NewShipmentService(poRepo)
	svc.now = func() time.Time { return today }

	updated, err := svc.ProgressStages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, domain.StageCBUWarehouse, poRepo.pos[0].Stage)
	assert.Equal(t, domain.POStatusDelivered, poRepo.pos[0].Status)
}

func TestDelayedShipments(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	lateETA := today.AddDate(0, 0, -5)
	futureETA := today.AddDate(0, 0, 5)
	poRepo := &fakePORepo{pos: []domain.PurchaseOrder{
		{ID: 1, ProductID: 1, ETA: &lateETA, Status: domain.POStatusShipped, Stage: domain.StageCustomsClearance},
		{ID: 2, ProductID: 1, ETA: &futureETA, Status: domain.POStatusShipped, Stage: domain.StageShipped},
		{ID: 3, ProductID: 1, ETA: &lateETA, Status: domain.POStatusDelivered, Stage: domain.StageCBUWarehouse},
	}}

	svc := NewShipmentService(poRepo)
	svc.now = func() time.Time { return today }

	delayed, err := svc.DelayedShipments(context.Background())
	require.NoError(t, err)

	require.Len(t, delayed, 1)
	assert.Equal(t, int64(1), delayed[0].POID)
	assert.Equal(t, 5, delayed[0].DelayDays)
	assert.Equal(t, domain.StageCustomsClearance, delayed[0].CurrentStage)
}

func TestUpdateStageValidation(t *testing.T) {
	svc := NewShipmentService(&fakePORepo{})

	err := svc.UpdateStage(context.Background(), 1, "Teleporting", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.UpdateStage(context.Background(), 1, domain.StageShipped, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
