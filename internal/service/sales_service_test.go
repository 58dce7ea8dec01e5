// internal/service/sales_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesServiceCreate(t *testing.T) {
	products := []domain.Product{
		{ID: 1, SKU: "TV-55Q", IsActive: true},
		{ID: 2, SKU: "FR-320", IsActive: false},
	}

	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sale    domain.SalesRecord
		wantErr error
	}{
		{
			name: "valid weekday sale",
			sale: domain.SalesRecord{ProductID: 1, SaleDate: monday, Quantity: 5, Channel: domain.ChannelEcommerce},
		},
		{
			name:    "saturday rejected",
			sale:    domain.SalesRecord{ProductID: 1, SaleDate: saturday, Quantity: 5, Channel: domain.ChannelEcommerce},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "sunday rejected",
			sale:    domain.SalesRecord{ProductID: 1, SaleDate: sunday, Quantity: 5, Channel: domain.ChannelEcommerce},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "zero quantity rejected",
			sale:    domain.SalesRecord{ProductID: 1, SaleDate: monday, Quantity: 0, Channel: domain.ChannelEcommerce},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown channel rejected",
			sale:    domain.SalesRecord{ProductID: 1, SaleDate: monday, Quantity: 5, Channel: "carrier-pigeon"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "inactive product rejected",
			sale:    domain.SalesRecord{ProductID: 2, SaleDate: monday, Quantity: 5, Channel: domain.ChannelEcommerce},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown product rejected",
			sale:    domain.SalesRecord{ProductID: 99, SaleDate: monday, Quantity: 5, Channel: domain.ChannelEcommerce},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSalesService(&fakeSalesRepo{}, &fakeProductRepo{products: products})

			err := svc.Create(context.Background(), &tt.sale)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.sale.ID)
		})
	}
}

func TestSalesServiceListRejectsUnknownChannel(t *testing.T) {
	svc := NewSalesService(&fakeSalesRepo{}, &fakeProductRepo{})

	_, err := svc.List(context.Background(), domain.SalesFilter{Channel: "fax"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
