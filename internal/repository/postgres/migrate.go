// internal/repository/postgres/migrate.go
package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		sku VARCHAR(50) NOT NULL UNIQUE,
		name VARCHAR(100) NOT NULL,
		shipping_mode VARCHAR(20) NOT NULL DEFAULT 'CKD F',
		status VARCHAR(50) NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		safety_stock_days INT NOT NULL DEFAULT 45,
		safety_threshold_percentage DOUBLE PRECISION NOT NULL DEFAULT 20.0,
		lead_time_weeks INT NOT NULL DEFAULT 10,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS inventory (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL UNIQUE REFERENCES products(id) ON DELETE CASCADE,
		current_stock INT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		cbu_in_hand INT NOT NULL DEFAULT 0,
		kits_in_factory INT NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sales_records (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		sale_date DATE NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		channel VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_records_product_date ON sales_records (product_id, sale_date)`,

	`CREATE TABLE IF NOT EXISTS sales_forecasts (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		forecast_date DATE NOT NULL,
		channel VARCHAR(20) NOT NULL,
		quantity INT NOT NULL,
		forecast_type VARCHAR(20) NOT NULL DEFAULT 'SI',
		version VARCHAR(10) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_sales_forecast UNIQUE (product_id, forecast_date, channel, forecast_type, version)
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		po_number VARCHAR(50) UNIQUE,
		quantity INT NOT NULL,
		forecasted_quantity INT,
		order_week DATE NOT NULL,
		order_date DATE,
		expected_delivery_week DATE,
		etd DATE,
		eta DATE,
		status VARCHAR(20) NOT NULL DEFAULT 'suggested',
		shipping_mode VARCHAR(20) NOT NULL DEFAULT 'CKD F',
		stage VARCHAR(50) NOT NULL DEFAULT 'CKD Prepared',
		stage_updated_at TIMESTAMPTZ,
		auto_generated BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_product_week ON purchase_orders (product_id, order_week)`,
	// The generator's at-most-one-per-week invariant. Partial so manual
	// entry stays unconstrained; the generator inserts through
	// ON CONFLICT DO NOTHING against this index.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_generated_po_per_week
		ON purchase_orders (product_id, order_week) WHERE auto_generated`,

	`CREATE TABLE IF NOT EXISTS monthly_plans (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		plan_month DATE NOT NULL,
		week_1_purchase INT NOT NULL DEFAULT 0,
		week_2_purchase INT NOT NULL DEFAULT 0,
		week_3_purchase INT NOT NULL DEFAULT 0,
		week_4_purchase INT NOT NULL DEFAULT 0,
		opening_balance INT NOT NULL DEFAULT 0,
		sales_forecast INT NOT NULL DEFAULT 0,
		ending_inventory INT NOT NULL DEFAULT 0,
		dos_days DOUBLE PRECISION,
		version VARCHAR(10) NOT NULL DEFAULT 'v001',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_monthly_plan UNIQUE (product_id, plan_month, version)
	)`,

	`CREATE TABLE IF NOT EXISTS system_config (
		id BIGSERIAL PRIMARY KEY,
		config_key VARCHAR(50) NOT NULL UNIQUE,
		config_value VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema idempotently.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	log.Info().Int("statements", len(migrations)).Msg("schema migration complete")
	return nil
}
