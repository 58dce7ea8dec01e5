// internal/repository/postgres/plan_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const planColumns = `
	id, product_id, plan_month, week_1_purchase, week_2_purchase,
	week_3_purchase, week_4_purchase, opening_balance, sales_forecast,
	ending_inventory, dos_days, version, created_at, updated_at
`

type monthlyPlanRepository struct {
	db *DB
}

func NewMonthlyPlanRepository(db *DB) *monthlyPlanRepository {
	return &monthlyPlanRepository{db: db}
}

func (r *monthlyPlanRepository) List(ctx context.Context, filter domain.PlanFilter) ([]domain.MonthlyPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM monthly_plans
		WHERE ($1::BIGINT IS NULL OR product_id = $1)
			AND ($2::DATE IS NULL OR plan_month = $2)
			AND ($3 = '' OR version = $3)
		ORDER BY plan_month DESC, product_id, version DESC
	`

	var plans []domain.MonthlyPlan
	err := sqlx.SelectContext(ctx, r.db, &plans, query, filter.ProductID, filter.PlanMonth, filter.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly plans: %w", err)
	}

	return plans, nil
}

func (r *monthlyPlanRepository) GetByID(ctx context.Context, id int64) (*domain.MonthlyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM monthly_plans WHERE id = $1`

	var plan domain.MonthlyPlan
	if err := sqlx.GetContext(ctx, r.db, &plan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("monthly plan %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get monthly plan: %w", err)
	}

	return &plan, nil
}

func (r *monthlyPlanRepository) LatestForMonth(ctx context.Context, productID int64, month time.Time) (*domain.MonthlyPlan, error) {
	// Versions are strings compared lexically; the highest one wins.
	query := `
		SELECT ` + planColumns + `
		FROM monthly_plans
		WHERE product_id = $1 AND plan_month = $2
		ORDER BY version DESC
		LIMIT 1
	`

	var plan domain.MonthlyPlan
	if err := sqlx.GetContext(ctx, r.db, &plan, query, productID, month); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest monthly plan: %w", err)
	}

	return &plan, nil
}

func (r *monthlyPlanRepository) Create(ctx context.Context, plan *domain.MonthlyPlan) error {
	query := `
		INSERT INTO monthly_plans (
			product_id, plan_month, week_1_purchase, week_2_purchase,
			week_3_purchase, week_4_purchase, opening_balance,
			sales_forecast, ending_inventory, dos_days, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		plan.ProductID, plan.PlanMonth, plan.Week1Purchase, plan.Week2Purchase,
		plan.Week3Purchase, plan.Week4Purchase, plan.OpeningBalance,
		plan.SalesForecast, plan.EndingInventory, plan.DOSDays, plan.Version).
		Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("plan for product %d month %s version %s: %w",
				plan.ProductID, plan.PlanMonth.Format("2006-01"), plan.Version, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create monthly plan: %w", err)
	}

	return nil
}

func (r *monthlyPlanRepository) Update(ctx context.Context, plan *domain.MonthlyPlan) error {
	query := `
		UPDATE monthly_plans
		SET week_1_purchase = $2, week_2_purchase = $3, week_3_purchase = $4,
			week_4_purchase = $5, opening_balance = $6, sales_forecast = $7,
			ending_inventory = $8, dos_days = $9, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.Week1Purchase, plan.Week2Purchase, plan.Week3Purchase,
		plan.Week4Purchase, plan.OpeningBalance, plan.SalesForecast,
		plan.EndingInventory, plan.DOSDays)
	if err != nil {
		return fmt.Errorf("failed to update monthly plan: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("monthly plan %d: %w", plan.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *monthlyPlanRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monthly_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete monthly plan: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("monthly plan %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

type salesForecastRepository struct {
	db *DB
}

func NewSalesForecastRepository(db *DB) *salesForecastRepository {
	return &salesForecastRepository{db: db}
}

func (r *salesForecastRepository) LatestForMonth(ctx context.Context, productID int64, month time.Time, channel string) (*domain.SalesForecast, error) {
	query := `
		SELECT id, product_id, forecast_date, channel, quantity, forecast_type, version, created_at
		FROM sales_forecasts
		WHERE product_id = $1 AND forecast_date = $2 AND channel = $3
		ORDER BY version DESC
		LIMIT 1
	`

	var forecast domain.SalesForecast
	if err := sqlx.GetContext(ctx, r.db, &forecast, query, productID, month, channel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sales forecast: %w", err)
	}

	return &forecast, nil
}

func (r *salesForecastRepository) Create(ctx context.Context, forecast *domain.SalesForecast) error {
	query := `
		INSERT INTO sales_forecasts (product_id, forecast_date, channel, quantity, forecast_type, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		forecast.ProductID, forecast.ForecastDate, forecast.Channel,
		forecast.Quantity, forecast.ForecastType, forecast.Version).
		Scan(&forecast.ID, &forecast.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("sales forecast: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create sales forecast: %w", err)
	}

	return nil
}
