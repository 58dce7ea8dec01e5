// internal/repository/postgres/config_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/jmoiron/sqlx"
)

type systemConfigRepository struct {
	db *DB
}

func NewSystemConfigRepository(db *DB) *systemConfigRepository {
	return &systemConfigRepository{db: db}
}

func (r *systemConfigRepository) Get(ctx context.Context, key string) (*domain.SystemConfig, error) {
	query := `
		SELECT id, config_key, config_value, description, updated_at
		FROM system_config
		WHERE config_key = $1
	`

	var cfg domain.SystemConfig
	if err := sqlx.GetContext(ctx, r.db, &cfg, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("config key %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get system config: %w", err)
	}

	return &cfg, nil
}

func (r *systemConfigRepository) All(ctx context.Context) ([]domain.SystemConfig, error) {
	query := `
		SELECT id, config_key, config_value, description, updated_at
		FROM system_config
		ORDER BY config_key
	`

	var configs []domain.SystemConfig
	if err := sqlx.SelectContext(ctx, r.db, &configs, query); err != nil {
		return nil, fmt.Errorf("failed to list system config: %w", err)
	}

	return configs, nil
}

func (r *systemConfigRepository) Upsert(ctx context.Context, cfg *domain.SystemConfig) error {
	query := `
		INSERT INTO system_config (config_key, config_value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (config_key) DO UPDATE SET
			config_value = EXCLUDED.config_value,
			description = COALESCE(NULLIF(EXCLUDED.description, ''), system_config.description),
			updated_at = NOW()
		RETURNING id, updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, cfg.ConfigKey, cfg.ConfigValue, cfg.Description).
		Scan(&cfg.ID, &cfg.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert system config: %w", err)
	}

	return nil
}

func (r *systemConfigRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM system_config WHERE config_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete system config: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("config key %s: %w", key, domain.ErrNotFound)
	}

	return nil
}
