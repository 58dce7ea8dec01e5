// internal/service/settings_service.go
package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/psi-planner/internal/domain"
	"github.com/andresuchdata/psi-planner/internal/planning"
	"github.com/andresuchdata/psi-planner/internal/repository"
	"github.com/rs/zerolog/log"
)

// LeadTimeSummary breaks the effective lead time into its stages for the
// settings screen.
type LeadTimeSummary struct {
	OrderAdvanceDays int `json:"order_advance_days"`
	ProductionDays   int `json:"production_days"`
	ShippingDays     int `json:"shipping_days"`
	CustomsDays      int `json:"customs_days"`
	TotalLeadDays    int `json:"total_lead_days"`
	OrderToETDDays   int `json:"order_to_etd_days"`
	OrderToETADays   int `json:"order_to_eta_days"`
}

// SettingsService manages the key/value overrides layered on top of the
// compiled planning defaults, and hands the merged configuration to the
// other services.
type SettingsService struct {
	configRepo repository.SystemConfigRepository
}

func NewSettingsService(configRepo repository.SystemConfigRepository) *SettingsService {
	return &SettingsService{configRepo: configRepo}
}

func (s *SettingsService) List(ctx context.Context) ([]domain.SystemConfig, error) {
	return s.configRepo.All(ctx)
}

func (s *SettingsService) Get(ctx context.Context, key string) (*domain.SystemConfig, error) {
	return s.configRepo.Get(ctx, key)
}

// Set validates the value against the planning config parser before
// persisting, so a typo never poisons every later calculation.
func (s *SettingsService) Set(ctx context.Context, cfg *domain.SystemConfig) error {
	if cfg.ConfigKey == "" {
		return fmt.Errorf("config key is required: %w", domain.ErrInvalidInput)
	}

	if _, err := planning.DefaultConfig().ApplyOverrides(map[string]string{cfg.ConfigKey: cfg.ConfigValue}); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}

	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return err
	}

	log.Info().Str("key", cfg.ConfigKey).Str("value", cfg.ConfigValue).Msg("planning config override saved")
	return nil
}

func (s *SettingsService) Delete(ctx context.Context, key string) error {
	return s.configRepo.Delete(ctx, key)
}

// EffectiveConfig merges the stored overrides onto the compiled defaults.
// A malformed stored value is skipped with a warning rather than taking the
// planners down; Set should have rejected it anyway.
func (s *SettingsService) EffectiveConfig(ctx context.Context) (planning.Config, error) {
	cfg := planning.DefaultConfig()

	rows, err := s.configRepo.All(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config overrides: %w", err)
	}

	for _, row := range rows {
		merged, err := cfg.ApplyOverrides(map[string]string{row.ConfigKey: row.ConfigValue})
		if err != nil {
			log.Warn().Err(err).Str("key", row.ConfigKey).Msg("skipping malformed config override")
			continue
		}
		cfg = merged
	}

	return cfg, nil
}

// GetLeadTimeSummary reports the effective lead time breakdown.
func (s *SettingsService) GetLeadTimeSummary(ctx context.Context) (*LeadTimeSummary, error) {
	cfg, err := s.EffectiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &LeadTimeSummary{
		OrderAdvanceDays: cfg.OrderAdvanceDays,
		ProductionDays:   cfg.ProductionDays,
		ShippingDays:     cfg.ShippingDays,
		CustomsDays:      cfg.CustomsDays,
		TotalLeadDays:    cfg.LeadTimeDays,
		OrderToETDDays:   cfg.OrderToETDDays,
		OrderToETADays:   cfg.OrderToETADays,
	}, nil
}
