package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []float64{0.5, 0.3, 0.15, 0.05}, cfg.ForecastWeights)
	assert.Equal(t, 70, cfg.LeadTimeDays)
	assert.InDelta(t, 10.0, cfg.LeadTimeWeeks(), 1e-9)
	assert.InDelta(t, 1.65, cfg.ZScore(), 1e-9)
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := DefaultConfig().ApplyOverrides(map[string]string{
		"lead_time_days":   "35",
		"forecast_weights": "0.6, 0.4",
		"service_level":    "0.99",
		"unknown_key":      "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, 35, cfg.LeadTimeDays)
	assert.Equal(t, []float64{0.6, 0.4}, cfg.ForecastWeights)
	assert.InDelta(t, 2.33, cfg.ZScore(), 1e-9)
}

func TestApplyOverridesRejectsMalformedValues(t *testing.T) {
	base := DefaultConfig()

	_, err := base.ApplyOverrides(map[string]string{"lead_time_days": "ten"})
	assert.Error(t, err)

	_, err = base.ApplyOverrides(map[string]string{"forecast_weights": "0.5,-0.1"})
	assert.Error(t, err)
}
