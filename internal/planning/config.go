// internal/planning/config.go
package planning

import (
	"fmt"
	"strconv"
	"strings"
)

// Config carries the calculation constants shared by all planners. It is an
// explicit value object passed into every calculator, never process-global
// state, so calculators stay testable with varied configurations.
type Config struct {
	// ForecastWeights for the weighted moving average, most-recent-last.
	ForecastWeights []float64

	// Lead time breakdown in days. Order week + OrderToETDDays = ETD,
	// order week + OrderToETADays = ETA.
	OrderAdvanceDays int
	ShippingDays     int
	CustomsDays      int
	ProductionDays   int
	LeadTimeDays     int
	OrderToETDDays   int
	OrderToETADays   int

	// Target DOS ranges. New branches are healthy inside
	// [TargetDOSNewMin, TargetDOSNewMax]; established branches at or
	// below TargetDOSEstablishedMax.
	TargetDOSNewMin         int
	TargetDOSNewMax         int
	TargetDOSEstablishedMax int

	// ServiceLevel for the safety stock z-score (0.95 => 1.65, else 2.33).
	ServiceLevel float64
}

// DefaultConfig returns the compiled-in planning defaults.
func DefaultConfig() Config {
	return Config{
		ForecastWeights:         []float64{0.5, 0.3, 0.15, 0.05},
		OrderAdvanceDays:        28,
		ShippingDays:            45,
		CustomsDays:             10,
		ProductionDays:          15,
		LeadTimeDays:            70,
		OrderToETDDays:          28,
		OrderToETADays:          73,
		TargetDOSNewMin:         50,
		TargetDOSNewMax:         60,
		TargetDOSEstablishedMax: 45,
		ServiceLevel:            0.95,
	}
}

// ZScore returns the z-score matching the configured service level.
func (c Config) ZScore() float64 {
	if c.ServiceLevel == 0.95 {
		return 1.65
	}
	return 2.33
}

// LeadTimeWeeks returns the configured total lead time expressed in weeks.
func (c Config) LeadTimeWeeks() float64 {
	return float64(c.LeadTimeDays) / 7.0
}

// ApplyOverrides layers key/value overrides from the system_config store on
// top of c. Unknown keys are ignored; malformed values for known keys are
// rejected.
func (c Config) ApplyOverrides(overrides map[string]string) (Config, error) {
	out := c

	for key, value := range overrides {
		var err error
		switch key {
		case "forecast_weights":
			out.ForecastWeights, err = parseWeights(value)
		case "order_advance_days":
			out.OrderAdvanceDays, err = strconv.Atoi(value)
		case "shipping_days":
			out.ShippingDays, err = strconv.Atoi(value)
		case "customs_days":
			out.CustomsDays, err = strconv.Atoi(value)
		case "production_days":
			out.ProductionDays, err = strconv.Atoi(value)
		case "lead_time_days":
			out.LeadTimeDays, err = strconv.Atoi(value)
		case "order_to_etd_days":
			out.OrderToETDDays, err = strconv.Atoi(value)
		case "order_to_eta_days":
			out.OrderToETADays, err = strconv.Atoi(value)
		case "target_dos_new_min":
			out.TargetDOSNewMin, err = strconv.Atoi(value)
		case "target_dos_new_max":
			out.TargetDOSNewMax, err = strconv.Atoi(value)
		case "target_dos_established_max":
			out.TargetDOSEstablishedMax, err = strconv.Atoi(value)
		case "service_level":
			out.ServiceLevel, err = strconv.ParseFloat(value, 64)
		}
		if err != nil {
			return c, fmt.Errorf("invalid value %q for config key %s: %w", value, key, err)
		}
	}

	return out, nil
}

func parseWeights(value string) ([]float64, error) {
	parts := strings.Split(value, ",")
	weights := make([]float64, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("negative weight %v", w)
		}
		weights = append(weights, w)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("empty weight list")
	}
	return weights, nil
}
