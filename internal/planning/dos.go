// internal/planning/dos.go
package planning

// DOS status labels
const (
	StatusHealthy   = "Healthy"
	StatusLowStock  = "Low Stock"
	StatusOverstock = "Overstock"
	StatusNoSales   = "No Sales"
)

// DOSFromForecast computes days of supply from the monthly sales forecast:
// (ending inventory / monthly forecast) * 30. A forecast of zero or less
// yields nil, never infinity.
func DOSFromForecast(endingInventory, monthlySalesForecast int) *float64 {
	if monthlySalesForecast <= 0 {
		return nil
	}
	dos := float64(endingInventory) / float64(monthlySalesForecast) * 30
	return &dos
}

// DOSFromActualSales computes days of supply against realized demand:
// ending inventory divided by the month's average daily sales. The two DOS
// variants are intentionally kept as distinct operations; downstream
// planning workflows rely on the forecast-based one.
func DOSFromActualSales(endingInventory, monthlySales int) *float64 {
	if monthlySales <= 0 {
		return nil
	}
	dailySales := float64(monthlySales) / 30
	dos := float64(endingInventory) / dailySales
	return &dos
}

// DOSStatus classifies a DOS value against a product's target DOS.
// Targets at 50 days or more follow the new-branch policy (healthy inside
// 50-60); lower targets follow the established-branch policy (healthy at or
// below 45). A nil DOS means the month has no sales signal at all.
func DOSStatus(dosDays *float64, targetDOS int, cfg Config) string {
	if dosDays == nil {
		return StatusNoSales
	}

	dos := *dosDays
	if targetDOS >= cfg.TargetDOSNewMin {
		switch {
		case dos >= float64(cfg.TargetDOSNewMin) && dos <= float64(cfg.TargetDOSNewMax):
			return StatusHealthy
		case dos < float64(cfg.TargetDOSNewMin):
			return StatusLowStock
		default:
			return StatusOverstock
		}
	}

	if dos <= float64(cfg.TargetDOSEstablishedMax) {
		return StatusHealthy
	}
	return StatusOverstock
}
