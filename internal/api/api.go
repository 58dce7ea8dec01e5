// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/andresuchdata/psi-planner/internal/api/handlers"
	"github.com/andresuchdata/psi-planner/internal/api/middleware"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Forecast  *service.ForecastService
	PSI       *service.PSIService
	PO        *service.POService
	Generator *service.POGeneratorService
	Sales     *service.SalesService
	Inventory *service.InventoryService
	Plans     *service.PlanService
	Shipments *service.ShipmentService
	Settings  *service.SettingsService
	Dashboard *service.DashboardService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.Inventory != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)

		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", inventoryHandler.ListProducts)
			productGroup.POST("", inventoryHandler.CreateProduct)
			productGroup.GET("/:id", inventoryHandler.GetProduct)
			productGroup.PUT("/:id/planning-config", inventoryHandler.UpdatePlanningConfig)
		}

		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("", inventoryHandler.List)
			inventoryGroup.GET("/alerts", inventoryHandler.GetLowStockAlerts)
			inventoryGroup.GET("/:product_id", inventoryHandler.GetByProduct)
			inventoryGroup.PUT("/:product_id", inventoryHandler.Upsert)
		}
	}

	if services.Sales != nil {
		salesHandler := handlers.NewSalesHandler(services.Sales)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.GET("", salesHandler.List)
			salesGroup.GET("/:id", salesHandler.Get)
			salesGroup.POST("", salesHandler.Create)
			salesGroup.PUT("/:id", salesHandler.Update)
			salesGroup.DELETE("/:id", salesHandler.Delete)
		}
	}

	if services.Forecast != nil {
		forecastHandler := handlers.NewForecastHandler(services.Forecast)
		forecastGroup := apiGroup.Group("/forecast")
		{
			forecastGroup.GET("/weekly-sales/:product_id", forecastHandler.GetWeeklySales)
			forecastGroup.GET("/purchase", forecastHandler.GetAllPurchaseForecasts)
			forecastGroup.GET("/purchase/:product_id", forecastHandler.GetPurchaseForecast)
			forecastGroup.POST("/sales", forecastHandler.CreateSalesForecast)
			forecastGroup.GET("/sales/:product_id", forecastHandler.GetSalesForecast)
		}
	}

	if services.PSI != nil {
		psiHandler := handlers.NewPSIHandler(services.PSI)
		psiGroup := apiGroup.Group("/psi")
		{
			psiGroup.GET("/monthly", psiHandler.GetAllMonthlyPSI)
			psiGroup.GET("/monthly/:product_id", psiHandler.GetMonthlyPSI)
			psiGroup.GET("/end-to-end", psiHandler.GetAllEndToEndStock)
			psiGroup.GET("/end-to-end/:product_id", psiHandler.GetEndToEndStock)
		}
	}

	if services.PO != nil && services.Generator != nil && services.Shipments != nil {
		poHandler := handlers.NewPOHandler(services.PO, services.Generator, services.Shipments)
		poGroup := apiGroup.Group("/purchase-orders")
		{
			poGroup.GET("", poHandler.List)
			poGroup.POST("", poHandler.Create)
			poGroup.POST("/generate-weekly", poHandler.GenerateWeekly)
			poGroup.POST("/generate-annual", poHandler.GenerateAnnual)
			poGroup.GET("/delayed", poHandler.GetDelayedShipments)
			poGroup.POST("/progress-stages", poHandler.ProgressStages)
			poGroup.GET("/:id", poHandler.Get)
			poGroup.PUT("/:id", poHandler.Update)
			poGroup.PUT("/:id/stage", poHandler.UpdateStage)
			poGroup.DELETE("/:id", poHandler.Delete)
		}
	}

	if services.Plans != nil {
		planHandler := handlers.NewPlanHandler(services.Plans)
		planGroup := apiGroup.Group("/plans")
		{
			planGroup.GET("", planHandler.List)
			planGroup.POST("", planHandler.Create)
			planGroup.POST("/generate", planHandler.Generate)
			planGroup.GET("/:id", planHandler.Get)
			planGroup.DELETE("/:id", planHandler.Delete)
		}
	}

	if services.Settings != nil {
		settingsHandler := handlers.NewSettingsHandler(services.Settings)
		settingsGroup := apiGroup.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.List)
			settingsGroup.GET("/lead-time", settingsHandler.GetLeadTimeSummary)
			settingsGroup.GET("/:key", settingsHandler.Get)
			settingsGroup.PUT("/:key", settingsHandler.Set)
			settingsGroup.DELETE("/:key", settingsHandler.Delete)
		}
	}

	if services.Dashboard != nil {
		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/summary", dashboardHandler.GetSummary)
			dashboardGroup.DELETE("/summary", dashboardHandler.Invalidate)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
