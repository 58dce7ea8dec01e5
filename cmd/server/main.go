// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/psi-planner/internal/api"
	"github.com/andresuchdata/psi-planner/internal/cache"
	"github.com/andresuchdata/psi-planner/internal/config"
	"github.com/andresuchdata/psi-planner/internal/repository/postgres"
	"github.com/andresuchdata/psi-planner/internal/scheduler"
	"github.com/andresuchdata/psi-planner/internal/service"
	"github.com/andresuchdata/psi-planner/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	productRepo := postgres.NewProductRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	poRepo := postgres.NewPORepository(db)
	forecastRepo := postgres.NewSalesForecastRepository(db)
	planRepo := postgres.NewMonthlyPlanRepository(db)
	configRepo := postgres.NewSystemConfigRepository(db)

	// Initialize cache; fall back to the noop cache so a missing Redis
	// never blocks startup.
	dashCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, running without it")
		dashCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	settingsService := service.NewSettingsService(configRepo)
	forecastService := service.NewForecastService(productRepo, inventoryRepo, salesRepo, forecastRepo, settingsService)
	psiService := service.NewPSIService(productRepo, inventoryRepo, salesRepo, poRepo, forecastRepo, planRepo, settingsService)
	poService := service.NewPOService(poRepo, productRepo)
	generatorService := service.NewPOGeneratorService(productRepo, inventoryRepo, salesRepo, poRepo, settingsService)
	salesService := service.NewSalesService(salesRepo, productRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, psiService)
	planService := service.NewPlanService(planRepo, psiService)
	shipmentService := service.NewShipmentService(poRepo)
	dashboardService := service.NewDashboardService(productRepo, inventoryRepo, salesRepo, poRepo, shipmentService, dashCache)

	// Optional weekly generation trigger
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(logger.Log)
		if err := sched.AddJob(cfg.Scheduler.WeeklyCron, service.NewWeeklyPOJob(generatorService)); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to register weekly PO job")
		}
		sched.Start()
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Forecast:  forecastService,
		PSI:       psiService,
		PO:        poService,
		Generator: generatorService,
		Sales:     salesService,
		Inventory: inventoryService,
		Plans:     planService,
		Shipments: shipmentService,
		Settings:  settingsService,
		Dashboard: dashboardService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
